// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package period

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
)

type Status uint8

const (
	StatusPending Status = iota
	StatusActive
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Period is a reward window [Start, End) emitting Rate reward units per
// second.
type Period struct {
	Start uint64
	End   uint64
	Rate  *big.Int
}

// ApplicableTime clamps now into [Start, End]. Before the window opens it
// returns Start, so nothing accrues while the period is pending.
func (p *Period) ApplicableTime(now uint64) uint64 {
	if now < p.Start {
		return p.Start
	}
	if now > p.End {
		return p.End
	}
	return now
}

func (p *Period) HasStarted(now uint64) bool {
	return now >= p.Start
}

func (p *Period) HasEnded(now uint64) bool {
	return now >= p.End
}

func (p *Period) TimeRemaining(now uint64) uint64 {
	if now >= p.End {
		return 0
	}
	return p.End - now
}

func (p *Period) Duration() uint64 {
	return p.End - p.Start
}

func (p *Period) Status(now uint64) Status {
	switch {
	case !p.HasStarted(now):
		return StatusPending
	case p.HasEnded(now):
		return StatusEnded
	default:
		return StatusActive
	}
}

// unaccrued is the part of the window not yet emitted at now.
func (p *Period) unaccrued(now uint64) uint64 {
	return p.End - p.ApplicableTime(now)
}

// Leftover is the reward the current rate would still emit from now until
// the end of the window.
func (p *Period) Leftover(now uint64) (*big.Int, error) {
	return fixedpoint.Mul(p.Rate, new(big.Int).SetUint64(p.unaccrued(now)))
}

// RewardForDuration is the reward emitted over the whole window.
func (p *Period) RewardForDuration() (*big.Int, error) {
	return fixedpoint.Mul(p.Rate, new(big.Int).SetUint64(p.Duration()))
}
