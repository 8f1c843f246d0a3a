// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package period

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotPeriodStart = thor.BytesToBytes32([]byte("period-start"))
	slotPeriodEnd   = thor.BytesToBytes32([]byte("period-end"))
	slotRewardRate  = thor.BytesToBytes32([]byte("reward-rate"))
)

var (
	ErrInvalidPeriod  = reverts.New("period: end must be after start")
	ErrNoActivePeriod = reverts.New("period: no time remaining in period")
)

// Service stores the single live reward period.
type Service struct {
	start *solidity.Uint64
	end   *solidity.Uint64
	rate  *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		start: solidity.NewUint64(sctx, slotPeriodStart),
		end:   solidity.NewUint64(sctx, slotPeriodEnd),
		rate:  solidity.NewUint256(sctx, slotRewardRate),
	}
}

func (s *Service) Get() (*Period, error) {
	start, err := s.start.Get()
	if err != nil {
		return nil, err
	}
	end, err := s.end.Get()
	if err != nil {
		return nil, err
	}
	rate, err := s.rate.Get()
	if err != nil {
		return nil, err
	}
	return &Period{Start: start, End: end, Rate: rate}, nil
}

// Set replaces the period and derives the rate from total plus carry spread
// over the window. It returns the new rate and the remainder lost to integer
// division, which stays in the pool unallocated to any second.
func (s *Service) Set(start, end uint64, total, carry *big.Int) (rate, forfeited *big.Int, err error) {
	if end <= start {
		return nil, nil, errors.Wrapf(ErrInvalidPeriod, "start %d, end %d", start, end)
	}
	amount, err := fixedpoint.Add(total, carry)
	if err != nil {
		return nil, nil, errors.Wrap(err, "period reward")
	}
	duration := new(big.Int).SetUint64(end - start)
	rate, err = fixedpoint.Div(amount, duration)
	if err != nil {
		return nil, nil, err
	}
	forfeited = new(big.Int).Mod(amount, duration)

	s.start.Set(start)
	s.end.Set(end)
	s.rate.Set(rate)
	return rate, forfeited, nil
}

// Extend spreads extra reward over the part of the window not yet emitted.
// A pending period spreads it over its whole duration.
func (s *Service) Extend(now uint64, extra *big.Int) (*big.Int, error) {
	p, err := s.Get()
	if err != nil {
		return nil, err
	}
	remaining := p.unaccrued(now)
	if remaining == 0 {
		return nil, ErrNoActivePeriod
	}
	leftover, err := p.Leftover(now)
	if err != nil {
		return nil, errors.Wrap(err, "leftover")
	}
	amount, err := fixedpoint.Add(leftover, extra)
	if err != nil {
		return nil, errors.Wrap(err, "extended reward")
	}
	rate, err := fixedpoint.Div(amount, new(big.Int).SetUint64(remaining))
	if err != nil {
		return nil, err
	}
	s.rate.Set(rate)
	return rate, nil
}
