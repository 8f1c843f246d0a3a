// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive time range. A To below From leaves the range open
// ended.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventFilter struct {
	Kinds   []rewards.EventKind
	Account *thor.Address
	Range   *Range
	Order   Order // default asc
	Options *Options
}

// Event is a stored pool event.
type Event struct {
	Seq uint64
	rewards.Event
}
