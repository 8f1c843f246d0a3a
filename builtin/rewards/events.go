// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/vechain/rewardpool/thor"
)

type EventKind string

const (
	EventStaked      EventKind = "Staked"
	EventWithdrawn   EventKind = "Withdrawn"
	EventRewardPaid  EventKind = "RewardPaid"
	EventRewardAdded EventKind = "RewardAdded"
	EventPeriodSet   EventKind = "PeriodSet"
	EventRecovered   EventKind = "Recovered"
)

var eventKinds = map[string]EventKind{
	string(EventStaked):      EventStaked,
	string(EventWithdrawn):   EventWithdrawn,
	string(EventRewardPaid):  EventRewardPaid,
	string(EventRewardAdded): EventRewardAdded,
	string(EventPeriodSet):   EventPeriodSet,
	string(EventRecovered):   EventRecovered,
}

// ParseEventKind looks up a kind by its name.
func ParseEventKind(s string) (EventKind, bool) {
	k, ok := eventKinds[s]
	return k, ok
}

// Event records a committed pool operation. Fields that do not apply to the
// kind are left zero.
type Event struct {
	Kind    EventKind
	Time    uint64
	Account thor.Address
	Asset   thor.Address
	Amount  *big.Int
	Start   uint64
	End     uint64
	Rate    *big.Int
}

// Emitter receives events once the operation producing them has been
// committed.
type Emitter interface {
	Emit(events ...*Event) error
}

type NoopEmitter struct{}

func (NoopEmitter) Emit(...*Event) error { return nil }

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(events ...*Event) error

func (f EmitterFunc) Emit(events ...*Event) error { return f(events...) }

// Tee returns an Emitter forwarding to every emitter in turn. All of them
// receive the events even when one fails; the first error is returned.
func Tee(emitters ...Emitter) Emitter {
	return EmitterFunc(func(events ...*Event) error {
		var first error
		for _, e := range emitters {
			if err := e.Emit(events...); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
