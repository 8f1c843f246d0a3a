// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/eventdb"
	"github.com/vechain/rewardpool/thor"
)

type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type Filter struct {
	Kinds   []string      `json:"kinds"`
	Account *thor.Address `json:"account"`
	Range   *Range        `json:"range"`
	Options *Options      `json:"options"`
	Order   eventdb.Order `json:"order"`
}

// FilteredEvent for marshal a stored event
type FilteredEvent struct {
	Seq     uint64                `json:"seq"`
	Kind    string                `json:"kind"`
	Time    uint64                `json:"time"`
	Account *thor.Address         `json:"account,omitempty"`
	Asset   *thor.Address         `json:"asset,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount,omitempty"`
	Start   uint64                `json:"start,omitempty"`
	End     uint64                `json:"end,omitempty"`
	Rate    *math.HexOrDecimal256 `json:"rate,omitempty"`
}

func convertFilter(f *Filter) (*eventdb.EventFilter, error) {
	switch f.Order {
	case "", eventdb.ASC, eventdb.DESC:
	default:
		return nil, fmt.Errorf("order: unknown value %q", f.Order)
	}
	ef := &eventdb.EventFilter{
		Account: f.Account,
		Order:   f.Order,
	}
	for i, k := range f.Kinds {
		kind, ok := rewards.ParseEventKind(k)
		if !ok {
			return nil, fmt.Errorf("kinds[%d]: unknown event kind %q", i, k)
		}
		ef.Kinds = append(ef.Kinds, kind)
	}
	if f.Range != nil {
		ef.Range = &eventdb.Range{From: f.Range.From, To: f.Range.To}
	}
	if f.Options != nil {
		ef.Options = &eventdb.Options{Offset: f.Options.Offset, Limit: f.Options.Limit}
	}
	return ef, nil
}

func optionalAddress(addr thor.Address) *thor.Address {
	if addr.IsZero() {
		return nil
	}
	return &addr
}

func convertEvent(e *eventdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Seq:     e.Seq,
		Kind:    string(e.Kind),
		Time:    e.Time,
		Account: optionalAddress(e.Account),
		Asset:   optionalAddress(e.Asset),
		Amount:  (*math.HexOrDecimal256)(e.Amount),
		Start:   e.Start,
		End:     e.End,
		Rate:    (*math.HexOrDecimal256)(e.Rate),
	}
}
