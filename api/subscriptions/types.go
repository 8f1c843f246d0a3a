// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

type EventMessage struct {
	Kind    string                `json:"kind"`
	Time    uint64                `json:"time"`
	Account *thor.Address         `json:"account,omitempty"`
	Asset   *thor.Address         `json:"asset,omitempty"`
	Amount  *math.HexOrDecimal256 `json:"amount,omitempty"`
	Start   uint64                `json:"start,omitempty"`
	End     uint64                `json:"end,omitempty"`
	Rate    *math.HexOrDecimal256 `json:"rate,omitempty"`
}

func optionalAddress(addr thor.Address) *thor.Address {
	if addr.IsZero() {
		return nil
	}
	return &addr
}

func convertEvent(e *rewards.Event) *EventMessage {
	return &EventMessage{
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

// eventFilter selects events by kind and account. Empty criteria match all.
type eventFilter struct {
	kinds   map[rewards.EventKind]bool
	account *thor.Address
}

func parseEventFilter(q url.Values) (*eventFilter, error) {
	f := &eventFilter{}
	for i, k := range q["kind"] {
		kind, ok := rewards.ParseEventKind(k)
		if !ok {
			return nil, fmt.Errorf("kind[%d]: unknown event kind %q", i, k)
		}
		if f.kinds == nil {
			f.kinds = make(map[rewards.EventKind]bool)
		}
		f.kinds[kind] = true
	}
	if s := q.Get("account"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, errors.WithMessage(err, "account")
		}
		f.account = addr
	}
	return f, nil
}

func (f *eventFilter) match(e *rewards.Event) bool {
	if f.kinds != nil && !f.kinds[e.Kind] {
		return false
	}
	if f.account != nil && *f.account != e.Account {
		return false
	}
	return true
}
