// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"

	"github.com/vechain/rewardpool/builtin/rewards"
)

type ClockCheck struct {
	Offset    time.Duration `json:"offset"`
	Tolerance time.Duration `json:"tolerance"`
	CheckedAt *time.Time    `json:"checkedAt"`
}

type EventSink struct {
	LastEventAt *time.Time `json:"lastEventAt"`
	LastError   string     `json:"lastError,omitempty"`
}

type Status struct {
	Healthy   bool        `json:"healthy"`
	Clock     *ClockCheck `json:"clock"`
	EventSink *EventSink  `json:"eventSink"`
}

// Health aggregates the conditions the serving process depends on. A clock
// that was never checked counts as healthy.
type Health struct {
	lock sync.RWMutex

	clockOffset    time.Duration
	clockTolerance time.Duration
	clockCheckedAt time.Time

	lastEventAt time.Time
	sinkErr     error
}

func (h *Health) ClockChecked(offset, tolerance time.Duration) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.clockOffset = offset
	h.clockTolerance = tolerance
	h.clockCheckedAt = time.Now()
}

func (h *Health) EventsEmitted(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.sinkErr = err
	if err == nil {
		h.lastEventAt = time.Now()
	}
}

// WrapEmitter reports the outcome of every emission made through next.
func (h *Health) WrapEmitter(next rewards.Emitter) rewards.Emitter {
	return rewards.EmitterFunc(func(events ...*rewards.Event) error {
		err := next.Emit(events...)
		h.EventsEmitted(err)
		return err
	})
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clock := &ClockCheck{
		Offset:    h.clockOffset,
		Tolerance: h.clockTolerance,
	}
	clockOK := true
	if !h.clockCheckedAt.IsZero() {
		checkedAt := h.clockCheckedAt
		clock.CheckedAt = &checkedAt
		clockOK = abs(h.clockOffset) <= h.clockTolerance
	}

	sink := &EventSink{}
	if !h.lastEventAt.IsZero() {
		lastEventAt := h.lastEventAt
		sink.LastEventAt = &lastEventAt
	}
	if h.sinkErr != nil {
		sink.LastError = h.sinkErr.Error()
	}

	return &Status{
		Healthy:   clockOK && h.sinkErr == nil,
		Clock:     clock,
		EventSink: sink,
	}, nil
}
