// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/metrics"
)

var metricDroppedEvents = metrics.LazyLoadCounter("subscriptions_dropped_event_count")

// Hub fans committed pool events out to live subscribers. It implements
// rewards.Emitter.
type Hub struct {
	mu        sync.RWMutex
	listeners map[chan *rewards.Event]struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		listeners: make(map[chan *rewards.Event]struct{}),
		done:      make(chan struct{}),
	}
}

func (h *Hub) Subscribe(ch chan *rewards.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listeners[ch] = struct{}{}
}

func (h *Hub) Unsubscribe(ch chan *rewards.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.listeners, ch)
}

// Emit broadcasts events without blocking. A subscriber whose buffer is full
// misses the event.
func (h *Hub) Emit(events ...*rewards.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ev := range events {
		for lsn := range h.listeners {
			select {
			case lsn <- ev:
			default:
				metricDroppedEvents().Add(1)
			}
		}
	}
	return nil
}

// Close tells every subscriber to hang up.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) Done() <-chan struct{} {
	return h.done
}
