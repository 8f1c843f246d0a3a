// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

var ErrClockSkew = errors.New("clock: local time differs from network time")

const (
	// DefaultNTPHost is the server queried by CheckOffset when no host is given.
	DefaultNTPHost   = "pool.ntp.org"
	DefaultTolerance = 2 * time.Second
)

// Clock reports the current time in whole seconds.
type Clock interface {
	Now() uint64
}

// System reads the wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a clock that only moves when told to. It never goes backwards.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

func NewManual(now uint64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t. It panics if t is earlier than the current time.
func (m *Manual) Set(t uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t < m.now {
		panic(fmt.Sprintf("clock: cannot move from %d back to %d", m.now, t))
	}
	m.now = t
}

// Advance moves the clock forward by d seconds and returns the new time.
func (m *Manual) Advance(d uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	return m.now
}

// CheckOffset queries an NTP server and returns the local clock offset. It
// fails with ErrClockSkew when the offset exceeds tolerance in either
// direction.
func CheckOffset(host string, tolerance time.Duration) (time.Duration, error) {
	if host == "" {
		host = DefaultNTPHost
	}
	resp, err := ntp.Query(host)
	if err != nil {
		return 0, errors.Wrap(err, "query ntp")
	}
	offset := resp.ClockOffset
	if offset > tolerance || -offset > tolerance {
		return offset, errors.Wrapf(ErrClockSkew, "offset %v", offset)
	}
	return offset, nil
}
