// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTee(t *testing.T) {
	var first, second []*Event
	errSink := errors.New("sink down")

	tee := Tee(
		EmitterFunc(func(events ...*Event) error {
			first = append(first, events...)
			return errSink
		}),
		NoopEmitter{},
		EmitterFunc(func(events ...*Event) error {
			second = append(second, events...)
			return errors.New("later failure")
		}),
	)

	ev := &Event{Kind: EventStaked}
	err := tee.Emit(ev, ev)
	assert.Equal(t, errSink, err)
	assert.Len(t, first, 2)
	assert.Len(t, second, 2)

	assert.NoError(t, Tee().Emit(ev))
}

func TestParseEventKind(t *testing.T) {
	for _, k := range []EventKind{EventStaked, EventWithdrawn, EventRewardPaid, EventRewardAdded, EventPeriodSet, EventRecovered} {
		got, ok := ParseEventKind(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseEventKind("staked")
	assert.False(t, ok)
}
