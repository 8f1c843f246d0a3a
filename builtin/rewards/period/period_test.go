// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package period

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(thor.BytesToAddress([]byte("pool")), state.New(db)))
}

func TestPeriodClock(t *testing.T) {
	p := &Period{Start: 100, End: 200, Rate: big.NewInt(3)}

	tests := []struct {
		now        uint64
		applicable uint64
		started    bool
		ended      bool
		remaining  uint64
		status     Status
	}{
		{50, 100, false, false, 150, StatusPending},
		{100, 100, true, false, 100, StatusActive},
		{150, 150, true, false, 50, StatusActive},
		{200, 200, true, true, 0, StatusEnded},
		{300, 200, true, true, 0, StatusEnded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.applicable, p.ApplicableTime(tt.now), "now %d", tt.now)
		assert.Equal(t, tt.started, p.HasStarted(tt.now), "now %d", tt.now)
		assert.Equal(t, tt.ended, p.HasEnded(tt.now), "now %d", tt.now)
		assert.Equal(t, tt.remaining, p.TimeRemaining(tt.now), "now %d", tt.now)
		assert.Equal(t, tt.status, p.Status(tt.now), "now %d", tt.now)
	}

	assert.Equal(t, uint64(100), p.Duration())
	reward, err := p.RewardForDuration()
	require.NoError(t, err)
	assert.Equal(t, "300", reward.String())

	left, err := p.Leftover(50)
	require.NoError(t, err)
	assert.Equal(t, "300", left.String(), "pending period has everything left")
	left, err = p.Leftover(150)
	require.NoError(t, err)
	assert.Equal(t, "150", left.String())
	left, err = p.Leftover(250)
	require.NoError(t, err)
	assert.Equal(t, 0, left.Sign())

	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "unknown", Status(9).String())
}

func TestSet(t *testing.T) {
	svc := newService(t)

	rate, forfeited, err := svc.Set(0, 7, big.NewInt(100), new(big.Int))
	require.NoError(t, err)
	assert.Equal(t, "14", rate.String())
	assert.Equal(t, "2", forfeited.String())

	p, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.Start)
	assert.Equal(t, uint64(7), p.End)
	assert.Equal(t, "14", p.Rate.String())

	rate, forfeited, err = svc.Set(10, 20, big.NewInt(50), big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, "10", rate.String())
	assert.Equal(t, 0, forfeited.Sign())

	_, _, err = svc.Set(20, 20, big.NewInt(1), new(big.Int))
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
	_, _, err = svc.Set(21, 20, big.NewInt(1), new(big.Int))
	assert.True(t, errors.Is(err, ErrInvalidPeriod))

	p, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), p.Start, "rejected set leaves period untouched")
}

func TestExtend(t *testing.T) {
	svc := newService(t)
	_, _, err := svc.Set(0, 10, big.NewInt(100), new(big.Int))
	require.NoError(t, err)

	// 5s left at 10/s, plus 50 extra
	rate, err := svc.Extend(5, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, "20", rate.String())

	_, err = svc.Extend(10, big.NewInt(1))
	assert.Equal(t, ErrNoActivePeriod, err)

	p, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "20", p.Rate.String())
}

func TestExtendPending(t *testing.T) {
	svc := newService(t)
	_, _, err := svc.Set(100, 110, big.NewInt(100), new(big.Int))
	require.NoError(t, err)

	rate, err := svc.Extend(50, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, "20", rate.String())
}
