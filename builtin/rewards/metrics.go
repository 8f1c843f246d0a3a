// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/vechain/rewardpool/metrics"
)

var (
	metricOperations    = metrics.LazyLoadCounterVec("pool_operations_count", []string{"op", "result"})
	metricEmitFailures  = metrics.LazyLoadCounter("pool_event_emit_failures_count")
	metricTotalStaked   = metrics.LazyLoadGauge("pool_total_staked_tokens")
	metricOutstanding   = metrics.LazyLoadGauge("pool_outstanding_reward_tokens")
	metricLastAccrualAt = metrics.LazyLoadGauge("pool_last_update_time")
)

// wholeTokens truncates amount to whole tokens and clamps it to int64.
func wholeTokens(amount *big.Int, decimals uint8) int64 {
	v := new(big.Int).Set(amount)
	if decimals > 0 {
		v.Quo(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	}
	if !v.IsInt64() {
		return int64(^uint64(0) >> 1)
	}
	return v.Int64()
}

func (p *Pool) observe() {
	snap, err := p.accumulator.Get()
	if err != nil {
		return
	}
	metricTotalStaked().Set(wholeTokens(snap.TotalStaked, p.cfg.StakingDecimals))
	metricLastAccrualAt().Set(int64(snap.LastUpdateTime))

	allocated, err := p.totalAllocated.Get()
	if err != nil {
		return
	}
	paid, err := p.totalPaid.Get()
	if err != nil {
		return
	}
	if allocated.Cmp(paid) >= 0 {
		metricOutstanding().Set(wholeTokens(new(big.Int).Sub(allocated, paid), p.cfg.RewardDecimals))
	}
}
