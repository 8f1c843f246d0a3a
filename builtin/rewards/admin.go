// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/builtin/rewards/period"
	"github.com/vechain/rewardpool/thor"
)

// The operations in this file are privileged. The pool does not authorize
// callers itself; see package authority.

// checkFunding returns the allocation total after adding extra, or
// ErrInsufficientRewardFunds if the pool's reward balance would not cover
// everything allocated and not yet paid.
func (p *Pool) checkFunding(extra *big.Int) (*big.Int, error) {
	allocated, err := p.totalAllocated.Get()
	if err != nil {
		return nil, err
	}
	allocated, err = fixedpoint.Add(allocated, extra)
	if err != nil {
		return nil, errors.Wrap(err, "total allocated")
	}
	paid, err := p.totalPaid.Get()
	if err != nil {
		return nil, err
	}
	outstanding, err := fixedpoint.Sub(allocated, paid)
	if err != nil {
		return nil, errors.Wrap(err, "outstanding reward")
	}
	balance, err := p.reward.Balance()
	if err != nil {
		return nil, &TransferError{Op: "balance", Err: err}
	}
	if outstanding.Cmp(balance) > 0 {
		return nil, errors.Wrapf(ErrInsufficientRewardFunds, "outstanding %v, balance %v", outstanding, balance)
	}
	return allocated, nil
}

// SetNewPeriod replaces the reward period with [start, end) emitting total
// plus whatever the current period had not emitted yet.
func (p *Pool) SetNewPeriod(start, end uint64, total *big.Int) error {
	return p.run("set_new_period", func(now uint64) ([]*Event, error) {
		if total == nil {
			total = new(big.Int)
		}
		if total.Sign() != 0 {
			if err := validAmount(total); err != nil {
				return nil, err
			}
		}
		if end <= start {
			return nil, errors.Wrapf(period.ErrInvalidPeriod, "start %d, end %d", start, end)
		}
		if end <= now {
			return nil, errors.Wrapf(ErrPeriodInPast, "end %d, now %d", end, now)
		}
		if _, err := p.updateReward(now, nil); err != nil {
			return nil, err
		}

		current, err := p.period.Get()
		if err != nil {
			return nil, err
		}
		carry, err := current.Leftover(now)
		if err != nil {
			return nil, errors.Wrap(err, "leftover")
		}
		allocated, err := p.checkFunding(total)
		if err != nil {
			return nil, err
		}
		rate, forfeited, err := p.period.Set(start, end, total, carry)
		if err != nil {
			return nil, err
		}
		next := &period.Period{Start: start, End: end, Rate: rate}
		if err := p.accumulator.Reset(now, next.ApplicableTime(now)); err != nil {
			return nil, err
		}
		p.totalAllocated.Set(allocated)

		logger.Info("new period set",
			"start", start,
			"end", end,
			"total", total,
			"carried", carry,
			"rate", rate,
			"forfeited", forfeited,
		)
		return []*Event{
			{Kind: EventPeriodSet, Time: now, Start: start, End: end, Rate: rate},
			{Kind: EventRewardAdded, Time: now, Amount: new(big.Int).Set(total), Rate: rate},
		}, nil
	})
}

// AddToRewardsAllocation spreads extra over the time left in the current
// period, raising the rate.
func (p *Pool) AddToRewardsAllocation(extra *big.Int) error {
	return p.run("add_rewards", func(now uint64) ([]*Event, error) {
		if err := validAmount(extra); err != nil {
			return nil, err
		}
		if _, err := p.updateReward(now, nil); err != nil {
			return nil, err
		}
		allocated, err := p.checkFunding(extra)
		if err != nil {
			return nil, err
		}
		rate, err := p.period.Extend(now, extra)
		if err != nil {
			return nil, err
		}
		p.totalAllocated.Set(allocated)

		logger.Info("rewards added", "amount", extra, "rate", rate)
		return []*Event{{Kind: EventRewardAdded, Time: now, Amount: new(big.Int).Set(extra), Rate: rate}}, nil
	})
}

// RecoverUnsupported sends a stray asset held by the pool to recipient.
// The staking and reward assets cannot be recovered.
func (p *Pool) RecoverUnsupported(asset, recipient thor.Address, amount *big.Int) error {
	return p.run("recover", func(now uint64) ([]*Event, error) {
		if err := validAmount(amount); err != nil {
			return nil, err
		}
		if asset == p.cfg.StakingAsset || asset == p.cfg.RewardAsset {
			return nil, errors.Wrapf(ErrUnsupportedRecovery, "asset %v", asset)
		}
		if p.recoverer == nil {
			return nil, ErrRecoveryUnavailable
		}
		if err := p.recoverer.Recover(asset, recipient, amount); err != nil {
			return nil, &TransferError{Op: "recover", Err: err}
		}
		logger.Info("recovered asset", "asset", asset, "recipient", recipient, "amount", amount)
		return []*Event{{Kind: EventRecovered, Time: now, Account: recipient, Asset: asset, Amount: new(big.Int).Set(amount)}}, nil
	})
}
