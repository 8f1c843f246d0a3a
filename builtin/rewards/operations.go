// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/thor"
)

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if !fixedpoint.Valid(amount) {
		return errors.Wrap(fixedpoint.ErrOverflow, "amount")
	}
	return nil
}

// Stake escrows amount of the staking asset from account into the pool.
func (p *Pool) Stake(account thor.Address, amount *big.Int) error {
	return p.run("stake", func(now uint64) ([]*Event, error) {
		if err := validAmount(amount); err != nil {
			return nil, err
		}
		if _, err := p.updateReward(now, &account); err != nil {
			return nil, err
		}
		if err := p.ledger.Deposit(account, amount); err != nil {
			return nil, err
		}
		if err := p.accumulator.AddStake(amount); err != nil {
			return nil, err
		}
		if err := p.staking.Escrow(account, amount); err != nil {
			return nil, &TransferError{Op: "escrow", Err: err}
		}
		logger.Debug("staked", "account", account, "amount", amount, "time", now)
		return []*Event{{Kind: EventStaked, Time: now, Account: account, Amount: new(big.Int).Set(amount)}}, nil
	})
}

// Withdraw releases amount of account's stake.
func (p *Pool) Withdraw(account thor.Address, amount *big.Int) error {
	return p.run("withdraw", func(now uint64) ([]*Event, error) {
		if err := validAmount(amount); err != nil {
			return nil, err
		}
		if _, err := p.updateReward(now, &account); err != nil {
			return nil, err
		}
		if err := p.debitStake(account, amount); err != nil {
			return nil, err
		}
		if err := p.staking.Release(account, amount); err != nil {
			return nil, &TransferError{Op: "release", Err: err}
		}
		logger.Debug("withdrawn", "account", account, "amount", amount, "time", now)
		return []*Event{withdrawnEvent(now, account, amount)}, nil
	})
}

// debitStake expects account to be settled.
func (p *Pool) debitStake(account thor.Address, amount *big.Int) error {
	if err := p.ledger.Withdraw(account, amount); err != nil {
		return err
	}
	return p.accumulator.SubStake(amount)
}

func withdrawnEvent(now uint64, account thor.Address, amount *big.Int) *Event {
	return &Event{Kind: EventWithdrawn, Time: now, Account: account, Amount: new(big.Int).Set(amount)}
}

// GetReward pays out everything account has earned so far. Nothing earned
// is not an error.
func (p *Pool) GetReward(account thor.Address) error {
	return p.run("get_reward", func(now uint64) ([]*Event, error) {
		if _, err := p.updateReward(now, &account); err != nil {
			return nil, err
		}
		reward, err := p.takeReward(account)
		if err != nil || reward.Sign() == 0 {
			return nil, err
		}
		if err := p.reward.Payout(account, reward); err != nil {
			return nil, &TransferError{Op: "payout", Err: err}
		}
		logger.Debug("reward paid", "account", account, "amount", reward, "time", now)
		return []*Event{{Kind: EventRewardPaid, Time: now, Account: account, Amount: reward}}, nil
	})
}

// takeReward clears account's settled reward and counts it as paid. It
// expects account to be settled and returns zero when there is nothing to pay.
func (p *Pool) takeReward(account thor.Address) (*big.Int, error) {
	reward, err := p.ledger.TakeRewards(account)
	if err != nil {
		return nil, err
	}
	if reward.Sign() == 0 {
		return reward, nil
	}
	paid, err := p.totalPaid.Get()
	if err != nil {
		return nil, err
	}
	paid, err = fixedpoint.Add(paid, reward)
	if err != nil {
		return nil, errors.Wrap(err, "total paid")
	}
	p.totalPaid.Set(paid)
	return reward, nil
}

// Exit withdraws account's whole stake and pays its reward, with a single
// settlement for both. An account with neither stake nor reward exits as a
// no-op.
//
// Both movements are booked before either transfer. If the payout fails
// after the stake was released, the stake is escrowed back before the
// operation is rolled back.
func (p *Pool) Exit(account thor.Address) error {
	return p.run("exit", func(now uint64) ([]*Event, error) {
		if _, err := p.updateReward(now, &account); err != nil {
			return nil, err
		}
		acct, err := p.ledger.Get(account)
		if err != nil {
			return nil, err
		}
		stake := new(big.Int).Set(acct.Balance)
		if stake.Sign() > 0 {
			if err := p.debitStake(account, stake); err != nil {
				return nil, err
			}
		}
		reward, err := p.takeReward(account)
		if err != nil {
			return nil, err
		}

		var events []*Event
		if stake.Sign() > 0 {
			if err := p.staking.Release(account, stake); err != nil {
				return nil, &TransferError{Op: "release", Err: err}
			}
			events = append(events, withdrawnEvent(now, account, stake))
		}
		if reward.Sign() > 0 {
			if err := p.reward.Payout(account, reward); err != nil {
				if stake.Sign() > 0 {
					if restoreErr := p.staking.Escrow(account, stake); restoreErr != nil {
						logger.Error("failed to restore released stake",
							"account", account,
							"amount", stake,
							"payout", err,
							"err", restoreErr,
						)
						return nil, errors.Wrapf(ErrCustodyDiverged, "account %v, stake %v: %v", account, stake, restoreErr)
					}
				}
				return nil, &TransferError{Op: "payout", Err: err}
			}
			events = append(events, &Event{Kind: EventRewardPaid, Time: now, Account: account, Amount: reward})
		}
		logger.Debug("exited", "account", account, "stake", stake, "reward", reward, "time", now)
		return events, nil
	})
}

// UpdateReward settles the accumulator and, if account is not nil, that
// account. It has no other effect.
func (p *Pool) UpdateReward(account *thor.Address) error {
	return p.run("update_reward", func(now uint64) ([]*Event, error) {
		_, err := p.updateReward(now, account)
		return nil, err
	})
}
