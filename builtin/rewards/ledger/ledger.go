// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger holds per-account stake and reward bookkeeping.
//
// An account must be settled against the current accumulator before its
// balance changes; otherwise the new balance would be credited for time it
// was not staked.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var slotAccounts = thor.BytesToBytes32([]byte("accounts"))

var (
	ErrInsufficientBalance = reverts.New("ledger: withdraw exceeds staked balance")
	ErrSnapshotAhead       = errors.New("ledger: account snapshot ahead of accumulator")
)

type Account struct {
	Balance           *big.Int
	RewardPerUnitPaid *big.Int
	Rewards           *big.Int
}

func newAccount() *Account {
	return &Account{
		Balance:           new(big.Int),
		RewardPerUnitPaid: new(big.Int),
		Rewards:           new(big.Int),
	}
}

func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.RewardPerUnitPaid.Sign() == 0 && a.Rewards.Sign() == 0
}

// Earned returns floor(Balance*(acc-RewardPerUnitPaid)/scale) + Rewards.
func (a *Account) Earned(acc, scale *big.Int) (*big.Int, error) {
	if acc.Cmp(a.RewardPerUnitPaid) < 0 {
		return nil, errors.Wrapf(ErrSnapshotAhead, "accumulator %v, paid %v", acc, a.RewardPerUnitPaid)
	}
	delta := new(big.Int).Sub(acc, a.RewardPerUnitPaid)
	pending, err := fixedpoint.MulDiv(a.Balance, delta, scale)
	if err != nil {
		return nil, errors.Wrap(err, "pending reward")
	}
	earned, err := fixedpoint.Add(pending, a.Rewards)
	if err != nil {
		return nil, errors.Wrap(err, "earned")
	}
	return earned, nil
}

type Service struct {
	accounts *solidity.Mapping[thor.Address, *Account]
	scale    *big.Int
}

func New(sctx *solidity.Context, scale *big.Int) *Service {
	return &Service{
		accounts: solidity.NewMapping[thor.Address, *Account](sctx, slotAccounts),
		scale:    scale,
	}
}

// Get returns the stored account. Unknown addresses yield a zero account.
func (s *Service) Get(addr thor.Address) (*Account, error) {
	acct, exists, err := s.accounts.Get(addr)
	if err != nil {
		return nil, err
	}
	if !exists {
		return newAccount(), nil
	}
	return acct, nil
}

func (s *Service) set(addr thor.Address, acct *Account) error {
	if acct.IsEmpty() {
		s.accounts.Delete(addr)
		return nil
	}
	return s.accounts.Set(addr, acct)
}

// Earned projects the account's reward at the accumulator value acc.
func (s *Service) Earned(addr thor.Address, acc *big.Int) (*big.Int, error) {
	acct, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	return acct.Earned(acc, s.scale)
}

// Settle folds everything accrued up to acc into the account's stored
// rewards and moves its snapshot to acc. Settling twice at the same acc is a
// no-op.
func (s *Service) Settle(addr thor.Address, acc *big.Int) (*Account, error) {
	acct, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if acct.RewardPerUnitPaid.Cmp(acc) == 0 {
		return acct, nil
	}
	earned, err := acct.Earned(acc, s.scale)
	if err != nil {
		return nil, err
	}
	acct.Rewards = earned
	acct.RewardPerUnitPaid = new(big.Int).Set(acc)
	if err := s.set(addr, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (s *Service) Deposit(addr thor.Address, amount *big.Int) error {
	acct, err := s.Get(addr)
	if err != nil {
		return err
	}
	balance, err := fixedpoint.Add(acct.Balance, amount)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	acct.Balance = balance
	return s.set(addr, acct)
}

func (s *Service) Withdraw(addr thor.Address, amount *big.Int) error {
	acct, err := s.Get(addr)
	if err != nil {
		return err
	}
	if acct.Balance.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientBalance, "balance %v, amount %v", acct.Balance, amount)
	}
	acct.Balance = new(big.Int).Sub(acct.Balance, amount)
	return s.set(addr, acct)
}

// TakeRewards zeroes the account's stored rewards and returns what was
// there.
func (s *Service) TakeRewards(addr thor.Address) (*big.Int, error) {
	acct, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	reward := acct.Rewards
	if reward.Sign() == 0 {
		return reward, nil
	}
	acct.Rewards = new(big.Int)
	if err := s.set(addr, acct); err != nil {
		return nil, err
	}
	return reward, nil
}
