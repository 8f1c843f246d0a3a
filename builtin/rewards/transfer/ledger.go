// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfer

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

var ErrInsufficientFunds = errors.New("transfer: insufficient funds")

// Hook is called after every successful transfer. Returning an error fails
// the transfer and restores the balances.
type Hook func(asset, from, to thor.Address, amount *big.Int) error

// Ledger is an in-memory multi-asset balance book. It backs the simulator
// and the tests.
type Ledger struct {
	mu       sync.Mutex
	balances map[thor.Address]map[thor.Address]*big.Int
	hook     Hook
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[thor.Address]map[thor.Address]*big.Int)}
}

// SetHook installs fn as the transfer hook. A nil fn removes it.
func (l *Ledger) SetHook(fn Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hook = fn
}

func (l *Ledger) balance(asset, holder thor.Address) *big.Int {
	book, ok := l.balances[asset]
	if !ok {
		book = make(map[thor.Address]*big.Int)
		l.balances[asset] = book
	}
	b, ok := book[holder]
	if !ok {
		b = new(big.Int)
		book[holder] = b
	}
	return b
}

func (l *Ledger) Mint(asset, to thor.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b := l.balance(asset, to)
	b.Add(b, amount)
}

func (l *Ledger) BalanceOf(asset, holder thor.Address) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balance(asset, holder))
}

func (l *Ledger) Transfer(asset, from, to thor.Address, amount *big.Int) error {
	l.mu.Lock()
	src := l.balance(asset, from)
	if src.Cmp(amount) < 0 {
		l.mu.Unlock()
		return errors.Wrapf(ErrInsufficientFunds, "asset %v, holder %v, balance %v, amount %v", asset, from, src, amount)
	}
	dst := l.balance(asset, to)
	src.Sub(src, amount)
	dst.Add(dst, amount)
	hook := l.hook
	l.mu.Unlock()

	if hook == nil {
		return nil
	}
	if err := hook(asset, from, to, amount); err != nil {
		l.mu.Lock()
		src.Add(src, amount)
		dst.Sub(dst, amount)
		l.mu.Unlock()
		return err
	}
	return nil
}

// Vault binds the ledger to a pool holding a staking and a reward asset.
func (l *Ledger) Vault(pool, stakingAsset, rewardAsset thor.Address) *Vault {
	return &Vault{ledger: l, pool: pool, staking: stakingAsset, reward: rewardAsset}
}

// Vault implements StakingToken, RewardToken and Recoverer on a Ledger.
type Vault struct {
	ledger  *Ledger
	pool    thor.Address
	staking thor.Address
	reward  thor.Address
}

func (v *Vault) Escrow(from thor.Address, amount *big.Int) error {
	return v.ledger.Transfer(v.staking, from, v.pool, amount)
}

func (v *Vault) Release(to thor.Address, amount *big.Int) error {
	return v.ledger.Transfer(v.staking, v.pool, to, amount)
}

func (v *Vault) Payout(to thor.Address, amount *big.Int) error {
	return v.ledger.Transfer(v.reward, v.pool, to, amount)
}

func (v *Vault) Balance() (*big.Int, error) {
	return v.ledger.BalanceOf(v.reward, v.pool), nil
}

func (v *Vault) Recover(asset, to thor.Address, amount *big.Int) error {
	return v.ledger.Transfer(asset, v.pool, to, amount)
}
