// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/builtin/rewards/transfer"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	poolAddr     = thor.BytesToAddress([]byte("pool"))
	stakingAsset = thor.BytesToAddress([]byte("stk"))
	rewardAsset  = thor.BytesToAddress([]byte("rwd"))
	strayAsset   = thor.BytesToAddress([]byte("stray"))

	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
	carol = thor.BytesToAddress([]byte("carol"))
)

func testConfig() Config {
	return Config{
		Address:         poolAddr,
		StakingAsset:    stakingAsset,
		RewardAsset:     rewardAsset,
		StakingDecimals: 18,
		RewardDecimals:  18,
		PeriodStart:     0,
		PeriodEnd:       10,
	}
}

type PoolTest struct {
	*Pool
	t      *testing.T
	st     *state.State
	assets *transfer.Ledger
	clk    *clock.Manual

	mu     sync.Mutex
	events []*Event
}

// newTest returns an initialized pool over an in-memory ledger. Every
// participant starts with 10_000 staking units.
func newTest(t *testing.T) *PoolTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ts := &PoolTest{
		t:      t,
		st:     state.New(db),
		assets: transfer.NewLedger(),
		clk:    clock.NewManual(0),
	}
	for _, addr := range []thor.Address{alice, bob, carol} {
		ts.assets.Mint(stakingAsset, addr, big.NewInt(10_000))
	}

	vault := ts.assets.Vault(poolAddr, stakingAsset, rewardAsset)
	pool, err := New(ts.st, testConfig(), Dependencies{
		Staking:   vault,
		Reward:    vault,
		Recoverer: vault,
		Clock:     ts.clk,
		Emitter:   EmitterFunc(ts.record),
	})
	require.NoError(t, err)
	require.NoError(t, pool.Initialize())
	ts.Pool = pool
	return ts
}

func (ts *PoolTest) record(events ...*Event) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.events = append(ts.events, events...)
	return nil
}

func (ts *PoolTest) Events() []*Event {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]*Event(nil), ts.events...)
}

// Fund sends amount of the reward asset to the pool.
func (ts *PoolTest) Fund(amount int64) *PoolTest {
	ts.assets.Mint(rewardAsset, poolAddr, big.NewInt(amount))
	return ts
}

func (ts *PoolTest) RewardBalance(addr thor.Address) *big.Int {
	return ts.assets.BalanceOf(rewardAsset, addr)
}

func (ts *PoolTest) StakingBalance(addr thor.Address) *big.Int {
	return ts.assets.BalanceOf(stakingAsset, addr)
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	pool *PoolTest

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(pool *PoolTest) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), pool: pool}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) At(now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.pool.clk.Set(now)
	})
}

func (st *TestSequence) Stake(addr thor.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Stake(addr, big.NewInt(amount)); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, addr, err)
		}
		t.Logf("staked %d for %s", amount, addr)
	})
}

func (st *TestSequence) Withdraw(addr thor.Address, amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Withdraw(addr, big.NewInt(amount)); err != nil {
			t.Fatalf("failed to withdraw %d for %s: %v", amount, addr, err)
		}
		t.Logf("withdrawn %d for %s", amount, addr)
	})
}

func (st *TestSequence) GetReward(addr thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.GetReward(addr); err != nil {
			t.Fatalf("failed to get reward for %s: %v", addr, err)
		}
		t.Logf("reward claimed for %s", addr)
	})
}

func (st *TestSequence) Exit(addr thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Exit(addr); err != nil {
			t.Fatalf("failed to exit %s: %v", addr, err)
		}
		t.Logf("exited %s", addr)
	})
}

func (st *TestSequence) SetNewPeriod(start, end uint64, total int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.SetNewPeriod(start, end, big.NewInt(total)); err != nil {
			t.Fatalf("failed to set period [%d, %d): %v", start, end, err)
		}
		t.Logf("period [%d, %d) set with %d", start, end, total)
	})
}

func (st *TestSequence) AddRewards(amount int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.AddToRewardsAllocation(big.NewInt(amount)); err != nil {
			t.Fatalf("failed to add %d rewards: %v", amount, err)
		}
		t.Logf("added %d rewards", amount)
	})
}

func (st *TestSequence) Assert(a *AccountAssertions) *TestSequence {
	return st.AddFunc(a.Assert)
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

type AccountAssertions struct {
	pool *PoolTest
	addr thor.Address

	earned  *big.Int
	balance *big.Int
	paid    *big.Int
}

func AssertAccount(pool *PoolTest, addr thor.Address) *AccountAssertions {
	return &AccountAssertions{pool: pool, addr: addr}
}

func (aa *AccountAssertions) Earned(expected int64) *AccountAssertions {
	aa.earned = big.NewInt(expected)
	return aa
}

func (aa *AccountAssertions) Balance(expected int64) *AccountAssertions {
	aa.balance = big.NewInt(expected)
	return aa
}

// Paid is the reward asset the account holds.
func (aa *AccountAssertions) Paid(expected int64) *AccountAssertions {
	aa.paid = big.NewInt(expected)
	return aa
}

func (aa *AccountAssertions) Assert(t *testing.T) {
	view, err := aa.pool.Account(aa.addr)
	require.NoError(t, err, "failed to get account %s", aa.addr)

	if aa.earned != nil {
		assert.Equal(t, aa.earned.String(), view.Earned.String(), "account %s earned mismatch", aa.addr)
	}
	if aa.balance != nil {
		assert.Equal(t, aa.balance.String(), view.Balance.String(), "account %s balance mismatch", aa.addr)
	}
	if aa.paid != nil {
		assert.Equal(t, aa.paid.String(), aa.pool.RewardBalance(aa.addr).String(), "account %s paid mismatch", aa.addr)
	}
}
