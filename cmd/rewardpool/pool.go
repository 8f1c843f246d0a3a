// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/builtin/rewards/transfer"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/state"
)

// instance is a pool together with the built-in asset ledger it settles on.
type instance struct {
	pool   *rewards.Pool
	assets *transfer.Ledger
}

// openPool binds the pool described by cfg to store. If the pool is not yet
// initialized and create is set, it is initialized and the configured
// funding is credited.
func openPool(cfg *config, store kv.Store, clk clock.Clock, emitter rewards.Emitter, create bool) (*instance, error) {
	book := transfer.NewBook(bookBucket.NewStore(store))
	assets := transfer.NewLedger()
	n, err := book.Load(assets)
	if err != nil {
		return nil, errors.WithMessage(err, "load balances")
	}
	assets.SetHook(book.Hook(assets))
	logger.Debug("balances loaded", "entries", n)

	vault := assets.Vault(cfg.Pool.Address, cfg.Pool.StakingAsset, cfg.Pool.RewardAsset)
	pool, err := rewards.New(state.New(stateBucket.NewStore(store)), cfg.rewardsConfig(), rewards.Dependencies{
		Staking:   vault,
		Reward:    vault,
		Recoverer: vault,
		Clock:     clk,
		Emitter:   emitter,
	})
	if err != nil {
		return nil, err
	}

	initialized, err := pool.Initialized()
	if err != nil {
		return nil, err
	}
	if !initialized {
		if !create {
			return nil, rewards.ErrNotInitialized
		}
		if err := pool.Initialize(); err != nil {
			return nil, err
		}
		for _, g := range cfg.Funding {
			if err := book.Mint(assets, g.Asset, g.Holder, (*big.Int)(g.Amount)); err != nil {
				return nil, errors.WithMessage(err, "credit funding")
			}
			logger.Info("funding credited", "asset", g.Asset, "holder", g.Holder, "amount", (*big.Int)(g.Amount))
		}
	}
	return &instance{pool: pool, assets: assets}, nil
}
