// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

type periodConfig struct {
	Start uint64 `yaml:"start"`
	End   uint64 `yaml:"end"`
}

type poolConfig struct {
	Address         thor.Address `yaml:"address"`
	StakingAsset    thor.Address `yaml:"stakingAsset"`
	RewardAsset     thor.Address `yaml:"rewardAsset"`
	StakingDecimals uint8        `yaml:"stakingDecimals"`
	RewardDecimals  uint8        `yaml:"rewardDecimals"`
	Period          periodConfig `yaml:"period"`
}

// grant credits an asset balance to a holder of the built-in ledger.
type grant struct {
	Asset  thor.Address          `yaml:"asset"`
	Holder thor.Address          `yaml:"holder"`
	Amount *math.HexOrDecimal256 `yaml:"amount"`
}

// config is the document read by --config.
type config struct {
	Pool    poolConfig   `yaml:"pool"`
	Owner   thor.Address `yaml:"owner"`
	Funding []grant      `yaml:"funding"`
}

func (c *config) rewardsConfig() rewards.Config {
	return rewards.Config{
		Address:         c.Pool.Address,
		StakingAsset:    c.Pool.StakingAsset,
		RewardAsset:     c.Pool.RewardAsset,
		StakingDecimals: c.Pool.StakingDecimals,
		RewardDecimals:  c.Pool.RewardDecimals,
		PeriodStart:     c.Pool.Period.Start,
		PeriodEnd:       c.Pool.Period.End,
	}
}

func (c *config) validate() error {
	if c.Pool.Address.IsZero() {
		return errors.New("pool.address is required")
	}
	cfg := c.rewardsConfig()
	if err := cfg.Validate(); err != nil {
		return errors.WithMessage(err, "pool")
	}
	if c.Owner.IsZero() {
		return errors.New("owner is required")
	}
	for i, g := range c.Funding {
		if g.Amount == nil || (*big.Int)(g.Amount).Sign() <= 0 {
			return errors.Errorf("funding[%d]: amount must be positive", i)
		}
		if g.Asset.IsZero() || g.Holder.IsZero() {
			return errors.Errorf("funding[%d]: asset and holder are required", i)
		}
	}
	return nil
}

func parseConfig(data []byte, v interface{ validate() error }) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode")
	}
	return v.validate()
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := parseConfig(data, &cfg); err != nil {
		return nil, errors.WithMessagef(err, "config %v", path)
	}
	return &cfg, nil
}
