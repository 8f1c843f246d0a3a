// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api/pool"
	"github.com/vechain/rewardpool/builtin/reverts"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/thor"
)

var knownOps = map[string]bool{
	"stake":    true,
	"withdraw": true,
	"reward":   true,
	"exit":     true,
	"update":   true,
	"period":   true,
	"allocate": true,
	"recover":  true,
}

// step is one scenario operation, applied once the clock reaches At.
type step struct {
	At        uint64                `yaml:"at"`
	Op        string                `yaml:"op"`
	Account   thor.Address          `yaml:"account"`
	Amount    *math.HexOrDecimal256 `yaml:"amount"`
	Start     uint64                `yaml:"start"`
	End       uint64                `yaml:"end"`
	Asset     thor.Address          `yaml:"asset"`
	Recipient thor.Address          `yaml:"recipient"`
}

type scenario struct {
	config `yaml:",inline"`
	Steps  []step `yaml:"steps"`
}

func (s *scenario) validate() error {
	if err := s.config.validate(); err != nil {
		return err
	}
	var last uint64
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return errors.Errorf("steps[%d]: unknown op %q", i, st.Op)
		}
		if st.At < last {
			return errors.Errorf("steps[%d]: time %d is before previous step %d", i, st.At, last)
		}
		last = st.At
	}
	return nil
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := parseConfig(data, &sc); err != nil {
		return nil, errors.WithMessagef(err, "scenario %v", path)
	}
	return &sc, nil
}

func amountOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return (*big.Int)(v)
}

// apply runs st against p. Admin steps are authorized as st.Account, or the
// owner when no account is given.
func apply(p *rewards.Pool, gate authority.Gate, owner thor.Address, st *step) error {
	admin := func() error {
		caller := st.Account
		if caller.IsZero() {
			caller = owner
		}
		return gate.Authorize(caller)
	}

	switch st.Op {
	case "stake":
		return p.Stake(st.Account, amountOf(st.Amount))
	case "withdraw":
		return p.Withdraw(st.Account, amountOf(st.Amount))
	case "reward":
		return p.GetReward(st.Account)
	case "exit":
		return p.Exit(st.Account)
	case "update":
		if st.Account.IsZero() {
			return p.UpdateReward(nil)
		}
		return p.UpdateReward(&st.Account)
	case "period":
		if err := admin(); err != nil {
			return err
		}
		return p.SetNewPeriod(st.Start, st.End, amountOf(st.Amount))
	case "allocate":
		if err := admin(); err != nil {
			return err
		}
		return p.AddToRewardsAllocation(amountOf(st.Amount))
	case "recover":
		if err := admin(); err != nil {
			return err
		}
		return p.RecoverUnsupported(st.Asset, st.Recipient, amountOf(st.Amount))
	}
	return errors.Errorf("unknown op %q", st.Op)
}

type simulation struct {
	inst     *instance
	clock    *clock.Manual
	events   []*rewards.Event
	reverted []int
	accounts []thor.Address
}

// simulate replays sc on an in-memory pool. Reverted steps are recorded and
// skipped unless strict is set. onStep is called after every step.
func simulate(sc *scenario, strict bool, onStep func()) (*simulation, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}

	var start uint64
	if len(sc.Steps) > 0 {
		start = sc.Steps[0].At
	}
	sim := &simulation{clock: clock.NewManual(start)}
	emitter := rewards.EmitterFunc(func(events ...*rewards.Event) error {
		sim.events = append(sim.events, events...)
		return nil
	})
	if sim.inst, err = openPool(&sc.config, db, sim.clock, emitter, true); err != nil {
		return nil, err
	}

	gate := authority.NewOwner(sc.Owner)
	seen := make(map[thor.Address]bool)
	for i := range sc.Steps {
		st := &sc.Steps[i]
		sim.clock.Set(st.At)
		if !st.Account.IsZero() && !seen[st.Account] && st.Op != "period" && st.Op != "allocate" && st.Op != "recover" {
			seen[st.Account] = true
			sim.accounts = append(sim.accounts, st.Account)
		}

		if err := apply(sim.inst.pool, gate, sc.Owner, st); err != nil {
			if !reverts.IsRevertErr(err) && !errors.Is(err, authority.ErrUnauthorized) {
				return nil, errors.WithMessagef(err, "steps[%d]", i)
			}
			if strict {
				return nil, errors.WithMessagef(err, "steps[%d] reverted", i)
			}
			logger.Warn("step reverted", "index", i, "at", st.At, "op", st.Op, "err", err)
			sim.reverted = append(sim.reverted, i)
		}
		if onStep != nil {
			onStep()
		}
	}
	return sim, nil
}

func simulateAction(ctx *cli.Context) error {
	initLogger(ctx)
	if ctx.NArg() != 1 {
		cli.ShowCommandHelpAndExit(ctx, "simulate", 1)
	}
	sc, err := loadScenario(ctx.Args().First())
	if err != nil {
		return err
	}

	bar := pb.New(len(sc.Steps)).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	sim, err := simulate(sc, ctx.Bool(strictFlag.Name), func() { bar.Increment() })
	if err != nil {
		return err
	}
	bar.Finish()

	snap, err := sim.inst.pool.Snapshot()
	if err != nil {
		return err
	}
	if ctx.Bool(dumpFlag.Name) {
		spew.Dump(snap)
	}

	accounts := make([]*pool.Account, 0, len(sim.accounts))
	for _, addr := range sim.accounts {
		acct, err := sim.inst.pool.Account(addr)
		if err != nil {
			return err
		}
		accounts = append(accounts, pool.ConvertAccount(acct))
	}

	fmt.Printf(">> %d steps, %d reverted, %d events <<\n", len(sc.Steps), len(sim.reverted), len(sim.events))
	return printJSON(struct {
		Pool     *pool.Snapshot  `json:"pool"`
		Accounts []*pool.Account `json:"accounts"`
	}{
		pool.ConvertSnapshot(sim.inst.pool.Config(), snap),
		accounts,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
