// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api/pool"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/thor"
)

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)
	cfg := mustLoadConfig(ctx)

	var accounts []thor.Address
	for _, s := range ctx.StringSlice(accountFlag.Name) {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return errors.WithMessagef(err, "--%s %v", accountFlag.Name, s)
		}
		accounts = append(accounts, *addr)
	}

	mainDB := openMainDB(ctx, makeDataDir(ctx))
	defer mainDB.Close()

	inst, err := openPool(cfg, mainDB, clock.System{}, rewards.NoopEmitter{}, false)
	if err != nil {
		return err
	}
	snap, err := inst.pool.Snapshot()
	if err != nil {
		return err
	}

	views := make([]*pool.Account, 0, len(accounts))
	for _, addr := range accounts {
		acct, err := inst.pool.Account(addr)
		if err != nil {
			return err
		}
		views = append(views, pool.ConvertAccount(acct))
	}
	return printJSON(struct {
		Pool     *pool.Snapshot  `json:"pool"`
		Accounts []*pool.Account `json:"accounts,omitempty"`
	}{
		pool.ConvertSnapshot(cfg.rewardsConfig(), snap),
		views,
	})
}
