// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/api/admin"
	"github.com/vechain/rewardpool/api/subscriptions"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/health"
	"github.com/vechain/rewardpool/metrics"
)

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)
	cfg := mustLoadConfig(ctx)
	healthStatus := &health.Health{}

	if host := ctx.String(ntpHostFlag.Name); host != "" {
		tolerance := ctx.Duration(ntpToleranceFlag.Name)
		offset, err := clock.CheckOffset(host, tolerance)
		if err != nil {
			return err
		}
		healthStatus.ClockChecked(offset, tolerance)
		logger.Info("clock checked", "host", host, "offset", offset)
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	dataDir := makeDataDir(ctx)
	mainDB := openMainDB(ctx, dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	eventDB := openEventDB(dataDir)
	defer func() { logger.Info("closing event database..."); eventDB.Close() }()

	hub := subscriptions.NewHub()
	defer hub.Close()

	emitter := healthStatus.WrapEmitter(rewards.Tee(eventDB, hub))
	inst, err := openPool(cfg, mainDB, clock.System{}, emitter, true)
	if err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	apiHandler := api.New(
		inst.pool,
		authority.NewOwner(cfg.Owner),
		eventDB,
		hub,
		api.Options{
			AllowedOrigins:       ctx.String(apiCorsFlag.Name),
			EventsLimit:          ctx.Uint64(apiEventsLimitFlag.Name),
			EnableMetrics:        enableMetrics,
			EnableReqLogger:      apiLogs,
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		},
	)

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(exitCtx)

	apiListener := listen("API", ctx.String(apiAddrFlag.Name))
	logger.Info("API server started", "addr", "http://"+apiListener.Addr().String(), "pool", cfg.Pool.Address)
	g.Go(func() error {
		return serveHTTP(gctx, "API", apiListener, apiHandler)
	})

	if ctx.Bool(enableAdminFlag.Name) || enableMetrics {
		adminListener := listen("admin", ctx.String(adminAddrFlag.Name))
		logger.Info("admin server started", "addr", "http://"+adminListener.Addr().String())
		adminHandler := admin.New(logLevel, apiLogs, healthStatus, enableMetrics)
		g.Go(func() error {
			return serveHTTP(gctx, "admin", adminListener, adminHandler)
		})
	}

	return g.Wait()
}
