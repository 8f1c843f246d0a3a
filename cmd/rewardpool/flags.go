// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/log"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to the pool config file (yaml)",
		EnvVar: "REWARDPOOL_CONFIG",
	}
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for pool databases",
		EnvVar: "REWARDPOOL_DATA_DIR",
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  256,
		Usage:  "megabytes of ram allocated to the state database cache",
		EnvVar: "REWARDPOOL_CACHE",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8680",
		Usage:  "API service listening address",
		EnvVar: "REWARDPOOL_API_ADDR",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration (in milliseconds) greater than this threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log details of all requests responded with 5xx",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2114",
		Usage:  "admin service listening address",
		EnvVar: "REWARDPOOL_ADMIN_ADDR",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection, served by the admin server",
		EnvVar: "REWARDPOOL_ENABLE_METRICS",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-5)",
		EnvVar: "REWARDPOOL_VERBOSITY",
	}
	ntpHostFlag = cli.StringFlag{
		Name:  "ntp-host",
		Value: clock.DefaultNTPHost,
		Usage: "NTP server used to check the local clock, empty to skip the check",
	}
	ntpToleranceFlag = cli.DurationFlag{
		Name:  "ntp-tolerance",
		Value: clock.DefaultTolerance,
		Usage: "largest clock offset accepted before refusing to start",
	}

	// simulate flags
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the final pool snapshot in full",
	}
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "stop at the first reverted step",
	}

	// inspect flags
	accountFlag = cli.StringSliceFlag{
		Name:  "account",
		Usage: "account to report, can be repeated",
	}
)
