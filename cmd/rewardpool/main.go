// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "rewardpool")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "rewardpool",
		Usage:     "Staking reward pool",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiEventsLimitFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			enableAPILogsFlag,
			adminAddrFlag,
			enableAdminFlag,
			enableMetricsFlag,
			verbosityFlag,
			ntpHostFlag,
			ntpToleranceFlag,
		},
		Action: serveAction,
		Commands: []cli.Command{
			{
				Name:      "simulate",
				Usage:     "replay a scenario against an in-memory pool",
				ArgsUsage: "<scenario.yaml>",
				Flags: []cli.Flag{
					verbosityFlag,
					dumpFlag,
					strictFlag,
				},
				Action: simulateAction,
			},
			{
				Name:  "inspect",
				Usage: "print the state of a persisted pool",
				Flags: []cli.Flag{
					configFlag,
					dataDirFlag,
					cacheFlag,
					verbosityFlag,
					accountFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
