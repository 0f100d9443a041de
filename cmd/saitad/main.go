// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/saitachain/staking/api"
	"github.com/saitachain/staking/api/admin/health"
	"github.com/saitachain/staking/cmd/saitad/httpserver"
	"github.com/saitachain/staking/cmd/saitad/node"
	"github.com/saitachain/staking/config"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/metrics"
	"github.com/saitachain/staking/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Version: fullVersion(),
		Name:    "saitad",
		Usage:   "Liquid staking node of the SAITA chain",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			apiBacktraceLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
			blockIntervalFlag,
			blocksPerEraFlag,
			devFlag,
			persistFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "dump-config",
				Usage:  "print the effective configuration as YAML",
				Flags:  []cli.Flag{configFlag},
				Action: dumpConfigAction,
			},
			{
				Name:   "dev-accounts",
				Usage:  "list the accounts funded by the dev configuration",
				Action: devAccountsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	params, err := cfg.RuntimeParams()
	if err != nil {
		return err
	}
	gen, err := cfg.RuntimeGenesis()
	if err != nil {
		return err
	}

	dbs, err := openDatabases(ctx)
	if err != nil {
		return err
	}
	defer dbs.Close()

	rt, err := runtime.New(dbs.main, dbs.events, params)
	if err != nil {
		return err
	}
	if _, err := rt.InitGenesis(gen); err != nil {
		return err
	}

	blockInterval := time.Duration(ctx.Uint64(blockIntervalFlag.Name)) * time.Second
	if blockInterval == 0 {
		return fmt.Errorf("--%s must be positive", blockIntervalFlag.Name)
	}
	h := health.New(blockInterval)
	h.Initialized(rt.Initialized())

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	var metricsURL, adminURL string
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, stop, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}
	if ctx.Bool(enableAdminFlag.Name) {
		url, stop, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), h, &apiLogs)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); stop() }()
		adminURL = url
	}

	handler, closeSubs := api.New(rt, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		BacktraceLimit:  uint32(ctx.Uint64(apiBacktraceLimitFlag.Name)),
		EnableReqLogger: &apiLogs,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		DevMode:         ctx.Bool(devFlag.Name),
	})
	apiURL, stopAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		handler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); closeSubs(); stopAPI() }()

	printStartupMessage(os.Stdout, cfg, dbs.dir, apiURL, adminURL, metricsURL)

	n := node.New(rt, h, node.Options{
		BlockInterval: blockInterval,
		BlocksPerEra:  uint32(ctx.Uint64(blocksPerEraFlag.Name)),
	})
	g, gctx := errgroup.WithContext(exitSignal)
	g.Go(func() error {
		return n.Run(gctx)
	})
	return g.Wait()
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func devAccountsAction(_ *cli.Context) error {
	for i, a := range config.DevAccounts() {
		fmt.Printf("dev%d %v\n", i, a.Address)
	}
	return nil
}
