// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/saitachain/staking/config"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/lvldb"
)

func initLogger(ctx *cli.Context) {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.Setup(os.Stderr, ctx.Int(verbosityFlag.Name), ctx.Bool(jsonLogsFlag.Name), useColor)
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", ".saitad")
	}
	return filepath.Join(home, ".saitad")
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("--%s must be set", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

type databases struct {
	main   *lvldb.LevelDB
	events *eventdb.EventDB
	dir    string
}

func (d *databases) Close() {
	log.Info("closing event database...")
	if err := d.events.Close(); err != nil {
		log.Warn("failed to close event database", "err", err)
	}
	log.Info("closing main database...")
	if err := d.main.Close(); err != nil {
		log.Warn("failed to close main database", "err", err)
	}
}

func openDatabases(ctx *cli.Context) (*databases, error) {
	if ctx.Bool(devFlag.Name) && !ctx.Bool(persistFlag.Name) {
		main, err := lvldb.NewMem()
		if err != nil {
			return nil, err
		}
		events, err := eventdb.NewMem()
		if err != nil {
			main.Close()
			return nil, err
		}
		return &databases{main, events, "Memory"}, nil
	}

	dir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	cacheMB := ctx.Int(cacheFlag.Name)
	main, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	events, err := eventdb.New(filepath.Join(dir, "events.db"))
	if err != nil {
		main.Close()
		return nil, errors.Wrap(err, "open event database")
	}
	return &databases{main, events, dir}, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(w io.Writer, cfg *config.Config, dataDir, apiURL, adminURL, metricsURL string) {
	fmt.Fprintf(w, `Starting %v
    Pool account   [ %v ]
    Treasury       [ %v ]
    Validators     [ %v ]
    Data dir       [ %v ]
    API portal     [ %v ]
    Admin portal   [ %v ]
    Metrics        [ %v ]
`,
		fullVersion(),
		cfg.PoolAccount(), cfg.Accounts.Treasury, len(cfg.Genesis.Validators),
		dataDir, apiURL, orNone(adminURL), orNone(metricsURL))
}

func orNone(s string) string {
	if s == "" {
		return "Disabled"
	}
	return s
}
