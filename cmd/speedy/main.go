// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/speedyracing/speedy/api"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/log"
	"github.com/speedyracing/speedy/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
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
		Name:      "Speedy",
		Usage:     "SpeedyRacing reward ledger and custody service",
		Copyright: "2025 The SpeedyRacing developers",
		Flags: []cli.Flag{
			dataDirFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			verbosityFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	logLevel := initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	dataDir := makeDataDir(ctx)

	store := openMainDB(ctx, dataDir)
	defer func() { logger.Info("closing main database..."); store.Close() }()

	logDB := openLogDB(dataDir)
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	eng, err := ledger.New(store, logDB)
	if err != nil {
		return errors.Wrap(err, "open ledger")
	}

	apiHandler := api.New(eng, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})
	apiTimeout := time.Duration(ctx.Uint64(apiTimeoutFlag.Name)) * time.Millisecond

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(sigCtx)

	apiURL, err := startHTTPServer(
		"api",
		ctx.String(apiAddrFlag.Name),
		http.TimeoutHandler(apiHandler, apiTimeout, "api request timeout"),
		group,
		groupCtx,
	)
	if err != nil {
		return err
	}

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		if metricsURL, err = startHTTPServer(
			"metrics",
			ctx.String(metricsAddrFlag.Name),
			metrics.HTTPHandler(),
			group,
			groupCtx,
		); err != nil {
			return err
		}
	}

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		url, closeAdmin, err := api.NewAdminServer(ctx.String(adminAddrFlag.Name), logLevel).Start()
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeAdmin() }()
		adminURL = url
	}

	printStartupMessage(dataDir, apiURL, metricsURL, adminURL, eng)

	return group.Wait()
}
