// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/log"
	"github.com/speedyracing/speedy/logdb"
)

func fatal(args ...interface{}) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	logLevel := new(slog.LevelVar)
	switch ctx.Int(verbosityFlag.Name) {
	case 0:
		logLevel.Set(slog.LevelError)
	case 1:
		logLevel.Set(slog.LevelWarn)
	case 2:
		logLevel.Set(slog.LevelInfo)
	default:
		logLevel.Set(slog.LevelDebug)
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewStderrHandler(logLevel, useColor))
	return logLevel
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".speedy")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openMainDB(ctx *cli.Context, dataDir string) kv.Store {
	dir := filepath.Join(dataDir, "main.db")
	store, err := kv.New(dir, ctx.Int(cacheFlag.Name))
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", dir, err))
	}
	return store
}

func openLogDB(dataDir string) *logdb.LogDB {
	path := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", path, err))
	}
	return db
}

func startHTTPServer(name, addr string, handler http.Handler, group *errgroup.Group, ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	server := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	group.Go(func() error {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			return errors.Wrap(err, name)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping server...", "name", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return "http://" + listener.Addr().String() + "/", nil
}

func printStartupMessage(dataDir, apiURL, metricsURL, adminURL string, eng *ledger.Ledger) {
	fmt.Printf(`Starting Speedy
    Version      %v
    Data dir     %v
    API portal   %v
`, fullVersion(), dataDir, apiURL)
	if metricsURL != "" {
		fmt.Printf("    Metrics      %v\n", metricsURL)
	}
	if adminURL != "" {
		fmt.Printf("    Admin        %v\n", adminURL)
	}
	if st, err := eng.State(); err == nil {
		fmt.Printf("    Admin acct   %v\n    Pool acct    %v\n", st.Admin, st.Pool)
	} else {
		fmt.Println("    Ledger       not initialized")
	}
}
