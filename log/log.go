// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides leveled, key-value structured logging on top of log/slog.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger writes key-value log records at the usual levels.
type Logger interface {
	// With returns a new Logger that has the given context attached.
	With(ctx ...any) Logger

	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Debug(msg string, ctx ...any) { l.write(slog.LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(slog.LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(slog.LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.write(slog.LevelError, msg, ctx...) }

func (l *logger) write(level slog.Level, msg string, ctx ...any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the handler of the root logger.
func SetDefault(h slog.Handler) {
	root.Store(&logger{slog.New(h)})
}

// Root returns the root logger.
func Root() Logger {
	return root.Load()
}

// WithContext returns a logger bound to the root with the given context attached.
// Typical use is one per package:
//
//	var logger = log.WithContext("pkg", "api")
func WithContext(ctx ...any) Logger {
	return &rootBound{ctx}
}

// rootBound defers handler resolution to call time, so package-level loggers
// created before SetDefault still log through the configured handler.
type rootBound struct {
	ctx []any
}

func (r *rootBound) With(ctx ...any) Logger {
	return &rootBound{append(append([]any{}, r.ctx...), ctx...)}
}

func (r *rootBound) Debug(msg string, ctx ...any) { r.resolve().Debug(msg, ctx...) }
func (r *rootBound) Info(msg string, ctx ...any)  { r.resolve().Info(msg, ctx...) }
func (r *rootBound) Warn(msg string, ctx ...any)  { r.resolve().Warn(msg, ctx...) }
func (r *rootBound) Error(msg string, ctx ...any) { r.resolve().Error(msg, ctx...) }

func (r *rootBound) resolve() Logger {
	return root.Load().With(r.ctx...)
}

// NewStderrHandler returns a terminal handler writing to stderr at the given level.
func NewStderrHandler(lvl *slog.LevelVar, useColor bool) slog.Handler {
	return NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
}
