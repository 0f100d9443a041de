// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger.
// Package level loggers are declared at init time, before the command line
// installs handlers, so they resolve the root logger on every call.
package log

import (
	"io"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels, from the most to the least verbose.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

var (
	level   = new(slog.LevelVar)
	handler atomic.Pointer[ethlog.GlogHandler]
)

// Logger writes leveled, key/value structured records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) root() ethlog.Logger {
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.root().Crit(msg, ctx...) }

// WithContext returns a logger that always attaches ctx to its records.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &lazyLogger{}
}

func Debug(msg string, ctx ...any) { ethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { ethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { ethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { ethlog.Root().Error(msg, ctx...) }

// Setup installs the root handler. verbosity uses the legacy 0 (crit) to 5 (trace) scale.
func Setup(w io.Writer, verbosity int, json, useColor bool) {
	var h slog.Handler
	if json {
		h = ethlog.JSONHandler(w)
	} else {
		h = ethlog.NewTerminalHandler(w, useColor)
	}
	glog := ethlog.NewGlogHandler(h)
	level.Set(ethlog.FromLegacyLevel(verbosity))
	glog.Verbosity(level.Level())
	handler.Store(glog)
	ethlog.SetDefault(ethlog.NewLogger(glog))
}

// SetLevel changes the verbosity of the handler installed by Setup.
func SetLevel(l slog.Level) {
	level.Set(l)
	if h := handler.Load(); h != nil {
		h.Verbosity(l)
	}
}

// Level returns the current verbosity.
func Level() slog.Level {
	return level.Level()
}

// LevelName renders a level the way the terminal handler does, e.g. "trace".
func LevelName(l slog.Level) string {
	return ethlog.LevelString(l)
}

// Discard silences all loggers.
func Discard() {
	handler.Store(nil)
	ethlog.SetDefault(ethlog.NewLogger(ethlog.DiscardHandler()))
}
