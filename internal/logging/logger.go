// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every line written by the process logger.
const ServiceName = "nexus"

// Config holds logging configuration.
type Config struct {
	// Level is trace, debug, info, warn, error, fatal, panic or disabled.
	// Default: info
	Level string

	// Format is json or console.
	// Default: json
	Format string

	// Caller adds file:line to every line.
	Caller bool

	// Timestamp adds the time field.
	// Default: true
	Timestamp bool

	// Environment is added as the env field when set.
	Environment string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	global   = New(DefaultConfig())
	globalMu sync.RWMutex
)

// New builds a logger from cfg without touching the process logger.
// Unknown levels fall back to info.
//
//nolint:gocritic // hugeParam: config passed by value like DefaultConfig returns it
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	logCtx := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Str("service", ServiceName)
	if cfg.Environment != "" {
		logCtx = logCtx.Str("env", cfg.Environment)
	}
	if cfg.Timestamp {
		logCtx = logCtx.Timestamp()
	}
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// Init replaces the process logger. zerolog field names and the time
// format are process-wide, so they are set here and nowhere else.
//
//nolint:gocritic // hugeParam: config passed by value like DefaultConfig returns it
func Init(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := New(cfg)
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// Fatal logs at fatal level through the process logger and exits.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := lookupLevel(level)
	return ok
}

func parseLevel(level string) zerolog.Level {
	if l, ok := lookupLevel(level); ok {
		return l
	}
	return zerolog.InfoLevel
}

// lookupLevel accepts zerolog's level names plus "warning".
func lookupLevel(level string) (zerolog.Level, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	if level == "" {
		return zerolog.NoLevel, false
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.NoLevel, false
	}
	return l, true
}
