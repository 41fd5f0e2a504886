// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Supported drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

// ErrUnknownDriver is returned by Open for drivers other than duckdb and pgx.
var ErrUnknownDriver = errors.New("unknown database driver")

// Options configures Open.
type Options struct {
	// Driver is DriverDuckDB or DriverPostgres.
	Driver string

	// DSN is a DuckDB file path ("" for in-memory) or a PostgreSQL URL.
	DSN string

	// MaxOpenConns caps the pool. 0 leaves the driver default.
	MaxOpenConns int

	// QueryTimeout bounds every query. Default: 5s.
	QueryTimeout time.Duration

	// BreakerTimeout is how long the read breaker stays open. Default: 30s.
	BreakerTimeout time.Duration
}

// Store is the SQL data source. It implements recommend.DataSource for the
// engine and interactions.Sink for the recorder. Safe for concurrent use.
type Store struct {
	conn         *sql.DB
	driver       string
	queryTimeout time.Duration
	breaker      *gobreaker.CircuitBreaker[interface{}]
	logger       zerolog.Logger
}

// Open connects to the database and verifies the connection.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (*Store, error) {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 5 * time.Second
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	var dsn string
	switch opts.Driver {
	case DriverDuckDB:
		if err := ensureDir(opts.DSN); err != nil {
			return nil, err
		}
		dsn = opts.DSN
	case DriverPostgres:
		dsn = opts.DSN
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	conn, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
		conn.SetMaxIdleConns(opts.MaxOpenConns)
	}
	conn.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		conn:         conn,
		driver:       opts.Driver,
		queryTimeout: opts.QueryTimeout,
		logger:       logger.With().Str("component", "database").Str("driver", opts.Driver).Logger(),
	}
	s.breaker = newReadBreaker("database-reads", opts.BreakerTimeout, s.logger)

	s.logger.Info().Msg("database connected")
	return s, nil
}

// ensureDir creates the parent directory of a DuckDB file.
func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

// Driver returns the driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.conn.PingContext(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// closeQuietly closes a resource on an error path where the Close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
