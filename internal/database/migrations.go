// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package database

import (
	"context"
	"fmt"
	"time"
)

// Migration is one versioned schema change. Statements run in order.
type Migration struct {
	Version    int
	Name       string
	Statements []string
	AppliedAt  time.Time
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// migrations are append-only. The DDL is the common subset of DuckDB and
// PostgreSQL.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				tenant_id BIGINT NOT NULL,
				id BIGINT NOT NULL,
				bio TEXT NOT NULL DEFAULT '',
				interests TEXT NOT NULL DEFAULT '',
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				PRIMARY KEY (tenant_id, id)
			)`,
			`CREATE TABLE IF NOT EXISTS community_groups (
				tenant_id BIGINT NOT NULL,
				id BIGINT NOT NULL,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				visibility TEXT NOT NULL DEFAULT 'public',
				featured BOOLEAN NOT NULL DEFAULT FALSE,
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				PRIMARY KEY (tenant_id, id)
			)`,
			`CREATE TABLE IF NOT EXISTS group_members (
				tenant_id BIGINT NOT NULL,
				group_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				status TEXT NOT NULL DEFAULT 'active',
				PRIMARY KEY (tenant_id, group_id, user_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_group_members_user ON group_members (tenant_id, user_id)`,
			`CREATE TABLE IF NOT EXISTS user_activity (
				tenant_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				category TEXT NOT NULL,
				event_count INTEGER NOT NULL,
				PRIMARY KEY (tenant_id, user_id, category)
			)`,
			`CREATE TABLE IF NOT EXISTS group_interactions (
				id TEXT PRIMARY KEY,
				tenant_id BIGINT NOT NULL,
				user_id BIGINT NOT NULL,
				group_id BIGINT NOT NULL,
				action TEXT NOT NULL,
				occurred_at TIMESTAMP NOT NULL
			)`,
		},
	},
}

// Migrate applies every migration not yet recorded in schema_migrations.
// It returns the number applied.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	if _, err := s.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		for i, stmt := range m.Statements {
			if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
				return count, fmt.Errorf("failed to execute migration v%d (%s) statement %d: %w", m.Version, m.Name, i+1, err)
			}
		}
		if _, err := s.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.Version, m.Name); err != nil {
			return count, fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		count++
	}

	if count > 0 {
		s.logger.Info().Int("applied", count).Msg("database migrations applied")
	}
	return count, nil
}

func (s *Store) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var version int
	err := s.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
