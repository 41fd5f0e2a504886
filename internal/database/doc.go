// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

/*
Package database is the SQL data source for the recommendation engine.

Store reads the membership graph, user profiles and visible groups through
database/sql over either DuckDB (the default, embedded) or PostgreSQL (pgx).
Queries use $n placeholders, which both drivers accept. Every read runs with
a per-query timeout behind a gobreaker circuit breaker, so a failing
database makes signals degrade quickly instead of stacking timeouts.

Store also implements interactions.Sink by inserting into the
group_interactions table. The engine never reads that table back.

Tables:
  - users: bio, free-text interests, optional location
  - user_activity: category tag counts per user
  - community_groups: name, description, category, visibility, featured flag, optional location
  - group_members: membership graph with active/inactive status
  - group_interactions: recorded feedback events
  - schema_migrations: applied migration versions

Usage:

	store, err := database.Open(ctx, database.Options{Driver: database.DriverDuckDB, DSN: path}, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	if _, err := store.Migrate(ctx); err != nil {
		return err
	}
	engine, err := recommend.NewEngine(cfg, store, logger)
*/
package database
