// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/metrics"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

var _ interactions.Sink = (*Store)(nil)

// Name implements interactions.Sink.
func (s *Store) Name() string {
	return "database"
}

// Write implements interactions.Sink. Duplicate events are stored as
// separate rows. A repeated event ID is a redelivery and is ignored.
//
//nolint:gocritic // hugeParam: ev passed by value for immutability
func (s *Store) Write(ctx context.Context, ev interactions.Event) error {
	start := time.Now()
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO group_interactions (id, tenant_id, user_id, group_id, action, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		ev.ID, ev.TenantID, ev.UserID, ev.GroupID, ev.Action.String(), ev.Timestamp.UTC())
	metrics.RecordDBQuery("insert", "group_interactions", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// CountInteractions returns the stored interactions for a tenant.
func (s *Store) CountInteractions(ctx context.Context, tenantID int64) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var n int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_interactions WHERE tenant_id = $1`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
