// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Membership is one row of the membership graph.
type Membership struct {
	UserID  int64
	GroupID int64
	Active  bool
}

// Fixture is a tenant snapshot for Seed.
type Fixture struct {
	TenantID    int64
	Users       []recommend.UserProfile
	Groups      []recommend.Group
	Memberships []Membership
}

// Seed inserts a fixture inside one transaction. Memberships are owned by
// other services in production; Seed exists for tests and local demos.
//
//nolint:gocritic // hugeParam: fixture passed by value for immutability
func (s *Store) Seed(ctx context.Context, f Fixture) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range f.Users {
		if err := seedUser(ctx, tx, f.TenantID, &f.Users[i]); err != nil {
			return err
		}
	}

	for i := range f.Groups {
		g := &f.Groups[i]
		visibility := g.Visibility
		if visibility == "" {
			visibility = recommend.VisibilityPublic
		}
		lat, lon := nullPoint(g.Location)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO community_groups (tenant_id, id, name, description, category, visibility, featured, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			f.TenantID, g.ID, g.Name, g.Description, g.Category, string(visibility), g.Featured, lat, lon); err != nil {
			return fmt.Errorf("seed group %d: %w", g.ID, err)
		}
	}

	for _, m := range f.Memberships {
		status := "inactive"
		if m.Active {
			status = statusActive
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO group_members (tenant_id, group_id, user_id, status) VALUES ($1, $2, $3, $4)`,
			f.TenantID, m.GroupID, m.UserID, status); err != nil {
			return fmt.Errorf("seed membership %d/%d: %w", m.UserID, m.GroupID, err)
		}
	}

	return tx.Commit()
}

func seedUser(ctx context.Context, tx *sql.Tx, tenantID int64, u *recommend.UserProfile) error {
	lat, lon := nullPoint(u.Location)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (tenant_id, id, bio, interests, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		tenantID, u.UserID, u.Bio, u.Interests, lat, lon); err != nil {
		return fmt.Errorf("seed user %d: %w", u.UserID, err)
	}
	for _, a := range u.Activity {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_activity (tenant_id, user_id, category, event_count) VALUES ($1, $2, $3, $4)`,
			tenantID, u.UserID, a.Category, a.Count); err != nil {
			return fmt.Errorf("seed activity %d/%s: %w", u.UserID, a.Category, err)
		}
	}
	return nil
}

func nullPoint(p *recommend.GeoPoint) (lat, lon sql.NullFloat64) {
	if p == nil {
		return lat, lon
	}
	return sql.NullFloat64{Float64: p.Lat, Valid: true}, sql.NullFloat64{Float64: p.Lon, Valid: true}
}
