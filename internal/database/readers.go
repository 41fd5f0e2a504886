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
	"sort"
	"strings"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Compile-time check.
var _ recommend.DataSource = (*Store)(nil)

const statusActive = "active"

// ActiveGroupIDs implements recommend.MembershipReader.
func (s *Store) ActiveGroupIDs(ctx context.Context, tenantID, userID int64) ([]int64, error) {
	return read(s, "select", "group_members", func() ([]int64, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		rows, err := s.conn.QueryContext(ctx, `
			SELECT group_id FROM group_members
			WHERE tenant_id = $1 AND user_id = $2 AND status = $3
			ORDER BY group_id`,
			tenantID, userID, statusActive)
		if err != nil {
			return nil, err
		}
		return scanIDs(rows)
	})
}

// MembersOfGroups implements recommend.MembershipReader.
func (s *Store) MembersOfGroups(ctx context.Context, tenantID int64, groupIDs []int64) ([]int64, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	return read(s, "select", "group_members", func() ([]int64, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		seen := make(map[int64]struct{})
		for _, chunk := range chunkIDs(groupIDs, inChunkSize) {
			in, args := inClause(3, chunk)
			query := `
				SELECT DISTINCT user_id FROM group_members
				WHERE tenant_id = $1 AND status = $2 AND group_id IN (` + in + `)`
			rows, err := s.conn.QueryContext(ctx, query, append([]interface{}{tenantID, statusActive}, args...)...)
			if err != nil {
				return nil, err
			}
			ids, err := scanIDs(rows)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				seen[id] = struct{}{}
			}
		}

		users := make([]int64, 0, len(seen))
		for id := range seen {
			users = append(users, id)
		}
		sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
		return users, nil
	})
}

// ActiveGroupsOfUsers implements recommend.MembershipReader. Large user
// sets are queried in chunks of inChunkSize.
func (s *Store) ActiveGroupsOfUsers(ctx context.Context, tenantID int64, userIDs []int64) (map[int64][]int64, error) {
	if len(userIDs) == 0 {
		return map[int64][]int64{}, nil
	}
	return read(s, "select", "group_members", func() (map[int64][]int64, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		out := make(map[int64][]int64, len(userIDs))
		for _, chunk := range chunkIDs(userIDs, inChunkSize) {
			if err := s.groupsOfUsers(ctx, tenantID, chunk, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	})
}

func (s *Store) groupsOfUsers(ctx context.Context, tenantID int64, userIDs []int64, out map[int64][]int64) error {
	in, args := inClause(3, userIDs)
	query := `
		SELECT user_id, group_id FROM group_members
		WHERE tenant_id = $1 AND status = $2 AND user_id IN (` + in + `)
		ORDER BY user_id, group_id`
	rows, err := s.conn.QueryContext(ctx, query, append([]interface{}{tenantID, statusActive}, args...)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var uid, gid int64
		if err := rows.Scan(&uid, &gid); err != nil {
			return fmt.Errorf("scan membership: %w", err)
		}
		out[uid] = append(out[uid], gid)
	}
	return rows.Err()
}

// UserProfile implements recommend.ProfileReader. An unknown user yields an
// empty profile, not an error.
func (s *Store) UserProfile(ctx context.Context, tenantID, userID int64) (*recommend.UserProfile, error) {
	return read(s, "select", "users", func() (*recommend.UserProfile, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		profile := &recommend.UserProfile{UserID: userID}
		var lat, lon sql.NullFloat64
		err := s.conn.QueryRowContext(ctx, `
			SELECT bio, interests, latitude, longitude FROM users
			WHERE tenant_id = $1 AND id = $2`,
			tenantID, userID).Scan(&profile.Bio, &profile.Interests, &lat, &lon)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return profile, nil
		case err != nil:
			return nil, err
		}
		profile.Location = geoPoint(lat, lon)

		rows, err := s.conn.QueryContext(ctx, `
			SELECT category, event_count FROM user_activity
			WHERE tenant_id = $1 AND user_id = $2 AND event_count > 0
			ORDER BY event_count DESC, category`,
			tenantID, userID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var cc recommend.CategoryCount
			if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
				return nil, fmt.Errorf("scan activity: %w", err)
			}
			profile.Activity = append(profile.Activity, cc)
		}
		return profile, rows.Err()
	})
}

// VisibleGroups implements recommend.GroupReader. Member counts are live.
func (s *Store) VisibleGroups(ctx context.Context, tenantID int64) ([]recommend.Group, error) {
	return read(s, "select", "community_groups", func() ([]recommend.Group, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		rows, err := s.conn.QueryContext(ctx, `
			SELECT g.id, g.name, g.description, g.category, g.visibility, g.featured,
				g.latitude, g.longitude,
				(SELECT COUNT(*) FROM group_members m
				 WHERE m.tenant_id = g.tenant_id AND m.group_id = g.id AND m.status = $2) AS member_count
			FROM community_groups g
			WHERE g.tenant_id = $1 AND g.visibility = $3
			ORDER BY g.id`,
			tenantID, statusActive, string(recommend.VisibilityPublic))
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var groups []recommend.Group
		for rows.Next() {
			var (
				g          recommend.Group
				visibility string
				lat, lon   sql.NullFloat64
				members    int64
			)
			if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Category, &visibility,
				&g.Featured, &lat, &lon, &members); err != nil {
				return nil, fmt.Errorf("scan group: %w", err)
			}
			g.TenantID = tenantID
			g.Visibility = recommend.Visibility(visibility)
			g.Location = geoPoint(lat, lon)
			g.MemberCount = int(members)
			groups = append(groups, g)
		}
		return groups, rows.Err()
	})
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// inChunkSize caps the bind parameters of one IN list. PostgreSQL allows
// at most 65535 per statement.
var inChunkSize = 1000

// chunkIDs deduplicates and sorts ids, then splits them into runs of at
// most size.
func chunkIDs(ids []int64, size int) [][]int64 {
	uniq := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	sorted := make([]int64, 0, len(uniq))
	for id := range uniq {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if size <= 0 {
		size = len(sorted)
	}
	chunks := make([][]int64, 0, (len(sorted)+size-1)/max(size, 1))
	for len(sorted) > 0 {
		n := min(size, len(sorted))
		chunks = append(chunks, sorted[:n:n])
		sorted = sorted[n:]
	}
	return chunks
}

// inClause returns "$start, $start+1, ..." for the ids, deduplicated and
// sorted, with matching args.
func inClause(start int, ids []int64) (string, []interface{}) {
	uniq := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	sorted := make([]int64, 0, len(uniq))
	for id := range uniq {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	placeholders := make([]string, len(sorted))
	args := make([]interface{}, len(sorted))
	for i, id := range sorted {
		placeholders[i] = fmt.Sprintf("$%d", start+i)
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

func geoPoint(lat, lon sql.NullFloat64) *recommend.GeoPoint {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &recommend.GeoPoint{Lat: lat.Float64, Lon: lon.Float64}
}
