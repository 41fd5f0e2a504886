// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package signals

import (
	"context"
	"fmt"
	"sort"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Collaborative recommends groups joined by users whose memberships overlap
// with the target user's.
//
// A neighbour is any other user sharing at least MinOverlap active groups
// with the target. Its similarity is the Jaccard index of the two group
// sets:
//
//	sim(u, v) = |G(u) ∩ G(v)| / |G(u) ∪ G(v)|
//
// The MaxNeighbors most similar neighbours (similarity desc, overlap desc,
// user ID asc) each add their similarity to every group they belong to that
// the target does not. Scores are then divided by the maximum.
type Collaborative struct {
	base
	reader recommend.MembershipReader
	cfg    recommend.CollaborativeConfig
}

// NewCollaborative creates a collaborative filter backed by reader.
func NewCollaborative(reader recommend.MembershipReader, cfg recommend.CollaborativeConfig) *Collaborative {
	return &Collaborative{
		base:   base{name: recommend.SignalCollaborative},
		reader: reader,
		cfg:    cfg,
	}
}

// neighbor is a user with enough shared groups to contribute scores.
type neighbor struct {
	userID     int64
	overlap    int
	similarity float64
	groups     []int64
}

// Generate implements recommend.Generator.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (c *Collaborative) Generate(ctx context.Context, subject recommend.Subject) (recommend.ScoreMap, error) {
	targetGroups := uniqueSorted(subject.Memberships)
	if len(targetGroups) == 0 {
		return recommend.ScoreMap{}, nil
	}

	target := make(map[int64]struct{}, len(targetGroups))
	for _, g := range targetGroups {
		target[g] = struct{}{}
	}

	members, err := c.reader.MembersOfGroups(ctx, subject.TenantID, targetGroups)
	if err != nil {
		return nil, fmt.Errorf("members of groups: %w", err)
	}

	candidates := make([]int64, 0, len(members))
	for _, uid := range uniqueSorted(members) {
		if uid != subject.UserID {
			candidates = append(candidates, uid)
		}
	}
	if len(candidates) == 0 {
		return recommend.ScoreMap{}, nil
	}

	groupsOf, err := c.reader.ActiveGroupsOfUsers(ctx, subject.TenantID, candidates)
	if err != nil {
		return nil, fmt.Errorf("active groups of users: %w", err)
	}

	neighbors := c.selectNeighbors(target, candidates, groupsOf)
	if len(neighbors) == 0 {
		return recommend.ScoreMap{}, nil
	}

	scores := make(recommend.ScoreMap)
	for _, n := range neighbors {
		for _, g := range n.groups {
			if _, member := target[g]; member {
				continue
			}
			scores[g] += n.similarity
		}
	}

	return normalizeByMax(scores), nil
}

// selectNeighbors keeps candidates sharing at least MinOverlap groups with
// the target and returns the top MaxNeighbors by similarity.
func (c *Collaborative) selectNeighbors(target map[int64]struct{}, candidates []int64, groupsOf map[int64][]int64) []neighbor {
	neighbors := make([]neighbor, 0, len(candidates))

	for _, uid := range candidates {
		groups := uniqueSorted(groupsOf[uid])
		overlap := 0
		for _, g := range groups {
			if _, ok := target[g]; ok {
				overlap++
			}
		}
		if overlap < c.cfg.MinOverlap {
			continue
		}

		union := len(target) + len(groups) - overlap
		neighbors = append(neighbors, neighbor{
			userID:     uid,
			overlap:    overlap,
			similarity: float64(overlap) / float64(union),
			groups:     groups,
		})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		a, b := neighbors[i], neighbors[j]
		if a.similarity != b.similarity {
			return a.similarity > b.similarity
		}
		if a.overlap != b.overlap {
			return a.overlap > b.overlap
		}
		return a.userID < b.userID
	})

	if len(neighbors) > c.cfg.MaxNeighbors {
		neighbors = neighbors[:c.cfg.MaxNeighbors]
	}
	return neighbors
}
