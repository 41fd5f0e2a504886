// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import "sort"

// Ranked is a candidate that survived ranking.
type Ranked struct {
	GroupID int64
	Score   float64
}

// RankOptions controls which candidates Rank keeps.
type RankOptions struct {
	// Exclude holds group IDs that must never be returned.
	Exclude map[int64]struct{}

	// Eligible restricts results to these group IDs. Nil means no restriction.
	Eligible map[int64]struct{}

	// Limit truncates the result. Zero or negative yields an empty result.
	Limit int
}

// Rank filters the fused scores and orders them by score descending, with
// ties broken by ascending group ID so identical inputs always produce
// identical output.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func Rank(fused ScoreMap, opts RankOptions) []Ranked {
	if opts.Limit <= 0 || len(fused) == 0 {
		return []Ranked{}
	}

	ranked := make([]Ranked, 0, len(fused))
	for groupID, score := range fused {
		if _, excluded := opts.Exclude[groupID]; excluded {
			continue
		}
		if opts.Eligible != nil {
			if _, ok := opts.Eligible[groupID]; !ok {
				continue
			}
		}
		ranked = append(ranked, Ranked{GroupID: groupID, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].GroupID < ranked[j].GroupID
	})

	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}

// idSet builds a set from any number of ID slices.
func idSet(lists ...[]int64) map[int64]struct{} {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	set := make(map[int64]struct{}, n)
	for _, l := range lists {
		for _, id := range l {
			set[id] = struct{}{}
		}
	}
	return set
}
