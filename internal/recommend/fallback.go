// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import "sort"

// PopularScore is the neutral score given to every fallback result.
const PopularScore = 0.5

// PopularReason is the reason attached to every fallback result.
const PopularReason = "Popular in your community."

// Popular returns the most joined visible groups the user is not excluded
// from. Groups are ordered by member count descending, then featured groups
// first, then ascending ID. Every result carries PopularScore and
// PopularReason.
func Popular(groups []Group, exclude map[int64]struct{}, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}

	candidates := make([]Group, 0, len(groups))
	for i := range groups {
		if groups[i].Visibility == VisibilityPrivate {
			continue
		}
		if _, excluded := exclude[groups[i].ID]; excluded {
			continue
		}
		candidates = append(candidates, groups[i])
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MemberCount != b.MemberCount {
			return a.MemberCount > b.MemberCount
		}
		if a.Featured != b.Featured {
			return a.Featured
		}
		return a.ID < b.ID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]Result, len(candidates))
	for i := range candidates {
		results[i] = Result{
			Group:  candidates[i],
			Score:  PopularScore,
			Reason: PopularReason,
		}
	}
	return results
}
