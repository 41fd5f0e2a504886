// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

// ReasonFor maps a fused score to a human-readable reason.
// The text is cosmetic and never affects ranking.
func ReasonFor(score float64) string {
	switch {
	case score >= 0.8:
		return "Highly recommended based on your interests"
	case score >= 0.6:
		return "Members like you also joined this group"
	case score >= 0.4:
		return "Popular in your area"
	default:
		return "Might interest you"
	}
}

// Assemble hydrates ranked candidates with their group records.
// Candidates without a record in groups are skipped; order is preserved.
func Assemble(ranked []Ranked, groups map[int64]Group, breakdown Breakdown) []Result {
	results := make([]Result, 0, len(ranked))
	for _, r := range ranked {
		g, ok := groups[r.GroupID]
		if !ok {
			continue
		}
		results = append(results, Result{
			Group:   g,
			Score:   r.Score,
			Reason:  ReasonFor(r.Score),
			Signals: breakdown[r.GroupID],
		})
	}
	return results
}
