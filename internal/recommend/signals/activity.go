// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package signals

import (
	"context"
	"math"
	"sort"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/keywords"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Activity scores groups against the user's most frequent recent activity tags.
//
// Keywords are extracted from the names of the top categories and compared
// with the keywords of each group's name, description and category:
//
//	score(g) = min(1, |A ∩ K(g)| / |A|)
//
// Groups with no overlap are skipped. The activity window itself is applied
// by the profile reader.
type Activity struct {
	base
	topCategories int
}

// NewActivity creates an activity scorer.
func NewActivity(cfg recommend.ActivityConfig) *Activity {
	return &Activity{
		base:          base{name: recommend.SignalActivity},
		topCategories: cfg.TopCategories,
	}
}

// Generate implements recommend.Generator.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (a *Activity) Generate(ctx context.Context, subject recommend.Subject) (recommend.ScoreMap, error) {
	scores := make(recommend.ScoreMap)
	if subject.Profile == nil || len(subject.Profile.Activity) == 0 {
		return scores, nil
	}

	activityKeywords := keywords.Extract(topCategories(subject.Profile.Activity, a.topCategories)...)
	if activityKeywords.Len() == 0 {
		return scores, nil
	}
	total := float64(activityKeywords.Len())

	for i := range subject.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g := &subject.Groups[i]
		overlap := activityKeywords.Intersect(keywords.Extract(g.Name, g.Description, g.Category))
		if overlap == 0 {
			continue
		}
		scores[g.ID] = math.Min(1, float64(overlap)/total)
	}

	return scores, nil
}

// topCategories returns the names of the n most frequent categories,
// ties broken alphabetically.
func topCategories(activity []recommend.CategoryCount, n int) []string {
	sorted := make([]recommend.CategoryCount, len(activity))
	copy(sorted, activity)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Category < sorted[j].Category
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = c.Category
	}
	return names
}
