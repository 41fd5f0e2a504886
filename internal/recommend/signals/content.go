// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package signals

import (
	"context"
	"strings"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/keywords"
	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Content scores groups by keyword overlap with the user's bio and interests.
//
//	score(g) = jaccard(keywords(bio, interests), keywords(name, description))
//
// Groups without a description are skipped, as are groups with no overlap.
type Content struct {
	base
}

// NewContent creates a content matcher.
func NewContent() *Content {
	return &Content{base: base{name: recommend.SignalContent}}
}

// Generate implements recommend.Generator.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (c *Content) Generate(ctx context.Context, subject recommend.Subject) (recommend.ScoreMap, error) {
	scores := make(recommend.ScoreMap)
	if subject.Profile == nil {
		return scores, nil
	}

	userKeywords := keywords.Extract(subject.Profile.Bio, subject.Profile.Interests)
	if userKeywords.Len() == 0 {
		return scores, nil
	}

	for i := range subject.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g := &subject.Groups[i]
		if strings.TrimSpace(g.Description) == "" {
			continue
		}

		score := userKeywords.Jaccard(keywords.Extract(g.Name, g.Description))
		if score > 0 {
			scores[g.ID] = score
		}
	}

	return scores, nil
}
