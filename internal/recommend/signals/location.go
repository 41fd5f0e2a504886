// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package signals

import (
	"context"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// Location scores groups by proximity to the user.
//
//	score(g) = 1 - d(user, g) / radius    for d < radius
//
// Groups at or beyond the radius, and groups without coordinates, are skipped.
type Location struct {
	base
	radiusKm float64
}

// NewLocation creates a location scorer with the configured radius.
func NewLocation(cfg recommend.LocationConfig) *Location {
	return &Location{
		base:     base{name: recommend.SignalLocation},
		radiusKm: cfg.RadiusKm,
	}
}

// Generate implements recommend.Generator.
//
//nolint:gocritic // hugeParam: subject passed by value for immutability
func (l *Location) Generate(ctx context.Context, subject recommend.Subject) (recommend.ScoreMap, error) {
	scores := make(recommend.ScoreMap)
	if subject.Profile == nil || subject.Profile.Location == nil || l.radiusKm <= 0 {
		return scores, nil
	}
	origin := *subject.Profile.Location

	for i := range subject.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g := &subject.Groups[i]
		if g.Location == nil {
			continue
		}

		d := HaversineKm(origin, *g.Location)
		if !(d < l.radiusKm) {
			continue
		}
		scores[g.ID] = clamp01(1 - d/l.radiusKm)
	}

	return scores, nil
}
