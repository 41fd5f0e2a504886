// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package signals implements the signal generators for the recommendation engine.
//
// Each generator implements the recommend.Generator interface and can be
// registered with the engine.
//
// # Generators
//
//   - Collaborative: Jaccard neighbours over active group memberships
//   - Content: Jaccard over profile and group keywords
//   - Location: Haversine distance with linear decay inside a radius
//   - Activity: recent activity tags matched against group keywords
//
// All generators return sparse maps: a group the generator has nothing to
// say about is absent, never present with a zero score.
//
// # Thread Safety
//
// Generators hold only immutable configuration and are safe for concurrent use.
package signals

import (
	"math"
	"sort"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// base provides the name shared by all generators.
type base struct {
	name string
}

// Name returns the signal identifier.
func (b base) Name() string {
	return b.name
}

// HaversineKm calculates the great-circle distance between two points
// in kilometers.
func HaversineKm(a, b recommend.GeoPoint) float64 {
	lat1Rad := a.Lat * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just outside [0, 1] for antipodal points.
	h = math.Max(0, math.Min(1, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// normalizeByMax divides every score by the largest one so the top score is 1.
func normalizeByMax(scores recommend.ScoreMap) recommend.ScoreMap {
	var maxScore float64
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 0 {
		return recommend.ScoreMap{}
	}
	for id, s := range scores {
		scores[id] = s / maxScore
	}
	return scores
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// uniqueSorted returns the distinct IDs in ascending order.
func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
