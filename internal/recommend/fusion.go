// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package recommend

import "sort"

// Breakdown records the raw per-signal score of each fused candidate.
type Breakdown map[int64]map[string]float64

// Fuse combines sparse signal maps into one weighted score map.
//
// A candidate's fused score is the sum of score × weight over the signals
// that produced an entry for it. Signals without a weight, or with a zero
// weight, are ignored. Candidates absent from every map are absent from the
// result. Signals are summed in name order so the floating point result does
// not depend on map iteration order.
func Fuse(maps map[string]ScoreMap, weights Weights) (ScoreMap, Breakdown) {
	w := weights.ToMap()

	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	sort.Strings(names)

	fused := make(ScoreMap)
	breakdown := make(Breakdown)

	for _, name := range names {
		weight := w[name]
		if weight <= 0 {
			continue
		}
		for groupID, score := range maps[name] {
			fused[groupID] += score * weight
			if breakdown[groupID] == nil {
				breakdown[groupID] = make(map[string]float64, len(names))
			}
			breakdown[groupID][name] = score
		}
	}

	return fused, breakdown
}
