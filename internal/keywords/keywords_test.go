// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package keywords

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []string
	}{
		{
			name:  "empty input",
			texts: []string{""},
			want:  []string{},
		},
		{
			name:  "whitespace and punctuation only",
			texts: []string{"   \t\n ... !!! --"},
			want:  []string{},
		},
		{
			name:  "lowercases and splits on punctuation",
			texts: []string{"Hiking, Trail-Running & BIKING!"},
			want:  []string{"biking", "hiking", "running", "trail"},
		},
		{
			name:  "drops short tokens and stop words",
			texts: []string{"We are the go to group for you and me at the park"},
			want:  []string{"group", "park"},
		},
		{
			name:  "deduplicates across blocks",
			texts: []string{"Chess club", "chess CLUB meetups"},
			want:  []string{"chess", "club", "meetups"},
		},
		{
			name:  "keeps digits",
			texts: []string{"Class of 2024 reunion"},
			want:  []string{"2024", "class", "reunion"},
		},
		{
			name:  "unicode letters are alphanumeric",
			texts: []string{"Café crème brûlée"},
			want:  []string{"brûlée", "café", "crème"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.texts...).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.texts, got, tt.want)
			}
		})
	}
}

func TestExtractNoArgs(t *testing.T) {
	if got := Extract(); got.Len() != 0 {
		t.Errorf("Extract() returned %d keywords, want 0", got.Len())
	}
}

func TestExtractIdempotent(t *testing.T) {
	inputs := []string{
		"Weekend photography walks around the old harbour, all levels welcome!",
		"Board games: Catan, Carcassonne, and more...",
		"",
	}

	for _, in := range inputs {
		first := Extract(in)
		second := Extract(first.String())
		if !reflect.DeepEqual(first, second) {
			t.Errorf("extraction not idempotent for %q: %v then %v", in, first.Sorted(), second.Sorted())
		}
	}
}

func TestJaccard(t *testing.T) {
	a := Extract("gardening compost vegetables")
	b := Extract("vegetables compost herbs flowers")

	got := a.Jaccard(b)
	want := 2.0 / 5.0
	if got != want {
		t.Errorf("Jaccard = %v, want %v", got, want)
	}

	if a.Jaccard(b) != b.Jaccard(a) {
		t.Error("Jaccard should be symmetric")
	}

	empty := Set{}
	if got := empty.Jaccard(empty); got != 0 {
		t.Errorf("Jaccard of empty sets = %v, want 0", got)
	}
	if got := a.Jaccard(a); got != 1 {
		t.Errorf("Jaccard of identical sets = %v, want 1", got)
	}
}

func TestIntersectAndHas(t *testing.T) {
	a := Extract("running cycling swimming")
	b := Extract("swimming running")

	if n := a.Intersect(b); n != 2 {
		t.Errorf("Intersect = %d, want 2", n)
	}
	if !a.Has("cycling") {
		t.Error("expected set to contain cycling")
	}
	if a.Has("the") {
		t.Error("stop words must not be present")
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if IsStopWord("hiking") {
		t.Error("did not expect 'hiking' to be a stop word")
	}
}
