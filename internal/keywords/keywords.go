// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package keywords turns free text into normalized keyword sets.
//
// Both the content matcher and the activity scorer route through Extract so
// that tokenization and stop-word handling stay identical across signals.
//
// Rules:
//
//   - text is lowercased
//   - tokens are maximal runs of Unicode letters and digits
//   - tokens shorter than MinLength runes are dropped
//   - tokens in the English stop-word list are dropped
//   - the result is deduplicated
//
// Degenerate input (empty, whitespace, punctuation only) yields an empty set,
// never an error.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength is the minimum token length, in runes, kept by Extract.
const MinLength = 3

// Set is a deduplicated keyword set.
type Set map[string]struct{}

// stopWords are common English function words that carry no topical signal.
// Words shorter than MinLength are omitted since the length filter drops them.
var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "all": {},
	"also": {}, "and": {}, "any": {}, "are": {}, "because": {}, "been": {},
	"before": {}, "being": {}, "below": {}, "between": {}, "both": {}, "but": {},
	"can": {}, "could": {}, "did": {}, "does": {}, "doing": {}, "down": {},
	"during": {}, "each": {}, "few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "her": {}, "here": {},
	"hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"into": {}, "its": {}, "itself": {}, "just": {}, "like": {}, "more": {},
	"most": {}, "myself": {}, "nor": {}, "not": {}, "now": {}, "off": {},
	"once": {}, "only": {}, "other": {}, "our": {}, "ours": {}, "ourselves": {},
	"out": {}, "over": {}, "own": {}, "same": {}, "she": {}, "should": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"theirs": {}, "them": {}, "themselves": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {}, "too": {},
	"under": {}, "until": {}, "very": {}, "was": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
	"yours": {}, "yourself": {}, "yourselves": {},
}

// IsStopWord reports whether word (already lowercased) is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Extract returns the keyword set of the given text blocks.
func Extract(texts ...string) Set {
	set := make(Set)
	for _, text := range texts {
		if text == "" {
			continue
		}
		tokens := strings.FieldsFunc(strings.ToLower(text), isSeparator)
		for _, tok := range tokens {
			if utf8.RuneCountInString(tok) < MinLength {
				continue
			}
			if IsStopWord(tok) {
				continue
			}
			set[tok] = struct{}{}
		}
	}
	return set
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Len returns the number of keywords in the set.
func (s Set) Len() int {
	return len(s)
}

// Has reports whether the set contains word.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the keywords in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted keywords with single spaces.
// Extract(s.String()) yields a set equal to s.
func (s Set) String() string {
	return strings.Join(s.Sorted(), " ")
}

// Intersect returns the number of keywords present in both sets.
func (s Set) Intersect(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for w := range small {
		if _, ok := large[w]; ok {
			n++
		}
	}
	return n
}

// Jaccard returns |s ∩ other| / |s ∪ other|, or 0 when both sets are empty.
func (s Set) Jaccard(other Set) float64 {
	inter := s.Intersect(other)
	union := len(s) + len(other) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
