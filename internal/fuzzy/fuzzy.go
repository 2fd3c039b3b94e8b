// Package fuzzy ranks option names by similarity to a mistyped one.
// Used by cmdline to attach "did you mean" hints to unknown options.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
)

// Match is one candidate within the allowed edit distance.
type Match struct {
	Value    string
	Distance int
	Score    float64 // higher is better
}

// Matcher finds candidates within a maximum edit distance.
type Matcher struct {
	maxDistance int
	minLength   int
	params      *levenshtein.Params
}

// NewMatcher returns a matcher accepting up to maxDistance edits.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // single letters are too ambiguous to suggest for
		params:      levenshtein.NewParams().MaxCost(maxDistance),
	}
}

// Best returns the highest ranked candidate, or "" when none is close enough.
func (m *Matcher) Best(input string, candidates []string) string {
	matches := m.Matches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// Matches returns every candidate within range, best first. Exact matches
// (ignoring case) are skipped since they are not typos.
func (m *Matcher) Matches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	input = strings.ToLower(input)
	var matches []Match
	for _, c := range candidates {
		lower := strings.ToLower(c)
		if lower == input {
			continue
		}

		d := levenshtein.Distance(input, lower, m.params)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, Match{Value: c, Distance: d, Score: score(input, lower, d)})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})
	return matches
}

// score weighs edit distance first, then a shared prefix, then length similarity.
func score(input, candidate string, distance int) float64 {
	longest := max(len(input), len(candidate))
	if longest == 0 {
		return 1.0
	}

	s := 1.0 - float64(distance)/float64(longest)

	if p := commonPrefix(input, candidate); p > 0 {
		s += float64(p) / float64(min(len(input), len(candidate))) * 0.3
	}

	diff := len(input) - len(candidate)
	if diff < 0 {
		diff = -diff
	}
	s += (1.0 - float64(diff)/float64(longest)) * 0.2

	return s
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Suggest returns the best candidate for input within maxDistance edits.
func Suggest(input string, candidates []string, maxDistance int) string {
	return NewMatcher(maxDistance).Best(input, candidates)
}

// Suggestions returns up to limit candidates, best first.
func Suggestions(input string, candidates []string, maxDistance, limit int) []string {
	matches := NewMatcher(maxDistance).Matches(input, candidates)
	out := make([]string, 0, min(len(matches), limit))
	for _, match := range matches[:min(len(matches), limit)] {
		out = append(out, match.Value)
	}
	return out
}
