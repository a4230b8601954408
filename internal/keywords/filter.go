package keywords

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestions caps the "did you mean" list shown for an empty result.
const maxSuggestions = 5

// Filter returns the keywords whose lower-cased name contains the lower-cased
// query. The input is never modified; an empty query matches everything.
func Filter(list []Keyword, query string) []Keyword {
	q := strings.ToLower(query)
	filtered := make([]Keyword, 0, len(list))
	for _, kw := range list {
		if strings.Contains(strings.ToLower(kw.Keyword), q) {
			filtered = append(filtered, kw)
		}
	}
	return filtered
}

// SortByClicks returns a copy of list in non-increasing click order. The list
// is sorted ascending and then reversed, so keywords with equal clicks come
// out in reverse of their input order.
func SortByClicks(list []Keyword) []Keyword {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b Keyword) int {
		switch {
		case a.ClickCount < b.ClickCount:
			return -1
		case a.ClickCount > b.ClickCount:
			return 1
		}
		return 0
	})
	slices.Reverse(sorted)
	return sorted
}

// similarity is the largest edit distance, relative to the keyword's length,
// at which a query still counts as a typo of the keyword.
const similarity = 0.3

// Suggest returns up to five keyword names close to query, closest first. A
// keyword is close when query is a typo of it (its edit distance is under
// three tenths of the keyword's length) or when query's letters appear in it
// in order. It is only meant for queries that matched nothing by substring.
func Suggest(list []Keyword, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(list) == 0 {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, kw := range list {
		name := strings.ToLower(kw.Keyword)
		n := utf8.RuneCountInString(name)
		if n == 0 {
			continue
		}
		d := fuzzy.LevenshteinDistance(q, name)
		if float64(d)/float64(n) < similarity || fuzzy.Match(q, name) {
			candidates = append(candidates, candidate{name: kw.Keyword, distance: d})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})

	suggestions := make([]string, 0, min(len(candidates), maxSuggestions))
	for _, c := range candidates[:min(len(candidates), maxSuggestions)] {
		suggestions = append(suggestions, c.name)
	}
	return suggestions
}
