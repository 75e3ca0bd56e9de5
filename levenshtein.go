package gotable

import "github.com/lithammer/fuzzysearch/fuzzy"

// levenshtein returns the edit distance between a and b counted in runes.
func levenshtein(a, b string) int {
	return fuzzy.LevenshteinDistance(a, b)
}
