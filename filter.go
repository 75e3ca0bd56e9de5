package gotable

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// SearchFunc filters records for a query on behalf of the caller. When a
// table has a SearchFunc the filter stage delegates to it entirely.
type SearchFunc[T any] func(records []T, query string) []T

// FilterEntities returns records where any of the fields contains query,
// ignoring case. An empty or whitespace-only query returns records unchanged.
//
// The result preserves input order and may share the backing array with
// records when no filtering happens.
func FilterEntities[T any](records []T, query string, fields []Accessor[T]) []T {
	if strings.TrimSpace(query) == "" {
		return records
	}

	needle := strings.ToLower(query)

	return lo.Filter(records, func(record T, _ int) bool {
		return lo.SomeBy(fields, func(field Accessor[T]) bool {
			return strings.Contains(strings.ToLower(Text(field(record))), needle)
		})
	})
}

// Searcher is the filter stage of a table: either a list of searchable fields
// or a caller supplied SearchFunc.
type Searcher[T any] struct {
	Fields []Accessor[T]
	Custom SearchFunc[T]
}

// SearchPaths returns a Searcher matching the given field paths.
func SearchPaths[T any](paths ...string) Searcher[T] {
	return Searcher[T]{
		Fields: lo.Map(paths, func(path string, _ int) Accessor[T] {
			return PathAccessor[T](path)
		}),
	}
}

// Apply runs the filter stage.
func (s Searcher[T]) Apply(records []T, query string) []T {
	if s.Custom != nil {
		return s.Custom(records, query)
	}

	return FilterEntities(records, query, s.Fields)
}

// FuzzySearch returns a SearchFunc matching the query as a fuzzy, case and
// diacritics insensitive subsequence of any field. Records are ranked by the
// closest match; equally close records keep their input order.
func FuzzySearch[T any](fields ...Accessor[T]) SearchFunc[T] {
	return func(records []T, query string) []T {
		query = strings.TrimSpace(query)
		if query == "" {
			return records
		}

		type ranked struct {
			record   T
			distance int
		}

		matches := make([]ranked, 0, len(records))
		for _, record := range records {
			best := -1
			for _, field := range fields {
				distance := fuzzy.RankMatchNormalizedFold(query, Text(field(record)))
				if distance >= 0 && (best < 0 || distance < best) {
					best = distance
				}
			}

			if best >= 0 {
				matches = append(matches, ranked{record: record, distance: best})
			}
		}

		slices.SortStableFunc(matches, func(a, b ranked) int {
			return a.distance - b.distance
		})

		return lo.Map(matches, func(m ranked, _ int) T {
			return m.record
		})
	}
}
