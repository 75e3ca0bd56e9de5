package gotable

import (
	"slices"

	"golang.org/x/text/language"
)

// SortObjects returns a new slice with records ordered by the column named
// in key. The input slice is never modified.
//
// An empty key, a key naming no column or a non-sortable column keep the input
// order. A column's custom comparator replaces the default value ordering.
func SortObjects[T any](records []T, key SortKey, columns Columns[T], locale language.Tag) []T {
	if key.IsEmpty() {
		return slices.Clone(records)
	}

	column, ok := columns.Find(key.Field)
	if !ok || !column.Sortable() {
		return slices.Clone(records)
	}

	if comparator := customComparator(column); comparator != nil {
		return SortWith(records, comparator, key.Direction)
	}

	return SortBy(records, column.Value, key.Direction, locale)
}

// SortWith stably sorts a copy of records with comparator. A descending
// direction negates the comparator result, so equal records keep their input
// order in both directions.
func SortWith[T any](records []T, comparator Comparator[T], direction Direction) []T {
	sorted := slices.Clone(records)
	if comparator == nil {
		return sorted
	}

	desc := direction == DirectionDESC
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := comparator(a, b)
		if desc {
			return -c
		}

		return c
	})

	return sorted
}

// SortBy stably sorts a copy of records by the value returned by accessor.
// Values are extracted once per record. Missing values come first in both
// directions.
func SortBy[T any](records []T, accessor Accessor[T], direction Direction, locale language.Tag) []T {
	if accessor == nil {
		return slices.Clone(records)
	}

	type keyed struct {
		record T
		value  sortValue
	}

	items := make([]keyed, len(records))
	for i, record := range records {
		items[i] = keyed{record: record, value: sortValueOf(accessor(record))}
	}

	collator := newCollator(locale)
	desc := direction == DirectionDESC
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compareWithMissing(a.value, b.value, desc, collator)
	})

	sorted := make([]T, len(items))
	for i, item := range items {
		sorted[i] = item.record
	}

	return sorted
}
