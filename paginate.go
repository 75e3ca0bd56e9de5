package gotable

import "slices"

// Page is one page of a sorted collection.
type Page[T any] struct {
	// Items visible on the page.
	Items []T
	// Number of the page after clamping, starting from 1.
	Number int
	// Requested page number as passed by the caller.
	Requested int
	// Size is the number of records per page.
	Size int
	// TotalItems in the whole sorted collection.
	TotalItems int
	// TotalPages is zero for an empty collection.
	TotalPages int
}

// Clamped returns true if the requested page was out of range and Number
// holds the corrected page the caller should store.
func (p Page[T]) Clamped() bool {
	return p.Number != p.Requested
}

// ClampPage returns page limited to [1, max(1, TotalPages(totalItems, pageSize))].
func ClampPage(page, totalItems, pageSize int) int {
	return min(max(page, 1), max(TotalPages(totalItems, pageSize), 1))
}

// Paginate returns the records visible on currentPage and the effective page
// number. When the collection shrank below currentPage, the last page with
// records is returned instead of an empty one.
//
// A pageSize below 1 is a caller error; DefaultPageSize is used instead.
func Paginate[T any](sorted []T, currentPage, pageSize int) ([]T, int) {
	page := PageOf(sorted, currentPage, pageSize)
	return page.Items, page.Number
}

// PageOf is Paginate returning the page with its metadata.
func PageOf[T any](sorted []T, currentPage, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	number := ClampPage(currentPage, len(sorted), pageSize)
	start := min((number-1)*pageSize, len(sorted))
	end := min(number*pageSize, len(sorted))

	return Page[T]{
		Items:      slices.Clip(sorted[start:end]),
		Number:     number,
		Requested:  currentPage,
		Size:       pageSize,
		TotalItems: len(sorted),
		TotalPages: TotalPages(len(sorted), pageSize),
	}
}
