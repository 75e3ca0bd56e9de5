package gotable

import (
	"slices"
	"strconv"

	"github.com/samber/lo"
)

const (
	// WindowRadius is the number of pages shown on each side of the current page.
	WindowRadius = 2

	// Ellipsis is rendered in place of a collapsed run of pages.
	Ellipsis = "…"
)

// PageLabel is a single entry of the page navigation: either a page number or
// an ellipsis marker. The zero value is an ellipsis.
type PageLabel struct {
	Number int
}

// IsEllipsis returns true if the label stands for a collapsed run of pages.
func (l PageLabel) IsEllipsis() bool {
	return l.Number < 1
}

// String - implements fmt.Stringer.
func (l PageLabel) String() string {
	if l.IsEllipsis() {
		return Ellipsis
	}

	return strconv.Itoa(l.Number)
}

// TotalPages returns the number of pages needed to show totalItems records
// with pageSize records per page. Returns 0 for an empty collection.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return (totalItems + pageSize - 1) / pageSize
}

// PageWindow returns page labels for navigation using WindowRadius.
//
// Example: PageWindow(10, 20) → [1 … 8 9 10 11 12 … 20].
func PageWindow(currentPage, totalPages int) []PageLabel {
	return PageWindowRadius(currentPage, totalPages, WindowRadius)
}

// PageWindowRadius returns page labels for navigation. The first and the last
// pages are always present, as well as every page within radius of
// currentPage. A gap of a single page is shown as that page; longer gaps
// collapse into one ellipsis label.
//
// IMPORTANT:
// currentPage is expected to be within [1, totalPages]. The window is computed
// for any value, but pages outside of the range never appear.
func PageWindowRadius(currentPage, totalPages, radius int) []PageLabel {
	if totalPages <= 0 {
		return []PageLabel{}
	}
	if totalPages == 1 {
		return []PageLabel{{Number: 1}}
	}

	radius = max(radius, 0)

	included := []int{1, totalPages}
	for page := currentPage - radius; page <= currentPage+radius; page++ {
		if page > 1 && page < totalPages {
			included = append(included, page)
		}
	}
	included = lo.Uniq(included)
	slices.Sort(included)

	labels := make([]PageLabel, 0, len(included)+2)
	for i, page := range included {
		if i > 0 {
			switch gap := page - included[i-1]; {
			case gap == 2:
				labels = append(labels, PageLabel{Number: page - 1})
			case gap > 2:
				labels = append(labels, PageLabel{})
			}
		}

		labels = append(labels, PageLabel{Number: page})
	}

	return labels
}
