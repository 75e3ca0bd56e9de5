package gotable

import "fmt"

// RawListing is intended for API payloads. For proper code generation, inline it:
//
//	type GroupsFilter struct {
//	    Listing RawListing `json:",inline"`
//	}
type RawListing struct {
	// Query - free text search query. Empty means no filtering.
	Query string `json:"query"`
	// Sort - "field" or "field asc|desc". Empty means natural order.
	Sort string `json:"sort"`
	// Page - requested page starting from 1. Out of range pages are clamped.
	Page int `json:"page"`
	// PageSize - rows per page, capped at MaxPageSize. Zero or negative keeps
	// the table's page size.
	PageSize int `json:"pageSize"`
}

// Decode validates the payload against the sortable columns of a table and
// returns the sort key and the normalized page and page size.
func (r RawListing) Decode(sortableKeys []string, fallbackPageSize int) (SortKey, int, int, error) {
	key, err := ParseSortKey(r.Sort, sortableKeys)
	if err != nil {
		return SortKey{}, 0, 0, fmt.Errorf("cannot decode listing: %w", err)
	}

	return key, max(r.Page, 1), ResolvePageSize(r.PageSize, fallbackPageSize), nil
}

// ApplyRaw applies an API payload to the table. On error the table is left
// unchanged.
func (t *Table[ID, T]) ApplyRaw(raw RawListing) error {
	key, page, pageSize, err := raw.Decode(t.columns.SortableKeys(), t.pageSize)
	if err != nil {
		return err
	}

	t.query = raw.Query
	t.sort = key
	t.pageSize = pageSize
	t.page = page

	return nil
}

// Raw returns the current state of the table as an API payload.
func (t *Table[ID, T]) Raw() RawListing {
	return RawListing{
		Query:    t.query,
		Sort:     t.sort.String(),
		Page:     t.page,
		PageSize: t.pageSize,
	}
}
