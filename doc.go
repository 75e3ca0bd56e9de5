// Package gotable provides an in-memory listing engine for tables of records.
//
// Overview
//
// A listing page shows a collection already loaded into memory as a
// searchable, sortable, paginated table with row selection for bulk actions.
// gotable implements the pipeline behind such a page:
//
//	records → FilterEntities → SortObjects → Paginate → rows
//
// and the selection state that must stay consistent while the visible subset
// changes.
//
// Key concepts
//   - Column: key, localized header and sortability of a table column, with
//     optional display mapping (ValueMapper) and ordering (CustomSorter).
//     ColumnDef is the default implementation.
//   - Accessor: a getter built once from a "__"-joined field path such as
//     "user__name". Missing fields resolve to nil.
//   - SortKey: the active sort column and Direction. Toggling the same column
//     flips the direction.
//   - PageWindow: page labels for navigation with ellipses for collapsed runs.
//   - Selection: selected flags keyed by record id. "Select all" only touches
//     the filtered records; bulk actions only see selected records that match
//     the current query, while hidden selections survive.
//   - Table: one listing instance orchestrating all of the above.
//   - Source: loads a collection, e.g. GormSource over any gorm dialect.
package gotable
