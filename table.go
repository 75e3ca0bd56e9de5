package gotable

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// Table is one logical listing: a collection of records with its columns and
// the query, sort key, current page and selection owned by the listing.
//
// Every Render derives rows from the latest inputs:
//
//	records → filter(query) → sort(key) → page(currentPage)
//
// A Table is not safe for concurrent use.
type Table[ID comparable, T any] struct {
	idOf       func(T) ID
	columns    Columns[T]
	searcher   Searcher[T]
	selection  *Selection[ID, T]
	pageSize   int
	radius     int
	locale     language.Tag
	logger     logrus.FieldLogger
	onRowClick func(T)

	entities []T
	query    string
	sort     SortKey
	page     int
}

// NewTable creates a table over records identified by idOf. Column keys must
// be unique. Every column is searchable until WithSearchPaths,
// WithSearchAccessors or WithCustomSearch says otherwise.
func NewTable[ID comparable, T any](idOf func(T) ID, columns ...Column[T]) (*Table[ID, T], error) {
	if idOf == nil {
		return nil, fmt.Errorf("cannot create table: nil id function")
	}

	cols := Columns[T](columns)
	if err := cols.validate(); err != nil {
		return nil, fmt.Errorf("cannot create table: %w", err)
	}

	return &Table[ID, T]{
		idOf:    idOf,
		columns: cols,
		searcher: Searcher[T]{
			Fields: lo.Map(cols, func(column Column[T], _ int) Accessor[T] {
				return column.Value
			}),
		},
		selection: NewSelection(idOf),
		pageSize:  DefaultPageSize,
		radius:    WindowRadius,
		locale:    language.English,
		logger:    logrus.WithField("component", "gotable"),
		page:      1,
	}, nil
}

// WithConfig applies page size, window radius and locale from cfg.
func (t *Table[ID, T]) WithConfig(cfg Config) *Table[ID, T] {
	return t.WithPageSize(cfg.PageSize).
		WithWindowRadius(cfg.WindowRadius).
		WithLocale(cfg.Tag())
}

// WithPageSize sets the number of rows per page. Values below 1 fall back to
// DefaultPageSize; values above MaxPageSize are capped.
func (t *Table[ID, T]) WithPageSize(pageSize int) *Table[ID, T] {
	t.pageSize = ResolvePageSize(pageSize, DefaultPageSize)
	return t
}

// WithWindowRadius sets how many pages around the current one are labelled.
func (t *Table[ID, T]) WithWindowRadius(radius int) *Table[ID, T] {
	t.radius = max(radius, 0)
	return t
}

// WithLocale sets the locale used to order strings.
func (t *Table[ID, T]) WithLocale(locale language.Tag) *Table[ID, T] {
	t.locale = locale
	return t
}

// WithSearchPaths restricts searching to the given field paths.
func (t *Table[ID, T]) WithSearchPaths(paths ...string) *Table[ID, T] {
	t.searcher = SearchPaths[T](paths...)
	return t
}

// WithSearchAccessors restricts searching to the given accessors.
func (t *Table[ID, T]) WithSearchAccessors(accessors ...Accessor[T]) *Table[ID, T] {
	t.searcher = Searcher[T]{Fields: accessors}
	return t
}

// WithCustomSearch delegates filtering to search.
func (t *Table[ID, T]) WithCustomSearch(search SearchFunc[T]) *Table[ID, T] {
	t.searcher = Searcher[T]{Custom: search}
	return t
}

// WithDefaultSort sets the initial sort key.
func (t *Table[ID, T]) WithDefaultSort(key SortKey) *Table[ID, T] {
	t.sort = key
	return t
}

// WithEligibility sets the predicate limiting which records may be selected.
func (t *Table[ID, T]) WithEligibility(eligible func(T) bool) *Table[ID, T] {
	t.selection.WithEligibility(eligible)
	return t
}

// WithLogger sets the logger. Nil keeps the current one.
func (t *Table[ID, T]) WithLogger(logger logrus.FieldLogger) *Table[ID, T] {
	if logger != nil {
		t.logger = logger
	}

	return t
}

// WithRowClick sets the callback invoked by ClickRow.
func (t *Table[ID, T]) WithRowClick(onRowClick func(T)) *Table[ID, T] {
	t.onRowClick = onRowClick
	return t
}

// SetEntities replaces the collection and reconciles the selection. Query,
// sort key and page are kept; the page is clamped on the next Render.
func (t *Table[ID, T]) SetEntities(records []T) {
	t.entities = records
	t.selection.Reconcile(records)
}

// Refresh reloads the collection from source. On failure the table keeps its
// previous state.
func (t *Table[ID, T]) Refresh(ctx context.Context, source Source[T]) error {
	records, err := source.Load(ctx)
	if err != nil {
		t.logger.WithError(err).Error("cannot refresh table")
		return fmt.Errorf("cannot refresh table: %w", err)
	}

	t.SetEntities(records)

	return nil
}

// Entities returns the full collection as last set.
func (t *Table[ID, T]) Entities() []T {
	return t.entities
}

// Columns returns the table columns.
func (t *Table[ID, T]) Columns() Columns[T] {
	return t.columns
}

// Search sets the query and returns to the first page.
func (t *Table[ID, T]) Search(query string) {
	t.query = query
	t.page = 1
}

func (t *Table[ID, T]) Query() string {
	return t.query
}

// SortBy applies the user's click on the header of field.
func (t *Table[ID, T]) SortBy(field string) {
	t.sort = t.sort.Toggle(field)
}

// SetSort sets the sort key as is.
func (t *Table[ID, T]) SetSort(key SortKey) {
	t.sort = key
}

func (t *Table[ID, T]) Sort() SortKey {
	return t.sort
}

// GoToPage stores the requested page. Out of range pages are clamped by Render.
func (t *Table[ID, T]) GoToPage(page int) {
	t.page = max(page, 1)
}

// Page returns the stored page number.
func (t *Table[ID, T]) Page() int {
	return t.page
}

// PageSize returns the number of rows per page.
func (t *Table[ID, T]) PageSize() int {
	return t.pageSize
}

// Selection returns the selection state of the table.
func (t *Table[ID, T]) Selection() *Selection[ID, T] {
	return t.selection
}

// Filtered returns the records matching the current query in input order.
func (t *Table[ID, T]) Filtered() []T {
	return t.searcher.Apply(t.entities, t.query)
}

// Select sets the flag of one record.
func (t *Table[ID, T]) Select(id ID, selected bool) bool {
	return t.selection.Select(id, selected)
}

// Toggle flips the flag of one record.
func (t *Table[ID, T]) Toggle(id ID) bool {
	return t.selection.Toggle(id)
}

// SelectAll applies the "select all" toggle to the records matching the
// current query.
func (t *Table[ID, T]) SelectAll(selected bool) {
	t.selection.SelectAll(selected, t.Filtered())
}

// BulkSelection returns the records a bulk action applies to: selected and
// matching the current query.
func (t *Table[ID, T]) BulkSelection() []T {
	return t.selection.VisibleSelected(t.Filtered())
}

// BulkIDs is BulkSelection returning ids.
func (t *Table[ID, T]) BulkIDs() []ID {
	return t.selection.VisibleSelectedIDs(t.Filtered())
}

// ClickRow passes the record with id to the row click callback. Returns false
// if there is no callback or no such record.
func (t *Table[ID, T]) ClickRow(id ID) bool {
	if t.onRowClick == nil {
		return false
	}

	record, ok := lo.Find(t.entities, func(record T) bool {
		return t.idOf(record) == id
	})
	if !ok {
		return false
	}

	t.onRowClick(record)

	return true
}

// Row is one rendered record.
type Row[ID comparable, T any] struct {
	ID       ID
	Record   T
	Selected bool
	Eligible bool
	// Cells hold display values in column order.
	Cells []any
}

// View is the outcome of one Render.
type View[ID comparable, T any] struct {
	Headers []string
	Rows    []Row[ID, T]
	// Page is the effective page after clamping.
	Page       int
	PageSize   int
	TotalPages int
	// TotalItems counts records matching the query.
	TotalItems int
	Labels     []PageLabel
	Query      string
	Sort       SortKey
	// AllSelected is the cached "select all" toggle state.
	AllSelected bool
	// ShowBulkActions is false when no record matching the query is selected.
	ShowBulkActions bool
}

// Render runs the filter, sort and page stages. If the stored page is out of
// range it is corrected and stored back.
func (t *Table[ID, T]) Render() View[ID, T] {
	filtered := t.Filtered()

	if !t.sort.IsEmpty() {
		if column, ok := t.columns.Find(t.sort.Field); !ok || !column.Sortable() {
			t.logger.WithField("sort", t.sort.String()).Debug("unknown or non-sortable sort column, using input order")
		}
	}
	sorted := SortObjects(filtered, t.sort, t.columns, t.locale)

	page := PageOf(sorted, t.page, t.pageSize)
	if page.Clamped() {
		t.logger.WithFields(logrus.Fields{
			"requested": page.Requested,
			"page":      page.Number,
			"total":     page.TotalItems,
		}).Debug("page out of range, clamped")
		t.page = page.Number
	}

	rows := lo.Map(page.Items, func(record T, _ int) Row[ID, T] {
		id := t.idOf(record)
		return Row[ID, T]{
			ID:       id,
			Record:   record,
			Selected: t.selection.IsSelected(id),
			Eligible: t.selection.IsEligible(record),
			Cells: lo.Map(t.columns, func(column Column[T], _ int) any {
				return DisplayValue(column, record)
			}),
		}
	})

	return View[ID, T]{
		Headers:         t.columns.Headers(),
		Rows:            rows,
		Page:            page.Number,
		PageSize:        page.Size,
		TotalPages:      page.TotalPages,
		TotalItems:      page.TotalItems,
		Labels:          PageWindowRadius(page.Number, page.TotalPages, t.radius),
		Query:           t.query,
		Sort:            t.sort,
		AllSelected:     t.selection.IsAllSelected(),
		ShowBulkActions: t.selection.HasVisibleSelection(filtered),
	}
}
