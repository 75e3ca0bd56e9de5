package gotable

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// NonSortableKeys are column keys reserved for controls rather than data.
// Columns with these keys are not sortable unless marked otherwise.
var NonSortableKeys = []string{"check", "icon", "logo", "open", "actions"}

// Column describes how one table column is displayed, searched and sorted.
type Column[T any] interface {
	// Key is unique within a table and identifies the column in sort keys.
	Key() string
	// Header is the already localized column label.
	Header() string
	Sortable() bool
	// Value returns the raw value used for default ordering.
	Value(record T) any
}

// ValueMapper is implemented by columns that render a display value different
// from their raw value.
type ValueMapper[T any] interface {
	MapValue(record T) any
}

// CustomSorter is implemented by columns with their own ordering. A non-nil
// comparator replaces the default ordering for the column entirely and
// receives whole records.
type CustomSorter[T any] interface {
	CustomSort() Comparator[T]
}

// DisplayValue returns the value rendered in the cell of column for record.
func DisplayValue[T any](column Column[T], record T) any {
	if mapper, ok := column.(ValueMapper[T]); ok {
		return mapper.MapValue(record)
	}

	return column.Value(record)
}

func customComparator[T any](column Column[T]) Comparator[T] {
	if sorter, ok := column.(CustomSorter[T]); ok {
		return sorter.CustomSort()
	}

	return nil
}

// ColumnDef is the default Column implementation:
//
//	gotable.NewColumn[Member]("user__name", "Name").
//		WithCustomSort(byRoleThenName)
type ColumnDef[T any] struct {
	key        string
	header     string
	sortable   bool
	accessor   Accessor[T]
	mapper     func(T) any
	customSort Comparator[T]
}

// NewColumn creates a column reading the field path equal to its key.
func NewColumn[T any](key, header string) *ColumnDef[T] {
	return &ColumnDef[T]{
		key:      key,
		header:   header,
		sortable: !slices.Contains(NonSortableKeys, key),
		accessor: PathAccessor[T](key),
	}
}

// WithPath reads the column value from a nested field path instead of the key.
func (c *ColumnDef[T]) WithPath(path string) *ColumnDef[T] {
	if c == nil {
		c = new(ColumnDef[T])
	}

	c.accessor = PathAccessor[T](path)

	return c
}

// WithAccessor reads the column value with a typed getter.
func (c *ColumnDef[T]) WithAccessor(accessor Accessor[T]) *ColumnDef[T] {
	if c == nil {
		c = new(ColumnDef[T])
	}

	c.accessor = accessor

	return c
}

// WithMapper sets the function producing the display value of a cell.
// The mapper does not affect ordering.
func (c *ColumnDef[T]) WithMapper(mapper func(T) any) *ColumnDef[T] {
	if c == nil {
		c = new(ColumnDef[T])
	}

	c.mapper = mapper

	return c
}

// WithCustomSort replaces the default ordering of the column.
func (c *ColumnDef[T]) WithCustomSort(comparator Comparator[T]) *ColumnDef[T] {
	if c == nil {
		c = new(ColumnDef[T])
	}

	c.customSort = comparator

	return c
}

// WithSortable overrides the default sortability derived from the key.
func (c *ColumnDef[T]) WithSortable(sortable bool) *ColumnDef[T] {
	if c == nil {
		c = new(ColumnDef[T])
	}

	c.sortable = sortable

	return c
}

// NotSortable is a shorthand for WithSortable(false).
func (c *ColumnDef[T]) NotSortable() *ColumnDef[T] {
	return c.WithSortable(false)
}

func (c *ColumnDef[T]) Key() string {
	return c.key
}

func (c *ColumnDef[T]) Header() string {
	return c.header
}

func (c *ColumnDef[T]) Sortable() bool {
	return c.sortable
}

// Value - implements Column.
func (c *ColumnDef[T]) Value(record T) any {
	if c.accessor == nil {
		return nil
	}

	return c.accessor(record)
}

// MapValue - implements ValueMapper. Falls back to Value without a mapper.
func (c *ColumnDef[T]) MapValue(record T) any {
	if c.mapper == nil {
		return c.Value(record)
	}

	return c.mapper(record)
}

// CustomSort - implements CustomSorter.
func (c *ColumnDef[T]) CustomSort() Comparator[T] {
	return c.customSort
}

var (
	_ Column[Record]       = (*ColumnDef[Record])(nil)
	_ ValueMapper[Record]  = (*ColumnDef[Record])(nil)
	_ CustomSorter[Record] = (*ColumnDef[Record])(nil)
)

// Columns is the ordered list of columns of a table.
type Columns[T any] []Column[T]

// Find returns the column with the given key.
func (c Columns[T]) Find(key string) (Column[T], bool) {
	return lo.Find(c, func(column Column[T]) bool {
		return column.Key() == key
	})
}

// Keys returns column keys in display order.
func (c Columns[T]) Keys() []string {
	return lo.Map(c, func(column Column[T], _ int) string {
		return column.Key()
	})
}

// SortableKeys returns keys of sortable columns in display order.
func (c Columns[T]) SortableKeys() []string {
	return lo.FilterMap(c, func(column Column[T], _ int) (string, bool) {
		return column.Key(), column.Sortable()
	})
}

// Headers returns column headers in display order.
func (c Columns[T]) Headers() []string {
	return lo.Map(c, func(column Column[T], _ int) string {
		return column.Header()
	})
}

func (c Columns[T]) validate() error {
	if len(c) == 0 {
		return fmt.Errorf("empty column list")
	}

	seen := make(map[string]struct{}, len(c))
	for _, column := range c {
		if column == nil {
			return fmt.Errorf("nil column")
		}

		key := column.Key()
		if key == "" {
			return fmt.Errorf("column with empty key")
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate column key '%s'", key)
		}
		seen[key] = struct{}{}
	}

	return nil
}
