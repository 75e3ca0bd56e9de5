package gotable

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction of a listing.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

// Opposite returns the reversed direction. Invalid directions reverse to DESC.
func (d Direction) Opposite() Direction {
	return lo.Ternary(d == DirectionDESC, DirectionASC, DirectionDESC)
}

// SortKey is the active sort column of a table. An empty Field means natural
// (input) order.
type SortKey struct {
	Field     string
	Direction Direction
}

// SortAsc returns an ascending sort key for field.
func SortAsc(field string) SortKey {
	return SortKey{Field: field, Direction: DirectionASC}
}

// SortDesc returns a descending sort key for field.
func SortDesc(field string) SortKey {
	return SortKey{Field: field, Direction: DirectionDESC}
}

func (k SortKey) IsEmpty() bool {
	return k.Field == ""
}

// Descending returns true if the key orders from the greatest to the least.
func (k SortKey) Descending() bool {
	return k.Direction == DirectionDESC
}

// Toggle returns the key after the user picks field: the same field flips the
// direction, a different field starts ascending.
func (k SortKey) Toggle(field string) SortKey {
	if k.Field == field {
		return SortKey{Field: field, Direction: k.Direction.Opposite()}
	}

	return SortAsc(field)
}

// String - implements fmt.Stringer. Returns "field asc|desc" or "" for an empty key.
func (k SortKey) String() string {
	if k.IsEmpty() {
		return ""
	}

	return fmt.Sprintf("%s %s", k.Field, strings.ToLower(string(k.Direction)))
}

// ParseSortKey builds a SortKey from a string of the form "field" or
// "field asc|desc". An empty string yields an empty key. The field must be
// one of keys; otherwise the error names the closest key.
func ParseSortKey(raw string, keys []string) (SortKey, error) {
	parts := strings.Fields(raw)

	switch len(parts) {
	case 0:
		return SortKey{}, nil
	case 1, 2:
	default:
		return SortKey{}, fmt.Errorf("invalid sort string format '%s'", raw)
	}

	key := SortAsc(parts[0])
	if len(parts) == 2 {
		key.Direction = Direction(strings.ToUpper(parts[1]))
		if !key.Direction.Valid() {
			return SortKey{}, fmt.Errorf("invalid sort direction '%s'", parts[1])
		}
	}

	if !lo.Contains(keys, key.Field) {
		return SortKey{}, fmt.Errorf("invalid sort key '%s'. closest: '%s'", key.Field, closestAlias(key.Field, keys))
	}

	return key, nil
}

// The types below describe SQL orderings applied by GormSource when loading
// a collection. They define the natural order of a table before any
// in-memory sort key is chosen.
type (
	Orderings []OrderBy
	OrderBy   struct {
		Column    string
		Direction Direction
	}

	ColumnAlias = string

	// ColumnMapping maps external column aliases to fully qualified column names.
	// Key is an external alias, value is an internal column name.
	ColumnMapping = map[ColumnAlias]string
)

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Column names are embedded into SQL as is.
	if o.Column == "" || !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// ToSQL converts Orderings to "<column_1> <direction_1>, <column_2> <direction_2>".
func (o Orderings) ToSQL() string {
	return strings.Join(lo.Map(o, func(ordering OrderBy, _ int) string {
		return fmt.Sprintf("%s %s", ordering.Column, ordering.Direction)
	}), ", ")
}

// Apply applies the ordering to a gorm query. Empty orderings leave the query as is.
func (o Orderings) Apply(db *gorm.DB) *gorm.DB {
	if len(o) == 0 {
		return db
	}

	return db.Order(o.ToSQL())
}

func (o Orderings) validate() error {
	for _, ordering := range o {
		if err := ordering.validate(); err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from strings of the form "alias asc|desc".
// Aliases are resolved via ColumnMapping; an unknown alias is reported with
// the closest known one.
func ParseSort(stringsOrderings []string, columnMapping ColumnMapping) (Orderings, error) {
	ret := make(Orderings, 0, len(stringsOrderings))
	aliases := lo.Keys(columnMapping)

	for _, stringOrdering := range stringsOrderings {
		parts := strings.Fields(stringOrdering)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid ordering string format '%s'", stringOrdering)
		}

		columnName := columnMapping[parts[0]]
		if columnName == "" {
			return nil, fmt.Errorf("invalid column alias. closest: '%s'", closestAlias(parts[0], aliases))
		}

		ret = append(ret, OrderBy{
			Column:    columnName,
			Direction: Direction(strings.ToUpper(parts[1])),
		})
	}

	return ret, nil
}

func closestAlias(input ColumnAlias, dataSet []ColumnAlias) ColumnAlias {
	minDist := math.MaxInt
	closest := ""

	for _, alias := range dataSet {
		dist := levenshtein(alias, input)
		if dist < minDist || (dist == minDist && alias < closest) {
			minDist = dist
			closest = alias
		}
	}

	return closest
}
