package gotable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewColumn_Defaults(t *testing.T) {
	tests := []struct {
		key      string
		sortable bool
	}{
		{"name", true},
		{"user__name", true},
		{"check", false},
		{"icon", false},
		{"actions", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			col := NewColumn[Record](tt.key, strings.ToUpper(tt.key))
			require.Equal(t, tt.key, col.Key())
			require.Equal(t, strings.ToUpper(tt.key), col.Header())
			require.Equal(t, tt.sortable, col.Sortable())
			require.Nil(t, col.CustomSort())
		})
	}
}

func Test_ColumnDef_WithMethods(t *testing.T) {
	rec := Record{"user": Record{"name": "ann"}, "role": "admin"}

	col := (*ColumnDef[Record])(nil).
		WithPath("user__name").
		WithMapper(func(r Record) any { return strings.ToUpper(Text(r["role"])) }).
		WithCustomSort(func(a, b Record) int { return 0 }).
		NotSortable()

	require.Equal(t, "ann", col.Value(rec))
	require.Equal(t, "ADMIN", DisplayValue[Record](col, rec))
	require.NotNil(t, col.CustomSort())
	require.False(t, col.Sortable())

	col = col.WithSortable(true).WithAccessor(func(r Record) any { return r["role"] })
	require.True(t, col.Sortable())
	require.Equal(t, "admin", col.Value(rec))
}

func Test_DisplayValue_WithoutMapper(t *testing.T) {
	col := NewColumn[member]("email", "Email")
	require.Equal(t, "a@b", DisplayValue[member](col, member{Email: "a@b"}))
}

// plainColumn implements only Column.
type plainColumn struct{}

func (plainColumn) Key() string { return "plain" }
func (plainColumn) Header() string { return "Plain" }
func (plainColumn) Sortable() bool { return true }
func (plainColumn) Value(r Record) any { return r["plain"] }

func Test_Column_OptionalCapabilities(t *testing.T) {
	var col Column[Record] = plainColumn{}

	require.Equal(t, 1, DisplayValue(col, Record{"plain": 1}))
	require.Nil(t, customComparator(col))
}

func Test_Columns_validate(t *testing.T) {
	tests := []struct {
		name string
		cols Columns[Record]
		ok   bool
	}{
		{"empty", Columns[Record]{}, false},
		{"empty key", Columns[Record]{NewColumn[Record]("", "X")}, false},
		{"duplicate key", Columns[Record]{NewColumn[Record]("a", "A"), NewColumn[Record]("a", "B")}, false},
		{"nil column", Columns[Record]{nil}, false},
		{"valid", Columns[Record]{NewColumn[Record]("a", "A"), NewColumn[Record]("b", "B")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cols.validate(); (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
			}
		})
	}
}

func Test_Columns_Lookups(t *testing.T) {
	cols := Columns[Record]{
		NewColumn[Record]("check", ""),
		NewColumn[Record]("name", "Name"),
		NewColumn[Record]("email", "Email"),
	}

	col, ok := cols.Find("email")
	require.True(t, ok)
	require.Equal(t, "Email", col.Header())

	_, ok = cols.Find("missing")
	require.False(t, ok)

	require.Equal(t, []string{"check", "name", "email"}, cols.Keys())
	require.Equal(t, []string{"name", "email"}, cols.SortableKeys())
	require.Equal(t, []string{"", "Name", "Email"}, cols.Headers())
}
