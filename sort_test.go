package gotable

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func memberColumns() Columns[member] {
	return Columns[member]{
		NewColumn[member]("name", "Name"),
		NewColumn[member]("email", "Email"),
		NewColumn[member]("role", "Role"),
		NewColumn[member]("user__name", "User"),
		NewColumn[member]("parity", "Parity").
			WithAccessor(func(m member) any { return m.ID % 2 }).
			WithCustomSort(func(a, b member) int { return cmp.Compare(a.ID%2, b.ID%2) }),
		NewColumn[member]("actions", ""),
	}
}

func Test_SortObjects(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		want []int
	}{
		{"empty key keeps input order", SortKey{}, []int{1, 2, 3, 4, 5}},
		{"unknown column keeps input order", SortAsc("missing"), []int{1, 2, 3, 4, 5}},
		{"non-sortable column keeps input order", SortDesc("actions"), []int{1, 2, 3, 4, 5}},
		{"name ascending, accents collate with base letter", SortAsc("name"), []int{1, 2, 3, 4, 5}},
		{"name descending", SortDesc("name"), []int{5, 4, 3, 2, 1}},
		{"ties keep input order ascending", SortAsc("role"), []int{1, 4, 2, 3, 5}},
		{"ties keep input order descending", SortDesc("role"), []int{2, 3, 5, 4, 1}},
		{"missing nested value first ascending", SortAsc("user__name"), []int{3, 1, 2, 4, 5}},
		{"missing nested value first descending", SortDesc("user__name"), []int{3, 5, 4, 2, 1}},
		{"custom comparator ascending", SortAsc("parity"), []int{2, 4, 1, 3, 5}},
		{"custom comparator descending", SortDesc("parity"), []int{1, 3, 5, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortObjects(testMembers(), tt.key, memberColumns(), language.English)
			require.Equal(t, tt.want, memberIDs(got))
		})
	}
}

func Test_SortObjects_DoesNotMutateInput(t *testing.T) {
	records := testMembers()
	_ = SortObjects(records, SortDesc("name"), memberColumns(), language.English)
	_ = SortObjects(records, SortDesc("parity"), memberColumns(), language.English)
	require.Equal(t, []int{1, 2, 3, 4, 5}, memberIDs(records))
}

func Test_SortObjects_ReverseOfDistinctKeys(t *testing.T) {
	cols := memberColumns()

	for _, field := range []string{"name", "email"} {
		asc := memberIDs(SortObjects(testMembers(), SortAsc(field), cols, language.English))
		desc := memberIDs(SortObjects(testMembers(), SortDesc(field), cols, language.English))

		slices.Reverse(desc)
		require.Equal(t, asc, desc, field)
	}
}

func Test_SortBy_Values(t *testing.T) {
	records := []Record{
		{"id": 1, "n": 10},
		{"id": 2, "n": 9},
		{"id": 3},
		{"id": 4, "n": 100},
		{"id": 5, "n": ""},
	}
	ids := func(rs []Record) []any {
		out := make([]any, len(rs))
		for i, r := range rs {
			out[i] = r["id"]
		}
		return out
	}

	asc := SortBy(records, PathAccessor[Record]("n"), DirectionASC, language.English)
	require.Equal(t, []any{3, 5, 2, 1, 4}, ids(asc))

	desc := SortBy(records, PathAccessor[Record]("n"), DirectionDESC, language.English)
	require.Equal(t, []any{3, 5, 4, 1, 2}, ids(desc))

	require.Equal(t, []any{1, 2, 3, 4, 5}, ids(SortBy(records, nil, DirectionASC, language.English)))

	large := []Record{
		{"id": 1, "n": int64(1<<53 + 1)},
		{"id": 2, "n": int64(1 << 53)},
		{"id": 3, "n": uint64(1<<64 - 1)},
	}
	require.Equal(t, []any{2, 1, 3}, ids(SortBy(large, PathAccessor[Record]("n"), DirectionASC, language.English)))
	require.Equal(t, []any{3, 1, 2}, ids(SortBy(large, PathAccessor[Record]("n"), DirectionDESC, language.English)))
}

func Test_SortWith(t *testing.T) {
	byRole := func(a, b member) int { return cmp.Compare(a.Role, b.Role) }

	require.Equal(t, []int{1, 4, 2, 3, 5}, memberIDs(SortWith(testMembers(), byRole, DirectionASC)))
	require.Equal(t, []int{2, 3, 5, 4, 1}, memberIDs(SortWith(testMembers(), byRole, DirectionDESC)))
	require.Equal(t, []int{1, 2, 3, 4, 5}, memberIDs(SortWith(testMembers(), nil, DirectionDESC)))
}
