package gotable

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DecodeListingToken(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RawListing
		wantErr bool
	}{
		{
			name:  "empty token",
			input: "",
			want:  RawListing{},
		},
		{
			name:  "full listing",
			input: base64.RawURLEncoding.EncodeToString([]byte(`{"query":"ops","sort":"name desc","page":3,"pageSize":10}`)),
			want:  RawListing{Query: "ops", Sort: "name desc", Page: 3, PageSize: 10},
		},
		{
			name:    "not base64",
			input:   "***",
			wantErr: true,
		},
		{
			name:    "not json",
			input:   base64.RawURLEncoding.EncodeToString([]byte("15")),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeListingToken(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_RawListing_Token(t *testing.T) {
	require.Empty(t, RawListing{}.Token())
	require.Empty(t, RawListing{Page: 1}.Token())

	raw := RawListing{Query: "ünïcode & spaces", Sort: "email", Page: 2, PageSize: 5}
	token := raw.Token()
	require.NotEmpty(t, token)
	require.NotContains(t, token, "=")

	decoded, err := DecodeListingToken(token)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func Test_Table_PageToken(t *testing.T) {
	tbl, _ := newMemberTable(t, numberedMembers(40))
	tbl.Search("member")
	tbl.SortBy("name")
	tbl.GoToPage(6)

	view := tbl.Render()
	require.Equal(t, "1 … 4 5 6 7 8", labelsString(view.Labels))

	for _, label := range view.Labels {
		token := tbl.PageToken(label)
		if label.IsEllipsis() {
			require.Empty(t, token)
			continue
		}

		raw, err := DecodeListingToken(token)
		require.NoError(t, err)
		require.Equal(t, RawListing{Query: "member", Sort: "name asc", Page: label.Number, PageSize: 5}, raw)
	}
}
