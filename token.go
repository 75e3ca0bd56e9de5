package gotable

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// IsEmpty returns true if the listing asks for nothing but the defaults.
func (r RawListing) IsEmpty() bool {
	return r == RawListing{} || r == RawListing{Page: 1}
}

// WithPage returns a copy of the listing pointing at page.
func (r RawListing) WithPage(page int) RawListing {
	r.Page = page
	return r
}

// Token returns the listing as an opaque URL-safe token, e.g. for page links
// of a stateless API. An empty listing yields "".
func (r RawListing) Token() string {
	if r.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(r)
	if err != nil {
		panic(fmt.Errorf("cannot marshal listing token: %w", err))
	}

	return _encoder.EncodeToString(jTok)
}

// DecodeListingToken parses a token built by RawListing.Token. An empty token
// yields an empty listing.
func DecodeListingToken(token string) (RawListing, error) {
	var raw RawListing
	if len(token) == 0 {
		return raw, nil
	}

	jsonData, err := _encoder.DecodeString(token)
	if err != nil {
		return RawListing{}, fmt.Errorf("failed to decode base64 encoded listing token: %w", err)
	}

	if err = json.Unmarshal(jsonData, &raw); err != nil {
		return RawListing{}, fmt.Errorf("failed to unmarshal json encoded listing token: %w", err)
	}

	return raw, nil
}

// PageToken returns the token of page under the current query, sort key and
// page size. Returns "" for ellipsis labels.
func (t *Table[ID, T]) PageToken(label PageLabel) string {
	if label.IsEllipsis() {
		return ""
	}

	return t.Raw().WithPage(label.Number).Token()
}
