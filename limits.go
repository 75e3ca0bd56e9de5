package gotable

const (
	// DefaultPageSize is the number of rows per page used when none is configured.
	DefaultPageSize = 25
	// MaxPageSize caps page sizes of a table and of API payloads.
	MaxPageSize = 500
)

// ValidPageSize reports whether pageSize is within [1, MaxPageSize].
func ValidPageSize(pageSize int) bool {
	return pageSize >= 1 && pageSize <= MaxPageSize
}

// ResolvePageSize returns the page size to render with. Sizes above
// MaxPageSize are capped. Sizes below 1 are replaced by fallback, or by
// DefaultPageSize when fallback is not valid either.
func ResolvePageSize(pageSize, fallback int) int {
	switch {
	case pageSize > MaxPageSize:
		return MaxPageSize
	case pageSize >= 1:
		return pageSize
	case ValidPageSize(fallback):
		return fallback
	default:
		return DefaultPageSize
	}
}
