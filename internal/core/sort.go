package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/stylekit/internal/theme"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByCatalog SortField = "catalog"
	SortByName    SortField = "name"
	SortByScheme  SortField = "scheme"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
}

// DefaultSortOptions returns default sort options (catalog order).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByCatalog,
		Order: SortAsc,
	}
}

// Sort sorts themes in place based on the provided options.
// Catalog order is the order the themes were given in.
func Sort(themes []theme.Theme, opts SortOptions) {
	if len(themes) == 0 {
		return
	}

	if opts.Field == SortByCatalog || opts.Field == "" {
		if opts.Order == SortDesc {
			for i, j := 0, len(themes)-1; i < j; i, j = i+1, j-1 {
				themes[i], themes[j] = themes[j], themes[i]
			}
		}
		return
	}

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := themes[i], themes[j]
		if opts.Order == SortDesc {
			a, b = b, a
		}

		switch opts.Field {
		case SortByScheme:
			if a.ColorScheme != b.ColorScheme {
				return a.ColorScheme < b.ColorScheme
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "n":
		return SortByName, nil
	case "scheme", "color-scheme", "s":
		return SortByScheme, nil
	default:
		return SortByCatalog, nil
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, nil
	}
}
