// Package core provides filtering, sorting, and lookup logic for theme lists.
package core

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/stylekit/internal/theme"
)

// Source selects where a theme comes from.
type Source string

const (
	SourceAny     Source = ""
	SourceBundled Source = "bundled"
	SourceCustom  Source = "custom"
)

// FilterOptions specifies criteria for filtering themes.
type FilterOptions struct {
	Scheme  theme.ColorScheme // Filter by color scheme (empty=any)
	Source  Source            // Bundled or custom (empty=any)
	Search  string            // Case-insensitive substring of the name
	Enabled map[string]bool   // Only these names when non-nil
	Limit   int               // Maximum results (0=unlimited)
}

// Filter filters themes based on the provided options. Order is preserved.
func Filter(themes []theme.Theme, opts FilterOptions) []theme.Theme {
	result := make([]theme.Theme, 0, len(themes))

	for _, t := range themes {
		if opts.Scheme != "" && t.ColorScheme != opts.Scheme {
			continue
		}

		switch opts.Source {
		case SourceBundled:
			if !t.IsBundled {
				continue
			}
		case SourceCustom:
			if t.IsBundled {
				continue
			}
		}

		if opts.Enabled != nil && !opts.Enabled[t.Name] {
			continue
		}

		result = append(result, t)
	}

	result = Search(result, opts.Search)

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// ParseColorScheme parses a color scheme string. Empty means any.
func ParseColorScheme(s string) (theme.ColorScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return "", nil
	case "light", "l":
		return theme.ColorSchemeLight, nil
	case "dark", "d":
		return theme.ColorSchemeDark, nil
	default:
		return "", fmt.Errorf("invalid color scheme: %s (use light or dark)", s)
	}
}

// ParseSource parses a theme source string. Empty means any.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return SourceAny, nil
	case "bundled", "builtin", "b":
		return SourceBundled, nil
	case "custom", "user", "c":
		return SourceCustom, nil
	default:
		return SourceAny, fmt.Errorf("invalid theme source: %s (use bundled or custom)", s)
	}
}
