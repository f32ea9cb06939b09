package core

import (
	"strings"

	"github.com/jmylchreest/stylekit/internal/theme"
)

// LookupByName finds a theme by name, ignoring case.
// Returns nil if not found.
func LookupByName(themes []theme.Theme, name string) *theme.Theme {
	for i := range themes {
		if strings.EqualFold(themes[i].Name, name) {
			return &themes[i]
		}
	}
	return nil
}

// LookupByIndex finds a theme by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(themes []theme.Theme, index int) *theme.Theme {
	// Convert to 0-based
	idx := index - 1
	if idx < 0 || idx >= len(themes) {
		return nil
	}
	return &themes[idx]
}

// Search finds themes whose name contains term.
// Case-insensitive substring match.
func Search(themes []theme.Theme, term string) []theme.Theme {
	if term == "" {
		return themes
	}

	term = strings.ToLower(term)
	var result []theme.Theme

	for _, t := range themes {
		if strings.Contains(strings.ToLower(t.Name), term) {
			result = append(result, t)
		}
	}

	return result
}

// Schemes returns the number of themes per color scheme.
func Schemes(themes []theme.Theme) map[theme.ColorScheme]int {
	counts := make(map[theme.ColorScheme]int)
	for _, t := range themes {
		counts[t.ColorScheme]++
	}
	return counts
}
