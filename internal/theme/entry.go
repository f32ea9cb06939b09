package theme

import (
	"fmt"
	"strings"
)

// Entry flags understood in a themes list, e.g. "cupcake --default".
const (
	FlagDefault     = "--default"
	FlagPrefersDark = "--prefersdark"
)

// Entry is a parsed element of the themes list.
type Entry struct {
	Name        string
	Default     bool
	PrefersDark bool
}

// ParseEntry parses a themes list element of the form "name [--default] [--prefersdark]".
func ParseEntry(s string) (Entry, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Entry{}, fmt.Errorf("%w: empty theme entry", ErrInvalidTheme)
	}

	e := Entry{Name: fields[0]}
	if strings.HasPrefix(e.Name, "-") {
		return Entry{}, fmt.Errorf("%w: entry %q has no theme name", ErrInvalidTheme, s)
	}
	for _, flag := range fields[1:] {
		switch flag {
		case FlagDefault:
			e.Default = true
		case FlagPrefersDark:
			e.PrefersDark = true
		default:
			return Entry{}, fmt.Errorf("%w: unknown flag %q in entry %q", ErrInvalidTheme, flag, s)
		}
	}
	return e, nil
}

// String formats the entry back into list syntax.
func (e Entry) String() string {
	s := e.Name
	if e.Default {
		s += " " + FlagDefault
	}
	if e.PrefersDark {
		s += " " + FlagPrefersDark
	}
	return s
}

// Selection is the outcome of choosing the default and dark themes.
type Selection struct {
	Default string // Applied when no data-theme is set
	Dark    string // Applied for prefers-color-scheme: dark, empty if none
}

// Select picks the default and dark themes from a parsed themes list.
// The default is the entry flagged --default, else the first entry.
// The dark theme is the entry flagged --prefersdark, else darkTheme when
// it is listed, else none.
func Select(entries []Entry, darkTheme string) (Selection, error) {
	var sel Selection
	if len(entries) == 0 {
		return sel, nil
	}

	for _, e := range entries {
		if e.Default {
			if sel.Default != "" {
				return Selection{}, fmt.Errorf("%w: both %q and %q are flagged %s", ErrInvalidTheme, sel.Default, e.Name, FlagDefault)
			}
			sel.Default = e.Name
		}
		if e.PrefersDark {
			if sel.Dark != "" {
				return Selection{}, fmt.Errorf("%w: both %q and %q are flagged %s", ErrInvalidTheme, sel.Dark, e.Name, FlagPrefersDark)
			}
			sel.Dark = e.Name
		}
	}

	if sel.Default == "" {
		sel.Default = entries[0].Name
	}
	if sel.Dark == "" && darkTheme != "" {
		for _, e := range entries {
			if e.Name == darkTheme {
				sel.Dark = darkTheme
				break
			}
		}
	}
	return sel, nil
}
