package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/stylekit/internal/plugin"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// Load and decode errors.
var (
	ErrMalformed         = errors.New("malformed configuration")
	ErrUnknownField      = errors.New("unknown configuration field")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

// Validation errors. Theme and plugin errors alias the resolving packages so
// errors.Is works against either name.
var (
	ErrInvalidGlob        = errors.New("invalid content glob")
	ErrUnknownExtension   = errors.New("unknown theme extension key")
	ErrNoThemes           = errors.New("no theme specified")
	ErrDuplicateTheme     = errors.New("duplicate theme")
	ErrDuplicatePlugin    = errors.New("duplicate plugin")
	ErrPluginRequired     = errors.New("required plugin not registered")
	ErrUnknownTheme       = theme.ErrUnknownTheme
	ErrInvalidThemeEntry  = theme.ErrInvalidTheme
	ErrUnknownPlugin      = plugin.ErrUnknownPlugin
	ErrPluginNotInstalled = plugin.ErrNotInstalled
)

// Warning conditions; reported but never fatal.
var (
	ErrNoContent         = errors.New("no content patterns")
	ErrDarkThemeUnlisted = errors.New("dark theme not in themes list")
	ErrThemeOverridden   = errors.New("custom theme overrides a bundled theme")
	ErrUnusedCustomTheme = errors.New("custom theme not in themes list")
	ErrEmptyPattern      = errors.New("content pattern matched no files")
)

// Severity classifies a validation issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Field    string // e.g. "content[1]", "daisyui.themes[0]"
	Value    string // The offending value, if any
	Err      error
}

func (i Issue) Error() string {
	if i.Value == "" {
		return fmt.Sprintf("%s: %v", i.Field, i.Err)
	}
	return fmt.Sprintf("%s %q: %v", i.Field, i.Value, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}

// Report collects validation issues.
type Report struct {
	Issues []Issue
}

// Add records an issue.
func (r *Report) Add(sev Severity, field, value string, err error) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Value: value, Err: err})
}

// Merge appends the issues of another report.
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Issues = append(r.Issues, other.Issues...)
	}
}

func (r *Report) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Errors returns the fatal issues.
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the non-fatal issues.
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any fatal issue was found.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Err returns a *ValidationError if the report has fatal issues, else nil.
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Issues: errs}
}

// ValidationError is returned when a configuration fails validation.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Unwrap exposes every issue to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue
	}
	return out
}
