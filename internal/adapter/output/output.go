// Package output provides formatters for validation and scan reports.
package output

import (
	"io"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/scan"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// Summary is everything a report formatter can show about a configuration.
type Summary struct {
	ConfigPath string // Empty when defaults were used
	Config     *config.Config
	Report     *config.Report
	Selection  theme.Selection
	Scan       *scan.Result // Nil when no scan was run
}

// OK reports whether the summary has no fatal issues.
func (s *Summary) OK() bool {
	return s.Report == nil || !s.Report.HasErrors()
}

// Formatter writes a summary.
type Formatter interface {
	Format(w io.Writer, s *Summary) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatStyled FormatType = "styled"
	FormatJSON   FormatType = "json"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	ShowFiles    bool // List matched files per pattern
	ShowWarnings bool // Include warnings, not just errors
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowFiles:    false,
		ShowWarnings: true,
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatStyled:
		return NewStyledFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// visibleIssues returns the issues the options ask for, errors first.
func visibleIssues(r *config.Report, opts FormatterOptions) []config.Issue {
	if r == nil {
		return nil
	}
	issues := r.Errors()
	if opts.ShowWarnings {
		issues = append(issues, r.Warnings()...)
	}
	return issues
}
