package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/stylekit/internal/config"
)

// PlainFormatter formats summaries as plain text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes the summary as plain text.
func (f *PlainFormatter) Format(w io.Writer, s *Summary) error {
	var sb strings.Builder
	writeSummary(&sb, s, f.opts, plainStyle{})
	_, err := io.WriteString(w, sb.String())
	return err
}

// style decorates parts of a text summary.
type style interface {
	header(string) string
	label(string) string
	severity(config.Severity, string) string
	ok(string) string
}

type plainStyle struct{}

func (plainStyle) header(s string) string { return s }
func (plainStyle) label(s string) string  { return s }
func (plainStyle) ok(s string) string     { return s }

func (plainStyle) severity(_ config.Severity, s string) string {
	return s
}

// writeSummary renders a summary using the given style.
func writeSummary(sb *strings.Builder, s *Summary, opts FormatterOptions, st style) {
	source := s.ConfigPath
	if source == "" {
		source = "(defaults)"
	}
	sb.WriteString(st.header("Configuration") + " " + source + "\n")

	if s.Config != nil {
		fmt.Fprintf(sb, "  %s %s\n", st.label("content:"), strings.Join(s.Config.Content, ", "))
		fmt.Fprintf(sb, "  %s %s\n", st.label("themes: "), strings.Join(s.Config.DaisyUI.Themes, ", "))
		fmt.Fprintf(sb, "  %s %s\n", st.label("plugins:"), strings.Join(s.Config.Plugins, ", "))
	}
	if s.Selection.Default != "" {
		dark := s.Selection.Dark
		if dark == "" {
			dark = "none"
		}
		fmt.Fprintf(sb, "  %s %s (dark: %s)\n", st.label("default:"), s.Selection.Default, dark)
	}

	if s.Scan != nil {
		fmt.Fprintf(sb, "\n%s %d files, %s\n", st.header("Content"), len(s.Scan.Files), humanize.Bytes(uint64(s.Scan.Bytes)))
		for _, p := range s.Scan.Patterns {
			kind := "match"
			if p.Exclude {
				kind = "exclude"
			}
			fmt.Fprintf(sb, "  %-7s %s: %d files\n", kind, p.Pattern, len(p.Files))
			if opts.ShowFiles {
				for _, file := range p.Files {
					fmt.Fprintf(sb, "    %s\n", file)
				}
			}
		}
	}

	issues := visibleIssues(s.Report, opts)
	sb.WriteString("\n")
	if len(issues) == 0 {
		sb.WriteString(st.ok("ok") + "\n")
		return
	}
	for _, issue := range issues {
		name := issue.Severity.String()
		fmt.Fprintf(sb, "%s %s\n", st.severity(issue.Severity, fmt.Sprintf("%-7s", name)), issue.Error())
	}
}
