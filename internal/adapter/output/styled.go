package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/stylekit/internal/config"
)

// StyledFormatter formats summaries with terminal colors.
type StyledFormatter struct {
	opts FormatterOptions
	st   lipglossStyle
}

// NewStyledFormatter creates a new styled formatter.
func NewStyledFormatter(opts FormatterOptions) *StyledFormatter {
	return &StyledFormatter{
		opts: opts,
		st: lipglossStyle{
			headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			labelStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			errorStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			okStyle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		},
	}
}

// Format writes the summary with colors.
func (f *StyledFormatter) Format(w io.Writer, s *Summary) error {
	var sb strings.Builder
	writeSummary(&sb, s, f.opts, f.st)
	_, err := io.WriteString(w, sb.String())
	return err
}

type lipglossStyle struct {
	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	errorStyle  lipgloss.Style
	warnStyle   lipgloss.Style
	okStyle     lipgloss.Style
}

func (l lipglossStyle) header(s string) string { return l.headerStyle.Render(s) }
func (l lipglossStyle) label(s string) string  { return l.labelStyle.Render(s) }
func (l lipglossStyle) ok(s string) string     { return l.okStyle.Render(s) }

func (l lipglossStyle) severity(sev config.Severity, s string) string {
	if sev == config.SeverityError {
		return l.errorStyle.Render(s)
	}
	return l.warnStyle.Render(s)
}
