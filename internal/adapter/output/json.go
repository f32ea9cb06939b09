package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/stylekit/internal/config"
)

// JSONFormatter formats summaries as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

type jsonIssue struct {
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
}

type jsonPattern struct {
	Pattern string   `json:"pattern"`
	Exclude bool     `json:"exclude,omitempty"`
	Count   int      `json:"count"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type jsonScan struct {
	Files    int           `json:"files"`
	Bytes    int64         `json:"bytes"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonSummary struct {
	OK           bool           `json:"ok"`
	ConfigPath   string         `json:"config_path,omitempty"`
	Config       *config.Config `json:"config,omitempty"`
	DefaultTheme string         `json:"default_theme,omitempty"`
	DarkTheme    string         `json:"dark_theme,omitempty"`
	Scan         *jsonScan      `json:"scan,omitempty"`
	Issues       []jsonIssue    `json:"issues"`
}

// Format writes the summary as a JSON object.
func (f *JSONFormatter) Format(w io.Writer, s *Summary) error {
	out := jsonSummary{
		OK:           s.OK(),
		ConfigPath:   s.ConfigPath,
		Config:       s.Config,
		DefaultTheme: s.Selection.Default,
		DarkTheme:    s.Selection.Dark,
		Issues:       []jsonIssue{},
	}

	for _, issue := range visibleIssues(s.Report, f.opts) {
		out.Issues = append(out.Issues, jsonIssue{
			Severity: issue.Severity.String(),
			Field:    issue.Field,
			Value:    issue.Value,
			Message:  issue.Err.Error(),
		})
	}

	if s.Scan != nil {
		js := &jsonScan{Files: len(s.Scan.Files), Bytes: s.Scan.Bytes, Patterns: []jsonPattern{}}
		for _, p := range s.Scan.Patterns {
			jp := jsonPattern{Pattern: p.Pattern, Exclude: p.Exclude, Count: len(p.Files)}
			if f.opts.ShowFiles {
				jp.Files = p.Files
			}
			if p.Err != nil {
				jp.Error = p.Err.Error()
			}
			js.Patterns = append(js.Patterns, jp)
		}
		out.Scan = js
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
