package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/scan"
	"github.com/jmylchreest/stylekit/internal/theme"
)

func testSummary() *Summary {
	r := &config.Report{}
	r.Add(config.SeverityWarning, "content[1]", "ui/static/**/*", config.ErrEmptyPattern)
	r.Add(config.SeverityError, "daisyui.themes[2]", "draculaa", config.ErrUnknownTheme)

	return &Summary{
		ConfigPath: "/project/stylekit.toml",
		Config:     config.DefaultConfig(),
		Report:     r,
		Selection:  theme.Selection{Default: "light", Dark: "dark"},
		Scan: &scan.Result{
			Root: "/project",
			Patterns: []scan.PatternResult{
				{Pattern: "ui/templates/**/*.html", Files: []string{"ui/templates/index.html"}, Bytes: 2048},
				{Pattern: "ui/static/**/*"},
				{Pattern: "!ui/templates/drafts/**", Exclude: true},
			},
			Files: []string{"ui/templates/index.html"},
			Bytes: 2048,
		},
	}
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &StyledFormatter{}, NewFormatter(FormatStyled, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown", opts))
}

func TestSummaryOK(t *testing.T) {
	s := testSummary()
	assert.False(t, s.OK())

	s.Report = &config.Report{}
	s.Report.Add(config.SeverityWarning, "content", "", config.ErrNoContent)
	assert.True(t, s.OK())

	s.Report = nil
	assert.True(t, s.OK())
}

func TestPlainFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlainFormatter(DefaultFormatterOptions()).Format(&buf, testSummary())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Configuration /project/stylekit.toml")
	assert.Contains(t, out, "themes:  light, dark, dracula, wireframe")
	assert.Contains(t, out, "default: light (dark: dark)")
	assert.Contains(t, out, "Content 1 files, 2.0 kB")
	assert.Contains(t, out, "ui/templates/**/*.html: 1 files")
	assert.Contains(t, out, "exclude !ui/templates/drafts/**: 0 files")
	assert.NotContains(t, out, "ui/templates/index.html\n")

	// Errors are listed before warnings
	errIdx := bytes.Index(buf.Bytes(), []byte(`error   daisyui.themes[2] "draculaa"`))
	warnIdx := bytes.Index(buf.Bytes(), []byte(`warning content[1] "ui/static/**/*"`))
	require.NotEqual(t, -1, errIdx)
	require.NotEqual(t, -1, warnIdx)
	assert.Less(t, errIdx, warnIdx)
}

func TestPlainFormatter_Options(t *testing.T) {
	var buf bytes.Buffer
	opts := FormatterOptions{ShowFiles: true, ShowWarnings: false}
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testSummary()))

	out := buf.String()
	assert.Contains(t, out, "    ui/templates/index.html\n")
	assert.NotContains(t, out, "warning")
	assert.Contains(t, out, "error")
}

func TestPlainFormatter_Defaults(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{Config: config.DefaultConfig(), Report: &config.Report{}}
	require.NoError(t, NewPlainFormatter(DefaultFormatterOptions()).Format(&buf, s))

	out := buf.String()
	assert.Contains(t, out, "Configuration (defaults)")
	assert.NotContains(t, out, "default:")
	assert.Contains(t, out, "\nok\n")
}

func TestStyledFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStyledFormatter(DefaultFormatterOptions()).Format(&buf, testSummary()))

	// Styling may be stripped when no terminal is attached; content stays.
	out := buf.String()
	assert.Contains(t, out, "/project/stylekit.toml")
	assert.Contains(t, out, "draculaa")
	assert.Contains(t, out, "unknown theme")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, testSummary()))

	var got struct {
		OK           bool   `json:"ok"`
		ConfigPath   string `json:"config_path"`
		DefaultTheme string `json:"default_theme"`
		DarkTheme    string `json:"dark_theme"`
		Config       struct {
			Plugins []string `json:"plugins"`
		} `json:"config"`
		Scan struct {
			Files    int   `json:"files"`
			Bytes    int64 `json:"bytes"`
			Patterns []struct {
				Pattern string   `json:"pattern"`
				Exclude bool     `json:"exclude"`
				Count   int      `json:"count"`
				Files   []string `json:"files"`
			} `json:"patterns"`
		} `json:"scan"`
		Issues []struct {
			Severity string `json:"severity"`
			Field    string `json:"field"`
			Value    string `json:"value"`
			Message  string `json:"message"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.False(t, got.OK)
	assert.Equal(t, "/project/stylekit.toml", got.ConfigPath)
	assert.Equal(t, "light", got.DefaultTheme)
	assert.Equal(t, "dark", got.DarkTheme)
	assert.Equal(t, []string{"daisyui"}, got.Config.Plugins)

	assert.Equal(t, 1, got.Scan.Files)
	assert.Equal(t, int64(2048), got.Scan.Bytes)
	require.Len(t, got.Scan.Patterns, 3)
	assert.Equal(t, 1, got.Scan.Patterns[0].Count)
	assert.Nil(t, got.Scan.Patterns[0].Files)
	assert.True(t, got.Scan.Patterns[2].Exclude)

	require.Len(t, got.Issues, 2)
	assert.Equal(t, "error", got.Issues[0].Severity)
	assert.Equal(t, "daisyui.themes[2]", got.Issues[0].Field)
	assert.Equal(t, "draculaa", got.Issues[0].Value)
	assert.Equal(t, config.ErrUnknownTheme.Error(), got.Issues[0].Message)
	assert.Equal(t, "warning", got.Issues[1].Severity)
}

func TestJSONFormatter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	s := &Summary{Config: config.DefaultConfig()}
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, s))

	assert.Contains(t, buf.String(), `"ok": true`)
	assert.Contains(t, buf.String(), `"issues": []`)
	assert.NotContains(t, buf.String(), `"scan"`)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestFormatter_WriteError(t *testing.T) {
	for _, format := range []FormatType{FormatPlain, FormatStyled, FormatJSON} {
		err := NewFormatter(format, DefaultFormatterOptions()).Format(failWriter{}, testSummary())
		assert.Error(t, err, format)
	}
}
