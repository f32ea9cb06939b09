// Package emit renders a style configuration in the shapes the CSS build
// consumes: an ES module tailwind.config.js or the equivalent JSON document.
package emit

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/google/renameio/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/plugin"
	"github.com/jmylchreest/stylekit/internal/theme"
)

//go:embed templates/tailwind.config.js.tmpl
var jsTemplateText string

var jsTemplate = template.Must(template.New("tailwind.config.js").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(jsTemplateText))

// Format is an output shape.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
)

// DefaultFileName returns the conventional file name for a format.
func DefaultFileName(format Format) string {
	if format == FormatJSON {
		return "tailwind.config.json"
	}
	return "tailwind.config.js"
}

// Render emits cfg in the given format.
func Render(format Format, cfg *config.Config) ([]byte, error) {
	switch format {
	case FormatJS:
		return JS(cfg)
	case FormatJSON:
		return JSON(cfg)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// JSON returns the tool-native JSON document for cfg: keys in camelCase,
// theme flags resolved into list order and darkTheme, custom themes inlined
// as {"<name>": {tokens}} objects in the themes list.
func JSON(cfg *config.Config) ([]byte, error) {
	doc, err := document(cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func document(cfg *config.Config) ([]byte, error) {
	content := cfg.Content
	if content == nil {
		content = []string{}
	}
	extend := cfg.Theme.Extend
	if extend == nil {
		extend = map[string]any{}
	}
	plugins := cfg.Plugins
	if plugins == nil {
		plugins = []string{}
	}

	doc := []byte(`{}`)
	steps := []struct {
		path  string
		value any
	}{
		{"content", content},
		{"theme.extend", extend},
		{"daisyui.themes", []string{}},
	}
	var err error
	for _, s := range steps {
		if doc, err = sjson.SetBytes(doc, s.path, s.value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", s.path, err)
		}
	}

	themes, sel, err := orderedThemes(cfg)
	if err != nil {
		return nil, err
	}
	for _, name := range themes {
		var value any = name
		if tokens, ok := cfg.DaisyUI.Custom[name]; ok {
			value = map[string]map[string]string{name: tokens}
		}
		if doc, err = sjson.SetBytes(doc, "daisyui.themes.-1", value); err != nil {
			return nil, fmt.Errorf("failed to append theme %q: %w", name, err)
		}
	}

	options := []struct {
		path  string
		value any
	}{
		{"daisyui.darkTheme", sel.Dark},
		{"daisyui.base", cfg.DaisyUI.Base},
		{"daisyui.styled", cfg.DaisyUI.Styled},
		{"daisyui.utils", cfg.DaisyUI.Utils},
		{"daisyui.prefix", cfg.DaisyUI.Prefix},
		{"daisyui.logs", cfg.DaisyUI.Logs},
		{"daisyui.themeRoot", cfg.DaisyUI.ThemeRoot},
		{"plugins", plugins},
	}
	for _, o := range options {
		if doc, err = sjson.SetBytes(doc, o.path, o.value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", o.path, err)
		}
	}
	return doc, nil
}

// orderedThemes returns the theme names without flags, the selected default
// first and the rest in configured order. The daisyUI options block only
// knows plain names: the first is the default and darkTheme names the dark one.
func orderedThemes(cfg *config.Config) ([]string, theme.Selection, error) {
	entries, err := cfg.ThemeEntries()
	if err != nil {
		return nil, theme.Selection{}, err
	}
	sel, err := theme.Select(entries, cfg.DaisyUI.DarkTheme)
	if err != nil {
		return nil, theme.Selection{}, err
	}

	names := make([]string, 0, len(entries))
	if sel.Default != "" {
		names = append(names, sel.Default)
	}
	for _, e := range entries {
		if e.Name != sel.Default {
			names = append(names, e.Name)
		}
	}
	return names, sel, nil
}

type importSpec struct {
	Name       string
	Identifier string
}

type jsData struct {
	Imports []importSpec
	Content string
	Extend  string
	DaisyUI string
}

// JS renders cfg as an ES module tailwind.config.js.
func JS(cfg *config.Config) ([]byte, error) {
	doc, err := document(cfg)
	if err != nil {
		return nil, err
	}

	data := jsData{
		Imports: imports(cfg.Plugins),
		Content: indentRaw(gjson.GetBytes(doc, "content").Raw, "  "),
		Extend:  indentRaw(gjson.GetBytes(doc, "theme.extend").Raw, "    "),
		DaisyUI: indentRaw(gjson.GetBytes(doc, "daisyui").Raw, "  "),
	}

	var buf bytes.Buffer
	if err := jsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render tailwind.config.js: %w", err)
	}
	return buf.Bytes(), nil
}

// imports assigns each plugin a unique JS identifier.
func imports(plugins []string) []importSpec {
	used := make(map[string]int)
	out := make([]importSpec, 0, len(plugins))
	for _, name := range plugins {
		id := plugin.Identifier(name)
		if n := used[id]; n > 0 {
			used[id] = n + 1
			id = id + strconv.Itoa(n+1)
		} else {
			used[id] = 1
		}
		out = append(out, importSpec{Name: name, Identifier: id})
	}
	return out
}

// indentRaw pretty-prints a JSON fragment whose first line is already placed
// at the given indentation.
func indentRaw(raw, prefix string) string {
	if raw == "" {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), prefix, "  "); err != nil {
		return raw
	}
	return buf.String()
}

// WriteFile writes data to path atomically, creating parent directories.
// The file is synced before it replaces any existing file.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("failed to create pending file: %w", err)
	}
	// No-op once committed
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return pending.CloseAtomicallyReplace()
}
