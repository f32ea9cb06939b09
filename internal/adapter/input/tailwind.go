package input

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// ParseTailwindJSON converts a tool-native JSON config document into a Config.
// Keys that are absent keep their defaults. "content" may be an array of
// globs or an object with a "files" array; "daisyui.themes" may mix names
// and {"<entry>": {tokens}} custom theme objects. Documents written by emit.JSON
// carry plain names with the default first and the dark theme in darkTheme,
// which decode back to the same theme selection.
func ParseTailwindJSON(data []byte) (*config.Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", config.ErrMalformed)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: document is not an object", config.ErrMalformed)
	}

	cfg := config.DefaultConfig()

	if v := doc.Get("content"); v.Exists() {
		files := v
		if v.IsObject() {
			files = v.Get("files")
		}
		content, err := stringList(files, "content")
		if err != nil {
			return nil, err
		}
		cfg.Content = content
	}

	if v := doc.Get("theme.extend"); v.Exists() {
		extend, ok := v.Value().(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: theme.extend must be an object", config.ErrMalformed)
		}
		cfg.Theme.Extend = extend
	}

	if v := doc.Get("daisyui"); v.Exists() {
		if err := parseDaisyUI(v, cfg); err != nil {
			return nil, err
		}
	}

	if v := doc.Get("plugins"); v.Exists() {
		plugins, err := stringList(v, "plugins")
		if err != nil {
			return nil, err
		}
		cfg.Plugins = plugins
	}

	return cfg, nil
}

func parseDaisyUI(v gjson.Result, cfg *config.Config) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: daisyui must be an object", config.ErrMalformed)
	}
	d := &cfg.DaisyUI

	if themes := v.Get("themes"); themes.Exists() {
		if !themes.IsArray() {
			return fmt.Errorf("%w: daisyui.themes must be an array", config.ErrMalformed)
		}
		d.Themes = []string{}
		for i, item := range themes.Array() {
			switch {
			case item.Type == gjson.String:
				d.Themes = append(d.Themes, item.String())
			case item.IsObject():
				var err error
				item.ForEach(func(key, tokens gjson.Result) bool {
					err = addCustomTheme(d, key.String(), tokens)
					return err == nil
				})
				if err != nil {
					return fmt.Errorf("daisyui.themes[%d]: %w", i, err)
				}
			default:
				return fmt.Errorf("%w: daisyui.themes[%d] must be a string or object", config.ErrMalformed, i)
			}
		}
	}

	texts := map[string]*string{
		"darkTheme": &d.DarkTheme,
		"prefix":    &d.Prefix,
		"themeRoot": &d.ThemeRoot,
	}
	for key, dst := range texts {
		if r := v.Get(key); r.Exists() {
			if r.Type != gjson.String {
				return fmt.Errorf("%w: daisyui.%s must be a string", config.ErrMalformed, key)
			}
			*dst = r.String()
		}
	}

	bools := map[string]*bool{
		"base":   &d.Base,
		"styled": &d.Styled,
		"utils":  &d.Utils,
		"logs":   &d.Logs,
	}
	for key, dst := range bools {
		if r := v.Get(key); r.Exists() {
			if r.Type != gjson.True && r.Type != gjson.False {
				return fmt.Errorf("%w: daisyui.%s must be a boolean", config.ErrMalformed, key)
			}
			*dst = r.Bool()
		}
	}
	return nil
}

func addCustomTheme(d *config.DaisyUIConfig, raw string, tokens gjson.Result) error {
	entry, err := theme.ParseEntry(raw)
	if err != nil {
		return err
	}
	if !tokens.IsObject() {
		return fmt.Errorf("%w: theme %q must map to an object of color tokens", config.ErrMalformed, entry.Name)
	}

	colors := make(map[string]string)
	tokens.ForEach(func(k, val gjson.Result) bool {
		colors[k.String()] = val.String()
		return true
	})

	if d.Custom == nil {
		d.Custom = make(map[string]map[string]string)
	}
	d.Custom[entry.Name] = colors
	d.Themes = append(d.Themes, raw)
	return nil
}

func stringList(v gjson.Result, field string) ([]string, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: %s must be an array", config.ErrMalformed, field)
	}
	out := []string{}
	for i, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", config.ErrMalformed, field, i)
		}
		out = append(out, item.String())
	}
	return out, nil
}
