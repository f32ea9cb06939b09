// Package config handles loading, validating and saving style configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/renameio/v2"

	"github.com/jmylchreest/stylekit/internal/plugin"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// Default configuration values.
const (
	DefaultThemeRoot = ":root"
	DefaultDarkTheme = theme.DefaultDarkTheme
)

// ConfigNames lists the file names searched for in a project root, in order.
var ConfigNames = []string{"stylekit.toml", "stylekit.yaml", "stylekit.yml", "stylekit.json"}

// Config is the style configuration consumed by the CSS build.
// It is loaded once per build and treated as read-only afterwards;
// use Clone before handing it to code that may modify it.
type Config struct {
	Content []string      `toml:"content" yaml:"content" json:"content"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme" json:"theme"`
	DaisyUI DaisyUIConfig `toml:"daisyui" yaml:"daisyui" json:"daisyui"`
	Plugins []string      `toml:"plugins" yaml:"plugins" json:"plugins"`
}

// ThemeConfig holds framework theme overrides.
type ThemeConfig struct {
	Extend map[string]any `toml:"extend" yaml:"extend" json:"extend"` // Merged into the framework defaults
}

// DaisyUIConfig holds the component-theming plugin options.
type DaisyUIConfig struct {
	Themes    []string                     `toml:"themes" yaml:"themes" json:"themes"`             // Entries like "light" or "cupcake --default"
	DarkTheme string                       `toml:"dark_theme" yaml:"dark_theme" json:"dark_theme"` // Used for prefers-color-scheme: dark
	Base      bool                         `toml:"base" yaml:"base" json:"base"`
	Styled    bool                         `toml:"styled" yaml:"styled" json:"styled"`
	Utils     bool                         `toml:"utils" yaml:"utils" json:"utils"`
	Logs      bool                         `toml:"logs" yaml:"logs" json:"logs"`
	Prefix    string                       `toml:"prefix" yaml:"prefix" json:"prefix"`
	ThemeRoot string                       `toml:"theme_root" yaml:"theme_root" json:"theme_root"`
	Custom    map[string]map[string]string `toml:"custom" yaml:"custom" json:"custom"` // Theme name -> color tokens
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Content: []string{
			"./ui/templates/**/*.html",
			"./ui/static/**/*",
		},
		Theme: ThemeConfig{
			Extend: make(map[string]any),
		},
		DaisyUI: DaisyUIConfig{
			Themes:    []string{"light", "dark", "dracula", "wireframe"},
			DarkTheme: DefaultDarkTheme,
			Base:      true,
			Styled:    true,
			Utils:     true,
			Logs:      true,
			Prefix:    "",
			ThemeRoot: DefaultThemeRoot,
			Custom:    make(map[string]map[string]string),
		},
		Plugins: []string{plugin.DaisyUI},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Content = slices.Clone(c.Content)
	out.Plugins = slices.Clone(c.Plugins)
	out.DaisyUI.Themes = slices.Clone(c.DaisyUI.Themes)
	out.Theme.Extend = cloneValue(c.Theme.Extend).(map[string]any)
	if c.DaisyUI.Custom != nil {
		out.DaisyUI.Custom = make(map[string]map[string]string, len(c.DaisyUI.Custom))
		for name, tokens := range c.DaisyUI.Custom {
			out.DaisyUI.Custom[name] = maps.Clone(tokens)
		}
	}
	return &out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// ThemeEntries parses the themes list.
func (c *Config) ThemeEntries() ([]theme.Entry, error) {
	entries := make([]theme.Entry, 0, len(c.DaisyUI.Themes))
	for _, raw := range c.DaisyUI.Themes {
		e, err := theme.ParseEntry(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ThemeSelection returns the default and dark themes for the configuration.
func (c *Config) ThemeSelection() (theme.Selection, error) {
	entries, err := c.ThemeEntries()
	if err != nil {
		return theme.Selection{}, err
	}
	return theme.Select(entries, c.DaisyUI.DarkTheme)
}

// HasPlugin reports whether name is in the plugins list.
func (c *Config) HasPlugin(name string) bool {
	return slices.Contains(c.Plugins, name)
}

// ProjectRoot returns the project root: STYLEKIT_ROOT if set, else the
// working directory.
func ProjectRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// FindConfig returns the first config file present in root, or "".
func FindConfig(root string) string {
	for _, name := range ConfigNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadOptions configures Load.
type LoadOptions struct {
	Root     string          // Project root; defaults to the config file's directory
	Validate ValidateOptions // Catalog and resolver used for validation
	Logger   *slog.Logger
}

// LoadConfig loads and validates configuration from the specified path
// using the bundled theme catalog and plugin registry.
// If path is empty, the project root is searched for a config file and
// defaults are returned when none exists.
func LoadConfig(path string) (*Config, error) {
	cfg, _, err := Load(path, LoadOptions{})
	return cfg, err
}

// Load decodes the configuration at path and validates it. Fatal issues are
// returned as a *ValidationError; warnings are logged and returned in the report.
func Load(path string, opts LoadOptions) (*Config, *Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if path == "" {
		root := opts.Root
		if root == "" {
			root = ProjectRoot()
		}
		path = FindConfig(root)
		if path == "" {
			logger.Debug("no config file found, using defaults", "root", root)
		}
		if opts.Root == "" {
			opts.Root = root
		}
	}

	cfg, err := Decode(path)
	if err != nil {
		return nil, nil, err
	}

	if opts.Root == "" && path != "" {
		opts.Root = filepath.Dir(path)
	}
	vopts := opts.Validate
	if vopts.Resolver == nil {
		vopts.Resolver = plugin.NewResolver(opts.Root, logger)
	}

	report := cfg.Validate(vopts)
	for _, issue := range report.Warnings() {
		logger.Warn("configuration warning", "field", issue.Field, "value", issue.Value, "error", issue.Err)
	}
	if err := report.Err(); err != nil {
		return nil, report, err
	}
	return cfg, report, nil
}

// Decode reads the configuration at path on top of the defaults and applies
// environment overrides. It does not validate. An empty path yields the
// defaults with overrides applied.
func Decode(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		if err := Unmarshal(format, data, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// Save writes the configuration to the specified path in the format implied
// by its extension. Creates parent directories if needed and replaces the
// file atomically.
func (c *Config) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(format, c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
