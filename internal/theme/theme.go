package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownTheme is returned when a theme name is neither bundled nor custom.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrInvalidTheme is returned for malformed theme entries or definitions.
	ErrInvalidTheme = errors.New("invalid theme")
)

// ColorScheme is the browser color scheme a theme is designed for.
type ColorScheme string

const (
	ColorSchemeLight ColorScheme = "light"
	ColorSchemeDark  ColorScheme = "dark"
)

// Theme describes a daisyUI theme.
type Theme struct {
	Name        string            `toml:"name"`
	ColorScheme ColorScheme       `toml:"color_scheme"`
	Colors      map[string]string `toml:"colors,omitempty"`

	Path      string `toml:"-"` // Source file for user themes
	IsBundled bool   `toml:"-"`
}

// ColorTokens lists the color names a custom daisyUI theme may define.
var ColorTokens = []string{
	"primary", "primary-content",
	"secondary", "secondary-content",
	"accent", "accent-content",
	"neutral", "neutral-content",
	"base-100", "base-200", "base-300", "base-content",
	"info", "info-content",
	"success", "success-content",
	"warning", "warning-content",
	"error", "error-content",
}

// IsColorToken reports whether name is a daisyUI color token.
func IsColorToken(name string) bool {
	for _, t := range ColorTokens {
		if t == name {
			return true
		}
	}
	return false
}

// ValidateColors checks that every key of colors is a known token.
func ValidateColors(colors map[string]string) error {
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !IsColorToken(k) {
			return fmt.Errorf("%w: unknown color token %q", ErrInvalidTheme, k)
		}
		if colors[k] == "" {
			return fmt.Errorf("%w: empty value for color token %q", ErrInvalidTheme, k)
		}
	}
	return nil
}

// Catalog is the set of themes a configuration can reference.
// Later additions override earlier ones with the same name.
type Catalog struct {
	mu     sync.RWMutex
	themes map[string]Theme
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{themes: make(map[string]Theme)}
}

// DefaultCatalog returns a catalog holding the bundled daisyUI themes.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	bundled, err := BundledThemes()
	if err != nil {
		// The catalog is embedded; a parse failure is a build defect.
		panic(err)
	}
	for _, t := range bundled {
		c.Add(t)
	}
	return c
}

// Add registers a theme, replacing any existing theme of the same name.
func (c *Catalog) Add(t Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.themes[t.Name]; !ok {
		c.order = append(c.order, t.Name)
	}
	c.themes[t.Name] = t
}

// Lookup returns the theme with the given name.
func (c *Catalog) Lookup(name string) (Theme, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.themes[name]
	return t, ok
}

// Names returns theme names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Themes returns all themes in registration order.
func (c *Catalog) Themes() []Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Theme, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.themes[name])
	}
	return out
}

// Len returns the number of themes in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// ThemesDir returns the path to the user's custom themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "stylekit", "themes"), nil
}

// LoadFile reads a custom theme definition from a TOML file.
// The theme name defaults to the file name without extension.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}
	if t.Name == "" {
		base := filepath.Base(path)
		t.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	if t.ColorScheme == "" {
		t.ColorScheme = ColorSchemeLight
	}
	if t.ColorScheme != ColorSchemeLight && t.ColorScheme != ColorSchemeDark {
		return Theme{}, fmt.Errorf("%w: theme %s has color_scheme %q", ErrInvalidTheme, t.Name, t.ColorScheme)
	}
	if err := ValidateColors(t.Colors); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", t.Name, err)
	}
	t.Path = path
	return t, nil
}

// LoadDir adds every *.toml theme in dir to the catalog.
// A missing directory is not an error. Returns the number of themes added.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	added := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.Add(t)
		added++
	}
	return added, errors.Join(errs...)
}
