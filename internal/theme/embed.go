package theme

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// catalogTOML contains the bundled daisyUI theme list.
//
//go:embed themes/catalog.toml
var catalogTOML []byte

// DefaultThemeName is the theme daisyUI falls back to when none is flagged.
const DefaultThemeName = "light"

// DefaultDarkTheme is the theme used for prefers-color-scheme: dark.
const DefaultDarkTheme = "dark"

type catalogFile struct {
	Themes []Theme `toml:"theme"`
}

var (
	bundledOnce   sync.Once
	bundledThemes []Theme
	bundledErr    error
)

// BundledThemes returns the embedded daisyUI themes in catalog order.
func BundledThemes() ([]Theme, error) {
	bundledOnce.Do(func() {
		var file catalogFile
		if err := toml.Unmarshal(catalogTOML, &file); err != nil {
			bundledErr = fmt.Errorf("failed to parse bundled theme catalog: %w", err)
			return
		}
		for i := range file.Themes {
			file.Themes[i].IsBundled = true
		}
		bundledThemes = file.Themes
	})
	if bundledErr != nil {
		return nil, bundledErr
	}
	out := make([]Theme, len(bundledThemes))
	copy(out, bundledThemes)
	return out, nil
}

// IsBundledTheme checks if a theme name ships with daisyUI.
func IsBundledTheme(name string) bool {
	themes, err := BundledThemes()
	if err != nil {
		return false
	}
	for _, t := range themes {
		if t.Name == name {
			return true
		}
	}
	return false
}
