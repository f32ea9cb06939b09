package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by stylekit.
const (
	EnvConfig  = "STYLEKIT_CONFIG"  // Config file path
	EnvRoot    = "STYLEKIT_ROOT"    // Project root
	EnvThemes  = "STYLEKIT_THEMES"  // Comma-separated themes list override
	EnvPlugins = "STYLEKIT_PLUGINS" // Comma-separated plugins list override
)

// LoadDotEnv loads dir/.env into the process environment. Variables already
// set are not overridden and a missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv overlays list overrides from the environment.
func ApplyEnv(cfg *Config) {
	if v, ok := lookupList(EnvThemes); ok {
		cfg.DaisyUI.Themes = v
	}
	if v, ok := lookupList(EnvPlugins); ok {
		cfg.Plugins = v
	}
}

func lookupList(key string) ([]string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil, false
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, len(out) > 0
}
