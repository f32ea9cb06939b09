package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/stylekit/internal/config"
)

func TestRenderConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		format string
		want   string
	}{
		{"toml", "[daisyui]"},
		{"yaml", "daisyui:"},
		{"json", `"daisyui": {`},
		{"js", "export default {"},
		{"tailwind-json", `"darkTheme": "dark"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := renderConfig(tt.format, cfg)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}

	_, err := renderConfig("xml", cfg)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestCommands_InitEmit(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvThemes, "")
	t.Setenv(config.EnvPlugins, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootCmd.SetArgs([]string{"--root", root, "init"})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(root, "stylekit.toml"))

	// A second init refuses to overwrite.
	rootCmd.SetArgs([]string{"--root", root, "init"})
	assert.Error(t, rootCmd.Execute())

	out := filepath.Join(root, "build", "tailwind.config.js")
	rootCmd.SetArgs([]string{"--root", root, "emit", "--output", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `import daisyui from "daisyui"`)
	assert.Contains(t, string(data), `"dracula"`)
}

func TestCommands_ValidateFailsOnErrors(t *testing.T) {
	root := t.TempDir()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvThemes, "")
	t.Setenv(config.EnvPlugins, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(root, "stylekit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[daisyui]\nthemes = []\n"), 0644))

	rootCmd.SetArgs([]string{"--root", root, "validate", "--no-scan", "--format", "plain"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errIssues))

	// The bare command validates too.
	rootCmd.SetArgs([]string{"--root", root})
	assert.ErrorIs(t, rootCmd.Execute(), errIssues)

	// A malformed file fails before any report is built.
	require.NoError(t, os.WriteFile(path, []byte("[daisyui\n"), 0644))
	rootCmd.SetArgs([]string{"--root", root, "validate", "--no-scan", "--format", "plain"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.False(t, errors.Is(err, errIssues))
}
