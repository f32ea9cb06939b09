package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackage(t *testing.T, root, name, body string) {
	t.Helper()
	dir := filepath.Join(root, "node_modules", filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(body), 0644))
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		pkg      string
		expected string
	}{
		{"daisyui", "daisyui"},
		{"@tailwindcss/typography", "typography"},
		{"@tailwindcss/aspect-ratio", "aspectRatio"},
		{"@tailwindcss/container-queries", "containerQueries"},
		{"tailwind-scrollbar", "tailwindScrollbar"},
		{"@scope/3d-transforms", "_3dTransforms"},
		{"", "plugin"},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			assert.Equal(t, tt.expected, Identifier(tt.pkg))
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := Registry()
	require.NotEmpty(t, reg)
	assert.Equal(t, DaisyUI, reg[0].Name)
	for _, p := range reg {
		assert.True(t, p.Registered)
		assert.NotEmpty(t, p.Identifier)
	}
}

func TestResolve_RegistryOnly(t *testing.T) {
	r := NewResolver("", nil)

	p, err := r.Resolve("daisyui")
	require.NoError(t, err)
	assert.Equal(t, "daisyui", p.Name)
	assert.Equal(t, "daisyui", p.Identifier)
	assert.True(t, p.Registered)
	assert.Empty(t, p.Version)

	_, err = r.Resolve("tailwind-unknown")
	assert.ErrorIs(t, err, ErrUnknownPlugin)
	assert.Contains(t, err.Error(), "tailwind-unknown")

	_, err = r.Resolve("  ")
	assert.ErrorIs(t, err, ErrUnknownPlugin)
}

func TestResolve_RootWithoutNodeModules(t *testing.T) {
	r := NewResolver(t.TempDir(), nil)
	assert.Empty(t, r.NodeModules())

	_, err := r.Resolve("@tailwindcss/forms")
	require.NoError(t, err)
}

func TestResolve_NodeModules(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "daisyui", `{"name": "daisyui", "version": "4.12.10"}`)
	writePackage(t, root, "tailwind-scrollbar", `{"name": "tailwind-scrollbar", "version": "3.1.0", "description": "Scrollbar styles"}`)

	r := NewResolver(root, nil)
	assert.Equal(t, filepath.Join(root, "node_modules"), r.NodeModules())

	p, err := r.Resolve("daisyui")
	require.NoError(t, err)
	assert.Equal(t, "4.12.10", p.Version)
	assert.Equal(t, filepath.Join(root, "node_modules", "daisyui"), p.Path)

	// Unregistered but installed resolves
	p, err = r.Resolve("tailwind-scrollbar")
	require.NoError(t, err)
	assert.False(t, p.Registered)
	assert.Equal(t, "3.1.0", p.Version)
	assert.Equal(t, "Scrollbar styles", p.Description)
	assert.Equal(t, "tailwindScrollbar", p.Identifier)

	// Registered but missing fails
	_, err = r.Resolve("@tailwindcss/typography")
	assert.ErrorIs(t, err, ErrNotInstalled)

	// Neither registered nor installed
	_, err = r.Resolve("nope")
	assert.ErrorIs(t, err, ErrUnknownPlugin)
}

func TestResolve_ScopedPackage(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "@tailwindcss/typography", `{"name": "@tailwindcss/typography", "version": "0.5.15"}`)

	p, err := NewResolver(root, nil).Resolve("@tailwindcss/typography")
	require.NoError(t, err)
	assert.Equal(t, "0.5.15", p.Version)
	assert.Equal(t, "typography", p.Identifier)
}

func TestResolve_InvalidPackageJSON(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "daisyui", `{not json`)

	_, err := NewResolver(root, nil).Resolve("daisyui")
	assert.Error(t, err)
}

func TestResolveAll(t *testing.T) {
	r := NewResolver("", nil)
	plugins, err := r.ResolveAll([]string{"daisyui", "missing-one", "@tailwindcss/forms"})
	assert.ErrorIs(t, err, ErrUnknownPlugin)
	require.Len(t, plugins, 2)
	assert.Equal(t, "daisyui", plugins[0].Name)
	assert.Equal(t, "@tailwindcss/forms", plugins[1].Name)
}
