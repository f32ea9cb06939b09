// Package plugin resolves the plugin references listed in a style configuration.
//
// A reference is an npm package name. It resolves when the package is either
// registered in the built-in registry or installed under the project's
// node_modules directory. When node_modules exists it is authoritative.
package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnknownPlugin is returned for references that resolve nowhere.
	ErrUnknownPlugin = errors.New("unknown plugin")
	// ErrNotInstalled is returned when a registered plugin is missing from node_modules.
	ErrNotInstalled = errors.New("plugin not installed")
)

// DaisyUI is the component-theming plugin that owns the themes list.
const DaisyUI = "daisyui"

// Plugin describes a resolved plugin reference.
type Plugin struct {
	Name        string // npm package name
	Identifier  string // JS import identifier
	Description string
	Version     string // Installed version, empty when not read from node_modules
	Path        string // Package directory, empty when not installed locally
	Registered  bool   // True if the plugin is in the built-in registry
}

// Registered plugins.
var registry = []Plugin{
	{Name: DaisyUI, Description: "Component classes and themes"},
	{Name: "@tailwindcss/typography", Description: "Prose styles for rendered markup"},
	{Name: "@tailwindcss/forms", Description: "Form element resets"},
	{Name: "@tailwindcss/aspect-ratio", Description: "Aspect ratio utilities"},
	{Name: "@tailwindcss/container-queries", Description: "Container query variants"},
}

// Registry returns the built-in plugin registry.
func Registry() []Plugin {
	out := make([]Plugin, len(registry))
	for i, p := range registry {
		p.Identifier = Identifier(p.Name)
		p.Registered = true
		out[i] = p
	}
	return out
}

// Identifier derives a JS import identifier from a package name:
// the last path segment in lowerCamelCase, e.g. "@tailwindcss/aspect-ratio" -> "aspectRatio".
func Identifier(pkg string) string {
	name := pkg
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	var sb strings.Builder
	upper := false
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = sb.Len() > 0
			continue
		}
		if sb.Len() == 0 && unicode.IsDigit(r) {
			sb.WriteRune('_')
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "plugin"
	}
	return sb.String()
}

// Resolver resolves plugin references for a project root.
type Resolver struct {
	root   string
	known  map[string]Plugin
	logger *slog.Logger
}

// NewResolver creates a resolver for the project at root.
// An empty root disables node_modules lookups.
func NewResolver(root string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[string]Plugin)
	for _, p := range Registry() {
		known[p.Name] = p
	}
	return &Resolver{root: root, known: known, logger: logger}
}

// NodeModules returns the node_modules directory, or "" if it does not exist.
func (r *Resolver) NodeModules() string {
	if r.root == "" {
		return ""
	}
	dir := filepath.Join(r.root, "node_modules")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// Resolve resolves a single plugin reference.
func (r *Resolver) Resolve(ref string) (Plugin, error) {
	name := strings.TrimSpace(ref)
	if name == "" {
		return Plugin{}, fmt.Errorf("%w: empty reference", ErrUnknownPlugin)
	}

	p, registered := r.known[name]
	if !registered {
		p = Plugin{Name: name, Identifier: Identifier(name)}
	}

	nodeModules := r.NodeModules()
	if nodeModules == "" {
		if !registered {
			return Plugin{}, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		r.logger.Debug("no node_modules, resolved from registry", "plugin", name)
		return p, nil
	}

	dir := filepath.Join(nodeModules, filepath.FromSlash(name))
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		if !os.IsNotExist(err) {
			return Plugin{}, fmt.Errorf("failed to read package.json for %q: %w", name, err)
		}
		if registered {
			return Plugin{}, fmt.Errorf("%w: %q not found in %s", ErrNotInstalled, name, nodeModules)
		}
		return Plugin{}, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}

	if !gjson.ValidBytes(data) {
		return Plugin{}, fmt.Errorf("invalid package.json for %q", name)
	}
	pkg := gjson.ParseBytes(data)
	if declared := pkg.Get("name").String(); declared != "" && declared != name {
		r.logger.Warn("package name mismatch", "plugin", name, "declared", declared)
	}
	p.Version = pkg.Get("version").String()
	p.Path = dir
	if p.Description == "" {
		p.Description = pkg.Get("description").String()
	}

	r.logger.Debug("resolved plugin", "plugin", name, "version", p.Version, "path", dir)
	return p, nil
}

// ResolveAll resolves every reference, returning resolved plugins and a
// joined error for the failures.
func (r *Resolver) ResolveAll(refs []string) ([]Plugin, error) {
	var (
		out  []Plugin
		errs []error
	)
	for _, ref := range refs {
		p, err := r.Resolve(ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}
