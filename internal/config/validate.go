package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jmylchreest/stylekit/internal/plugin"
	"github.com/jmylchreest/stylekit/internal/scan"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// ExtensionPoints lists the framework theme keys accepted under theme.extend.
var ExtensionPoints = []string{
	"accentColor", "animation", "aria", "aspectRatio", "backdropBlur",
	"backdropBrightness", "backdropContrast", "backdropGrayscale",
	"backdropHueRotate", "backdropInvert", "backdropOpacity",
	"backdropSaturate", "backdropSepia", "backgroundColor",
	"backgroundImage", "backgroundOpacity", "backgroundPosition",
	"backgroundSize", "blur", "borderColor", "borderOpacity", "borderRadius",
	"borderSpacing", "borderWidth", "boxShadow", "boxShadowColor",
	"brightness", "caretColor", "colors", "columns", "container", "content",
	"contrast", "cursor", "divideColor", "divideOpacity", "divideWidth",
	"dropShadow", "fill", "flex", "flexBasis", "flexGrow", "flexShrink",
	"fontFamily", "fontSize", "fontWeight", "gap", "gradientColorStops",
	"gradientColorStopPositions", "grayscale", "gridAutoColumns",
	"gridAutoRows", "gridColumn", "gridColumnEnd", "gridColumnStart",
	"gridRow", "gridRowEnd", "gridRowStart", "gridTemplateColumns",
	"gridTemplateRows", "height", "hueRotate", "inset", "invert", "keyframes",
	"letterSpacing", "lineClamp", "lineHeight", "listStyleImage",
	"listStyleType", "margin", "maxHeight", "maxWidth", "minHeight",
	"minWidth", "objectPosition", "opacity", "order", "outlineColor",
	"outlineOffset", "outlineWidth", "padding", "placeholderColor",
	"placeholderOpacity", "ringColor", "ringOffsetColor", "ringOffsetWidth",
	"ringOpacity", "ringWidth", "rotate", "saturate", "scale", "screens",
	"scrollMargin", "scrollPadding", "sepia", "size", "skew", "space",
	"spacing", "stroke", "strokeWidth", "supports", "data", "textColor",
	"textDecorationColor", "textDecorationThickness", "textIndent",
	"textOpacity", "textUnderlineOffset", "transformOrigin",
	"transitionDelay", "transitionDuration", "transitionProperty",
	"transitionTimingFunction", "translate", "width", "willChange", "zIndex",
	"typography",
}

var extensionPoints = func() map[string]bool {
	m := make(map[string]bool, len(ExtensionPoints))
	for _, k := range ExtensionPoints {
		m[k] = true
	}
	return m
}()

// IsExtensionPoint reports whether key may appear under theme.extend.
func IsExtensionPoint(key string) bool {
	return extensionPoints[key]
}

// ValidateOptions supplies the theme catalog and plugin resolver.
type ValidateOptions struct {
	Catalog  *theme.Catalog   // Defaults to theme.DefaultCatalog()
	Resolver *plugin.Resolver // Defaults to a registry-only resolver
}

// Validate checks the configuration and returns every issue found.
func (c *Config) Validate(opts ValidateOptions) *Report {
	if opts.Catalog == nil {
		opts.Catalog = theme.DefaultCatalog()
	}
	if opts.Resolver == nil {
		opts.Resolver = plugin.NewResolver("", nil)
	}

	r := &Report{}
	c.validateContent(r)
	c.validateExtend(r)
	c.validateThemes(r, opts.Catalog)
	c.validatePlugins(r, opts.Resolver)
	return r
}

func (c *Config) validateContent(r *Report) {
	if len(c.Content) == 0 {
		r.Add(SeverityWarning, "content", "", ErrNoContent)
		return
	}
	for i, pattern := range c.Content {
		if err := scan.ValidatePattern(pattern); err != nil {
			r.Add(SeverityError, fmt.Sprintf("content[%d]", i), pattern, fmt.Errorf("%w: %v", ErrInvalidGlob, err))
		}
	}
}

func (c *Config) validateExtend(r *Report) {
	keys := make([]string, 0, len(c.Theme.Extend))
	for k := range c.Theme.Extend {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !IsExtensionPoint(k) {
			r.Add(SeverityError, "theme.extend", k, ErrUnknownExtension)
		}
	}
}

func (c *Config) validateThemes(r *Report, catalog *theme.Catalog) {
	names := make([]string, 0, len(c.DaisyUI.Custom))
	for name := range c.DaisyUI.Custom {
		names = append(names, name)
	}
	sort.Strings(names)

	custom := make(map[string]bool, len(names))
	for _, name := range names {
		field := "daisyui.custom." + name
		if err := theme.ValidateColors(c.DaisyUI.Custom[name]); err != nil {
			r.Add(SeverityError, field, name, err)
			continue
		}
		if t, ok := catalog.Lookup(name); ok && t.IsBundled {
			r.Add(SeverityWarning, field, name, ErrThemeOverridden)
		}
		custom[name] = true
	}

	if len(c.DaisyUI.Themes) == 0 {
		r.Add(SeverityError, "daisyui.themes", "", ErrNoThemes)
		return
	}

	var entries []theme.Entry
	seen := make(map[string]bool)
	for i, raw := range c.DaisyUI.Themes {
		field := fmt.Sprintf("daisyui.themes[%d]", i)
		e, err := theme.ParseEntry(raw)
		if err != nil {
			r.Add(SeverityError, field, raw, err)
			continue
		}
		if seen[e.Name] {
			r.Add(SeverityError, field, e.Name, ErrDuplicateTheme)
			continue
		}
		seen[e.Name] = true
		if _, ok := catalog.Lookup(e.Name); !ok && !custom[e.Name] {
			r.Add(SeverityError, field, e.Name, ErrUnknownTheme)
		}
		entries = append(entries, e)
	}

	if _, err := theme.Select(entries, c.DaisyUI.DarkTheme); err != nil {
		r.Add(SeverityError, "daisyui.themes", "", err)
	}
	if c.DaisyUI.DarkTheme != "" && !seen[c.DaisyUI.DarkTheme] {
		r.Add(SeverityWarning, "daisyui.dark_theme", c.DaisyUI.DarkTheme, ErrDarkThemeUnlisted)
	}
	for _, name := range names {
		if custom[name] && !seen[name] {
			r.Add(SeverityWarning, "daisyui.custom."+name, name, ErrUnusedCustomTheme)
		}
	}

	if !c.HasPlugin(plugin.DaisyUI) {
		r.Add(SeverityError, "plugins", plugin.DaisyUI, fmt.Errorf("%w: themes are configured", ErrPluginRequired))
	}
}

func (c *Config) validatePlugins(r *Report, resolver *plugin.Resolver) {
	seen := make(map[string]bool)
	for i, ref := range c.Plugins {
		field := fmt.Sprintf("plugins[%d]", i)
		if seen[ref] {
			r.Add(SeverityError, field, ref, ErrDuplicatePlugin)
			continue
		}
		seen[ref] = true
		if _, err := resolver.Resolve(ref); err != nil {
			r.Add(SeverityError, field, ref, unwrapResolve(err))
		}
	}
}

// unwrapResolve keeps the resolver's message while guaranteeing the sentinel
// is reachable.
func unwrapResolve(err error) error {
	if errors.Is(err, ErrUnknownPlugin) || errors.Is(err, ErrPluginNotInstalled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnknownPlugin, err)
}

// CheckScan adds a warning for every include pattern that matched no files.
func CheckScan(r *Report, res *scan.Result) {
	if res == nil {
		return
	}
	for i, pr := range res.Patterns {
		field := fmt.Sprintf("content[%d]", i)
		switch {
		case pr.Err != nil:
			r.Add(SeverityError, field, pr.Pattern, fmt.Errorf("%w: %v", ErrInvalidGlob, pr.Err))
		case !pr.Exclude && pr.Empty():
			r.Add(SeverityWarning, field, pr.Pattern, ErrEmptyPattern)
		}
	}
}
