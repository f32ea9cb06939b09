package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/core"
	"github.com/jmylchreest/stylekit/internal/theme"
)

var themesOpts struct {
	enabled bool
	scheme  string
	source  string
	search  string
	limit   int

	sortBy    string
	sortOrder string
}

var themesCmd = &cobra.Command{
	Use:   "themes [index|name]",
	Short: "List available themes",
	Long: `List the bundled daisyUI themes and custom themes from
$XDG_CONFIG_HOME/stylekit/themes and the config file.

Themes enabled in the configuration are marked with *, the default theme
with (default) and the dark theme with (dark).

With an index (1-based, after filtering) or name argument, prints that
theme's color tokens.

Examples:
  # Dark themes, alphabetically
  stylekit themes --scheme dark --sort name

  # Only themes listed in the config
  stylekit themes --enabled

  # Show a theme's colors
  stylekit themes brand`,
	Args: cobra.MaximumNArgs(1),
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVar(&themesOpts.enabled, "enabled", false,
		"Only list themes enabled in the configuration")
	themesCmd.Flags().StringVar(&themesOpts.scheme, "scheme", "",
		"Filter by color scheme (light, dark)")
	themesCmd.Flags().StringVar(&themesOpts.source, "source", "",
		"Filter by source (bundled, custom)")
	themesCmd.Flags().StringVarP(&themesOpts.search, "search", "s", "",
		"Search theme names")
	themesCmd.Flags().IntVarP(&themesOpts.limit, "limit", "n", 0,
		"Maximum number of themes to show (0=unlimited)")
	themesCmd.Flags().StringVar(&themesOpts.sortBy, "sort", "catalog",
		"Sort by field (catalog, name, scheme)")
	themesCmd.Flags().StringVar(&themesOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")
}

func runThemes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog := loadCatalog()
	for name, colors := range cfg.DaisyUI.Custom {
		t, ok := catalog.Lookup(name)
		if !ok {
			t = theme.Theme{Name: name, ColorScheme: theme.ColorSchemeLight}
		}
		t.Colors = colors
		t.IsBundled = false
		t.Path = "config"
		catalog.Add(t)
	}

	entries, err := cfg.ThemeEntries()
	if err != nil {
		return err
	}
	enabled := make(map[string]bool, len(entries))
	for _, e := range entries {
		enabled[e.Name] = true
	}
	sel, err := cfg.ThemeSelection()
	if err != nil {
		return err
	}

	opts := core.FilterOptions{
		Search: themesOpts.search,
		Limit:  themesOpts.limit,
	}
	if opts.Scheme, err = core.ParseColorScheme(themesOpts.scheme); err != nil {
		return err
	}
	if opts.Source, err = core.ParseSource(themesOpts.source); err != nil {
		return err
	}
	if themesOpts.enabled {
		opts.Enabled = enabled
	}

	sortOpts := core.DefaultSortOptions()
	sortOpts.Field, _ = core.ParseSortField(themesOpts.sortBy)
	sortOpts.Order, _ = core.ParseSortOrder(themesOpts.sortOrder)

	themes := catalog.Themes()
	core.Sort(themes, sortOpts)
	themes = core.Filter(themes, opts)

	if len(args) > 0 {
		return printTheme(themes, args[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, t := range themes {
		mark := " "
		if enabled[t.Name] {
			mark = "*"
		}
		source := "bundled"
		if !t.IsBundled {
			source = t.Path
		}
		var role string
		switch t.Name {
		case sel.Default:
			role = "(default)"
		case sel.Dark:
			role = "(dark)"
		}
		fmt.Fprintf(w, "%3d %s %s\t%s\t%s\t%s\n", i+1, mark, t.Name, t.ColorScheme, source, role)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := core.Schemes(themes)
	fmt.Fprintf(os.Stderr, "%d themes (%d light, %d dark)\n", len(themes),
		counts[theme.ColorSchemeLight], counts[theme.ColorSchemeDark])
	return nil
}

// printTheme prints the color tokens of the theme at a 1-based index or name.
func printTheme(themes []theme.Theme, arg string) error {
	var found *theme.Theme
	if idx, err := strconv.Atoi(arg); err == nil && idx > 0 {
		found = core.LookupByIndex(themes, idx)
	} else {
		found = core.LookupByName(themes, arg)
	}
	if found == nil {
		return fmt.Errorf("%w: %s", theme.ErrUnknownTheme, arg)
	}

	fmt.Printf("name: %s\ncolor_scheme: %s\n", found.Name, found.ColorScheme)
	if len(found.Colors) == 0 {
		fmt.Println("colors: (daisyUI built-in)")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, token := range theme.ColorTokens {
		if v, ok := found.Colors[token]; ok {
			fmt.Fprintf(w, "  %s\t%s\n", token, v)
		}
	}
	return w.Flush()
}
