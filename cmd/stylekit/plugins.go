package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/plugin"
)

var pluginsOpts struct {
	registry bool
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Show how configured plugins resolve",
	Long: `Resolve every plugin in the configuration and print its JS import
identifier, installed version and location.

When the project has a node_modules directory, plugins must be installed
there. Otherwise only the built-in registry is consulted.`,
	RunE: runPlugins,
}

func init() {
	rootCmd.AddCommand(pluginsCmd)

	pluginsCmd.Flags().BoolVar(&pluginsOpts.registry, "registry", false,
		"List the built-in plugin registry instead")
}

func runPlugins(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if pluginsOpts.registry {
		for _, p := range plugin.Registry() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Identifier, p.Description)
		}
		return w.Flush()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resolver := plugin.NewResolver(projectRoot, logger)
	plugins, err := resolver.ResolveAll(cfg.Plugins)
	if err != nil {
		return err
	}

	if resolver.NodeModules() == "" {
		logger.Debug("no node_modules, resolved against registry", "root", projectRoot)
	}
	for _, p := range plugins {
		v := p.Version
		if v == "" {
			v = "-"
		}
		location := p.Path
		if location == "" {
			location = "registry"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Identifier, v, location)
	}
	return w.Flush()
}
