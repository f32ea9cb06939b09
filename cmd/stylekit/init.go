package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/config"
)

var initOpts struct {
	format string
	force  bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write stylekit.<format> with the default content globs, themes and
plugins to the project root.

An existing file is not overwritten unless --force is given.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOpts.format, "format", "f", "toml",
		"Config file format (toml, yaml, json)")
	initCmd.Flags().BoolVar(&initOpts.force, "force", false,
		"Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	format, err := config.ParseFormat(initOpts.format)
	if err != nil {
		return err
	}

	path := globalOpts.configPath
	if path == "" {
		path = filepath.Join(projectRoot, "stylekit."+string(format))
	}

	if !initOpts.force {
		if existing := config.FindConfig(filepath.Dir(path)); existing != "" {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", existing)
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
