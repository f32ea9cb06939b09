package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/adapter/input"
	"github.com/jmylchreest/stylekit/internal/config"
)

var importOpts struct {
	output string
	force  bool
}

var importCmd = &cobra.Command{
	Use:   "import <tailwind.config.json>",
	Short: "Convert a Tailwind JSON config into a stylekit config",
	Long: `Read a JSON Tailwind/daisyUI configuration and save it as a stylekit
config file. The output format follows the output file extension.

Examples:
  stylekit import tailwind.config.json
  stylekit import build/tailwind.config.json -o stylekit.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOpts.output, "output", "o", "",
		"Output config file (default: stylekit.toml in the project root)")
	importCmd.Flags().BoolVar(&importOpts.force, "force", false,
		"Overwrite an existing config file")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	var adapter input.Adapter = input.NewFileAdapter(args[0])
	logger.Debug("importing config", "adapter", adapter.Name(), "source", args[0])

	cfg, err := adapter.Import(ctx)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	opts := loadOptions()
	report := cfg.Validate(opts.Validate)
	for _, issue := range report.Warnings() {
		logger.Warn("imported config warning", "field", issue.Field, "value", issue.Value, "error", issue.Err)
	}
	if err := report.Err(); err != nil {
		return err
	}

	path := importOpts.output
	if path == "" {
		path = filepath.Join(projectRoot, config.ConfigNames[0])
	}
	if !importOpts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
