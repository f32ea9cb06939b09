package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/emit"
)

var emitOpts struct {
	format string
	output string
	stdout bool
}

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Generate tailwind.config.js from the configuration",
	Long: `Validate the configuration and write the file consumed by the CSS build.

Examples:
  # Write tailwind.config.js in the project root
  stylekit emit

  # Write the JSON document instead
  stylekit emit --format json -o build/tailwind.config.json

  # Print to stdout
  stylekit emit --stdout`,
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVarP(&emitOpts.format, "format", "f", string(emit.FormatJS),
		"Output format (js, json)")
	emitCmd.Flags().StringVarP(&emitOpts.output, "output", "o", "",
		"Output file (default: tailwind.config.<format> in the project root)")
	emitCmd.Flags().BoolVar(&emitOpts.stdout, "stdout", false,
		"Write to stdout instead of a file")
}

func runEmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := emit.Format(emitOpts.format)
	data, err := emit.Render(format, cfg)
	if err != nil {
		return err
	}

	if emitOpts.stdout {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := emitOpts.output
	if path == "" {
		path = filepath.Join(projectRoot, emit.DefaultFileName(format))
	}
	if err := emit.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("emitted config", "path", path, "format", format, "bytes", len(data))
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
