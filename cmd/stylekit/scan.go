package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/scan"
)

var scanOpts struct {
	json        bool
	concurrency int
}

var scanCmd = &cobra.Command{
	Use:   "scan [pattern...]",
	Short: "List the files matched by the content globs",
	Long: `Expand content globs against the project root and print the matched files.

Without arguments the patterns from the configuration are used. Patterns
prefixed with ! exclude files matched by the other patterns.

Examples:
  # Files the CSS build will scan
  stylekit scan

  # Try a pattern before adding it
  stylekit scan 'ui/**/*.templ' '!ui/**/*_test.templ'`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanOpts.json, "json", false,
		"Output the scan result as JSON")
	scanCmd.Flags().IntVar(&scanOpts.concurrency, "concurrency", scan.DefaultConcurrency,
		"Number of patterns expanded in parallel")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	patterns := args
	if len(patterns) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		patterns = cfg.Content
	}
	for _, p := range patterns {
		if err := scan.ValidatePattern(p); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	scanner := scan.New(projectRoot, logger)
	scanner.SetConcurrency(scanOpts.concurrency)
	res, err := scanner.Scan(ctx, patterns)
	if err != nil {
		return err
	}

	if scanOpts.json {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Root  string   `json:"root"`
			Files []string `json:"files"`
			Bytes int64    `json:"bytes"`
			Empty []string `json:"empty_patterns,omitempty"`
		}{res.Root, res.Files, res.Bytes, res.EmptyPatterns()})
	}

	for _, f := range res.Files {
		fmt.Println(f)
	}
	fmt.Fprintf(os.Stderr, "%d files, %s\n", len(res.Files), humanize.Bytes(uint64(res.Bytes)))
	return nil
}
