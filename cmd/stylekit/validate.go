package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/adapter/output"
	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/scan"
)

var validateOpts struct {
	format      string
	noScan      bool
	files       bool
	quiet       bool
	concurrency int
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and report issues",
	Long: `Load the configuration, validate every field and expand the content
globs against the project root.

Fatal issues (malformed file, unknown theme or plugin, invalid glob) make the
command exit non-zero. Globs that match no files are reported as warnings.

Examples:
  # Validate the config in the current directory
  stylekit validate

  # Machine readable report for CI
  stylekit validate --format json

  # Show every matched file
  stylekit validate --files`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOpts.format, "format", "f", "styled",
		"Output format (plain, styled, json)")
	validateCmd.Flags().BoolVar(&validateOpts.noScan, "no-scan", false,
		"Skip expanding content globs")
	validateCmd.Flags().BoolVar(&validateOpts.files, "files", false,
		"List the files matched by each content pattern")
	validateCmd.Flags().BoolVarP(&validateOpts.quiet, "quiet", "q", false,
		"Only report errors")
	validateCmd.Flags().IntVar(&validateOpts.concurrency, "concurrency", scan.DefaultConcurrency,
		"Number of patterns expanded in parallel")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	summary, err := buildSummary(ctx, !validateOpts.noScan)
	if err != nil {
		return err
	}

	opts := output.FormatterOptions{
		ShowFiles:    validateOpts.files,
		ShowWarnings: !validateOpts.quiet,
	}
	formatter := output.NewFormatter(output.FormatType(validateOpts.format), opts)
	if err := formatter.Format(os.Stdout, summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !summary.OK() {
		return errIssues
	}
	return nil
}

// buildSummary decodes and validates the config without failing on
// validation issues, so they can all be reported.
func buildSummary(ctx context.Context, withScan bool) (*output.Summary, error) {
	path := configPath()
	cfg, err := config.Decode(path)
	if err != nil {
		return nil, err
	}

	opts := loadOptions()
	report := cfg.Validate(opts.Validate)
	summary := &output.Summary{
		ConfigPath: path,
		Config:     cfg,
		Report:     report,
	}
	if sel, err := cfg.ThemeSelection(); err == nil {
		summary.Selection = sel
	}

	if withScan && len(cfg.Content) > 0 {
		scanner := scan.New(projectRoot, logger)
		scanner.SetConcurrency(validateOpts.concurrency)
		res, err := scanner.Scan(ctx, cfg.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		config.CheckScan(report, res)
		summary.Scan = res
	}

	return summary, nil
}
