package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/emit"
	"github.com/jmylchreest/stylekit/internal/theme"
	"github.com/jmylchreest/stylekit/internal/watch"
)

var watchOpts struct {
	emit   bool
	format string
	output string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate the configuration whenever it changes",
	Long: `Watch the config file and revalidate it on every save. Custom theme
files in $XDG_CONFIG_HOME/stylekit/themes are watched too; the directory must
exist when the watch starts.

With --emit, tailwind.config.js is regenerated after each valid change, so a
running CSS build picks up the new themes and globs.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOpts.emit, "emit", false,
		"Regenerate the output file after each valid change")
	watchCmd.Flags().StringVarP(&watchOpts.format, "format", "f", string(emit.FormatJS),
		"Emit format (js, json)")
	watchCmd.Flags().StringVarP(&watchOpts.output, "output", "o", "",
		"Emit output file (default: tailwind.config.<format> in the project root)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := configPath()
	if path == "" {
		return fmt.Errorf("no config file found in %s (run 'stylekit init')", projectRoot)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is rebuilt on every load so edits to user theme files apply.
	load := func(p string) (*config.Config, error) {
		cfg, _, err := config.Load(p, loadOptions())
		return cfg, err
	}

	w := watch.New(path, load, logger)
	if dir, err := theme.ThemesDir(); err == nil {
		w.WatchDir(dir, "*.toml")
	}
	w.SetChangeCallback(handleSnapshot)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Stop()

	handleSnapshot(w.Current())
	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", path)

	<-ctx.Done()
	return nil
}

// handleSnapshot reports a reload and optionally re-emits.
func handleSnapshot(s watch.Snapshot) {
	if s.Err != nil {
		fmt.Fprintf(os.Stderr, "[%s] invalid: %v\n", s.LoadedAt.Format("15:04:05"), s.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] ok (%s)\n", s.LoadedAt.Format("15:04:05"), s.ID)

	if !watchOpts.emit {
		return
	}
	format := emit.Format(watchOpts.format)
	data, err := emit.Render(format, s.Config)
	if err != nil {
		logger.Error("failed to render config", "error", err)
		return
	}
	out := watchOpts.output
	if out == "" {
		out = filepath.Join(projectRoot, emit.DefaultFileName(format))
	}
	if err := emit.WriteFile(out, data); err != nil {
		logger.Error("failed to write config", "path", out, "error", err)
		return
	}
	logger.Info("emitted config", "path", out, "snapshot", s.ID.String())
}
