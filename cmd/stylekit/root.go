package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/plugin"
	"github.com/jmylchreest/stylekit/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	globalOpts struct {
		verbose    bool
		configPath string
		root       string
	}
	logger *slog.Logger

	// projectRoot is the resolved project directory
	projectRoot string
)

// errIssues signals that a report was printed and the command should fail
// without printing the error again.
var errIssues = errors.New("configuration has errors")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stylekit",
	Short: "Style build configuration tool for Tailwind CSS and daisyUI",
	Long: `stylekit manages the style build configuration of a project.

It loads stylekit.toml (or .yaml/.json), checks content globs, themes and
plugins, and emits the tailwind.config.js consumed by the CSS build.

Running stylekit without a subcommand validates the configuration.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		projectRoot = globalOpts.root
		if projectRoot == "" {
			projectRoot = config.ProjectRoot()
		}
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = abs

		if err := config.LoadDotEnv(projectRoot); err != nil {
			logger.Warn("failed to load .env", "dir", projectRoot, "error", err)
		}

		if globalOpts.configPath == "" {
			globalOpts.configPath = os.Getenv(config.EnvConfig)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: stylekit.{toml,yaml,yml,json} in the project root)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.root, "root", "",
		"Project root directory (default: $STYLEKIT_ROOT or the working directory)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// configPath returns the config file in use, or "" when defaults apply.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.FindConfig(projectRoot)
}

// loadCatalog returns the bundled themes plus the user's custom themes.
func loadCatalog() *theme.Catalog {
	catalog := theme.DefaultCatalog()
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no user config directory", "error", err)
		return catalog
	}
	n, err := catalog.LoadDir(dir)
	if err != nil {
		logger.Warn("failed to load custom themes", "dir", dir, "error", err)
	}
	if n > 0 {
		logger.Debug("loaded custom themes", "dir", dir, "count", n)
	}
	return catalog
}

// loadOptions returns the options used to load the project config.
func loadOptions() config.LoadOptions {
	return config.LoadOptions{
		Root: projectRoot,
		Validate: config.ValidateOptions{
			Catalog:  loadCatalog(),
			Resolver: plugin.NewResolver(projectRoot, logger),
		},
		Logger: logger,
	}
}

// loadConfig loads and validates the project config, failing on fatal issues.
func loadConfig() (*config.Config, error) {
	path := configPath()
	cfg, _, err := config.Load(path, loadOptions())
	if err != nil {
		if path == "" {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}
