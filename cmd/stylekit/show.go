package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stylekit/internal/config"
	"github.com/jmylchreest/stylekit/internal/emit"
)

var showOpts struct {
	format string
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file and environment
overrides have been applied.

Formats:
  toml, yaml, json   stylekit config formats
  js                 tailwind.config.js as emitted by 'stylekit emit'
  tailwind-json      the tool-native JSON document`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOpts.format, "format", "f", "toml",
		"Output format (toml, yaml, json, js, tailwind-json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := renderConfig(showOpts.format, cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// renderConfig renders cfg in any of the config or emit formats.
func renderConfig(format string, cfg *config.Config) ([]byte, error) {
	switch format {
	case "js":
		return emit.Render(emit.FormatJS, cfg)
	case "tailwind-json":
		return emit.Render(emit.FormatJSON, cfg)
	}
	f, err := config.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return config.Marshal(f, cfg)
}
