// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-reader/lectern/internal/config"
	"github.com/lectern-reader/lectern/internal/ui"
)

var (
	// Global flags
	configPath  string
	libraryFlag string
	sourcesFlag []string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Lectern - cite books, read passages",
	Long: `Lectern resolves compact book citations like "romans 3:16-18 (kjv)" into
the passages they name. Passages live as addressable events in a local
library and on remote sources; retrieval is cache-first and tolerant of
sources that have not caught up yet.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without configuration.
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}

		if libraryFlag != "" {
			cfg.Library = libraryFlag
		}
		if len(sourcesFlag) > 0 {
			cfg.Sources = sourcesFlag
		}

		if cfg.UI.Accent != "" {
			ui.ConfigureTheme(cfg.UI.Accent)
		}
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&libraryFlag, "library", "", "path to the passage library")
	rootCmd.PersistentFlags().StringSliceVar(&sourcesFlag, "source", nil, "restrict retrieval to named sources")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
}
