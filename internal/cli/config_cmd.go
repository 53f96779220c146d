package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-reader/lectern/internal/config"
	"github.com/lectern-reader/lectern/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the active config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolvePath(configPath)
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", ui.FilePath(path)))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(cfg, nil)
			return nil
		}
		fmt.Printf("library: %s\n", cfg.LibraryPath())
		if len(cfg.Sources) > 0 {
			fmt.Printf("sources: %v\n", cfg.Sources)
		}
		if len(cfg.DefaultVersions) > 0 {
			fmt.Printf("default_versions: %v\n", cfg.DefaultVersions)
		}
		if cfg.MaxTagValues > 0 {
			fmt.Printf("max_tag_values: %d\n", cfg.MaxTagValues)
		}
		if cfg.QueryRate > 0 {
			fmt.Printf("query_rate: %g\n", cfg.QueryRate)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
