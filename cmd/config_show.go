package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration claude-code-plus runs with: config.toml merged over
the defaults. Also shows where settings.json is written.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	cfg, err := config.LoadPlusConfig(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", paths.ConfigFile, err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("# config file: %s\n", paths.ConfigFile)
	fmt.Printf("# claude dir:  %s\n", paths.ClaudeDir)
	fmt.Println()
	fmt.Print(string(data))
	return nil
}
