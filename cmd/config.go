package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
	Long:  `Manage the claude-code-plus config.toml and print shell integration snippets.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
