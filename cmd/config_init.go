package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default config.toml",
	Long: `Generate a default claude-code-plus config.toml.

The file lives at $XDG_CONFIG_HOME/claude-code-plus/config.toml, or wherever
CCPLUS_CONFIG points. It controls:
  - The hook event, matcher and script name
  - The minimum bash version and the paths probed for it
  - Which permission categories are added, plus extra and excluded patterns
  - chezmoi integration

Example config.toml:

  [hook]
  event = "PreToolUse"
  matcher = "Bash"
  filename = "auto-approve-allowed-commands.sh"

  [bash]
  min_version = "4.4"

  [permissions]
  categories = ["files", "git", "github"]
  extra = ["Bash(make test:*)"]

  [chezmoi]
  enabled = true
  auto_apply = false`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !configInitForce {
		fmt.Printf("Config already exists: %s\n", paths.ConfigFile)
		fmt.Println("Edit it directly or use --force to regenerate.")
		return nil
	}

	if err := config.DefaultPlusConfig().Save(paths.ConfigFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Created: %s\n", paths.ConfigFile)
	return nil
}
