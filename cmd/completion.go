package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion bash|zsh|fish",
	Short: "Print a shell completion script",
	Long: `Print a completion script for the shells claude-code-plus configures.

  bash:  source <(claude-code-plus completion bash)
  zsh:   claude-code-plus completion zsh > "${fpath[1]}/_claude-code-plus"
  fish:  claude-code-plus completion fish > ~/.config/fish/completions/claude-code-plus.fish`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	default:
		return rootCmd.GenBashCompletionV2(out, true)
	}
}
