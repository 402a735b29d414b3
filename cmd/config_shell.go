package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/deps"
	"github.com/samhoang/ccplus/internal/shellrc"
)

var configShellPath string

var configShellCmd = &cobra.Command{
	Use:   "shell [bash|zsh|fish]",
	Short: "Output the claude wrapper for a shell config file",
	Long: `Output the claude wrapper function the installer writes into shell config files.

Defaults to the shell in $SHELL. Add the output to your shell config file:

  claude-code-plus config shell >> ~/.zshrc
  source ~/.zshrc

The wrapper starts Claude Code with SHELL pointing at a modern bash. The block
starts with a marker line, so later installs update it in place.`,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runConfigShell,
}

func init() {
	configShellCmd.Flags().StringVar(&configShellPath, "shell-path", "", "Shell Claude Code should use (default: first modern bash found)")
	configCmd.AddCommand(configShellCmd)
}

func runConfigShell(cmd *cobra.Command, args []string) error {
	shell := detectShell()
	if len(args) == 1 {
		shell = args[0]
	}
	dialect := shellrc.DialectFor(shell)

	shellPath := configShellPath
	if shellPath == "" {
		var err error
		shellPath, err = findModernBash(cmd.Context())
		if err != nil {
			return err
		}
	}

	block := dialect.Render(shellPath)
	if err := dialect.Validate(block); err != nil {
		return err
	}

	fmt.Printf("# claude-code-plus shell configuration (%s)\n", filepath.Base(shell))
	fmt.Printf("# Add this to ~/%s\n", dialect.ConfigPaths[0])
	fmt.Println()
	fmt.Print(block)
	return nil
}

func findModernBash(ctx context.Context) (string, error) {
	paths, err := config.ResolvePaths()
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadPlusConfig(paths.ConfigFile)
	if err != nil {
		return "", err
	}
	checker := &deps.Checker{
		Runner:         deps.NewExecRunner(),
		GOOS:           runtime.GOOS,
		MinBash:        cfg.Bash.MinVersion,
		BashCandidates: cfg.BashCandidates(),
	}
	path, _, err := checker.FindModernBash(ctx)
	if err != nil {
		return "", fmt.Errorf("%w (use --shell-path to choose a shell)", err)
	}
	return path, nil
}

func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell != "" {
		return filepath.Base(shell)
	}
	return "bash"
}
