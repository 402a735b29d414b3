package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/deps"
	"github.com/samhoang/ccplus/internal/installer"
	"github.com/samhoang/ccplus/internal/logging"
	"github.com/samhoang/ccplus/internal/picker"
	"github.com/samhoang/ccplus/internal/ui"
)

var Version = "dev"

var (
	flagYes    bool
	flagDryRun bool
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "claude-code-plus",
	Short: "Configure Claude Code to run commands in modern bash",
	Long: `claude-code-plus sets up Claude Code to run shell commands in a modern bash,
installs a hook that auto-approves piped commands whose parts are all allowed,
and pre-approves a catalogue of safe commands.

Run without a subcommand to start the installer. Unrelated settings.json keys
and the rest of your shell config files are left alone, so it is safe to re-run.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(flagDebug, os.Stderr)
	},
	RunE: runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	nonInteractive := flagYes
	if !nonInteractive && !isTerminal() {
		ui.New(os.Stdout).Info("No TTY detected, running in non-interactive mode (recommended settings)")
		nonInteractive = true
	}

	inst, err := newInstaller(cmd.Context(), nonInteractive)
	if err != nil {
		return err
	}
	return inst.Run(cmd.Context())
}

// isTerminal reports whether stdin can drive the interactive prompts
func isTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newInstaller wires an installer to the real filesystem, PATH and terminal
func newInstaller(ctx context.Context, nonInteractive bool) (*installer.Installer, error) {
	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadPlusConfig(paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", paths.ConfigFile, err)
	}

	return installer.New(ctx, installer.Options{
		Paths:          paths,
		Config:         cfg,
		Runner:         deps.NewExecRunner(),
		Prompter:       terminalPrompter{},
		Out:            os.Stdout,
		GOOS:           runtime.GOOS,
		UserShell:      os.Getenv("SHELL"),
		NonInteractive: nonInteractive,
		DryRun:         flagDryRun,
	}), nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, picker.ErrAborted) {
		ui.New(os.Stdout).Info("Cancelled")
		return
	}
	ui.New(os.Stderr).Error("%v", err)
	stop()
	os.Exit(1)
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Show changes as diffs without writing files")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Install recommended settings without prompting")
}
