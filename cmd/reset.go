package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/picker"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the claude wrapper from shell config files",
	Long: `Remove the generated claude wrapper block from every shell config file.

Only the marker-delimited block is removed; the rest of each file is left
untouched. settings.json, the hook script and permissions are kept, so edit
~/.claude/settings.json to remove those.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !resetForce {
		if !isTerminal() {
			return fmt.Errorf("no TTY to confirm; re-run with --force")
		}
		ok, err := picker.RunConfirm("Remove the claude wrapper from your shell config files?", false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	inst, err := newInstaller(ctx, resetForce)
	if err != nil {
		return err
	}
	removed, err := inst.RemoveAliases(ctx)
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	if len(removed) == 0 {
		fmt.Println("No shell config file contains the claude wrapper")
		return nil
	}
	for _, path := range removed {
		fmt.Printf("Removed claude wrapper from %s\n", inst.Paths().Display(path))
	}

	if err := inst.ApplyChezmoi(ctx); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Reset complete! Open a new terminal to pick up the change.")
	return nil
}
