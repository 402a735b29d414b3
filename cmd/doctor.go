package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/chezmoi"
	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check required tools",
	Long: `Check the tools the installer and the auto-approve hook rely on.

Checks:
- Is a modern bash (4.4 or newer) installed?
- Are jq and shfmt on PATH?
- Which package manager can install missing tools?
- Does chezmoi manage ~/.claude?`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	cfg, err := config.LoadPlusConfig(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", paths.ConfigFile, err)
	}

	runner := deps.NewExecRunner()
	checker := &deps.Checker{
		Runner:         runner,
		GOOS:           runtime.GOOS,
		MinBash:        cfg.Bash.MinVersion,
		BashCandidates: cfg.BashCandidates(),
	}
	pm, pmErr := deps.DetectPackageManager(runner)

	fmt.Println("=== Claude Code Plus Doctor ===")
	fmt.Println()

	issues := 0
	for _, st := range checker.CheckAll(ctx) {
		fmt.Printf("Checking %s... ", st.Name)
		if !st.Installed {
			fmt.Println("FAIL")
			fmt.Printf("  → Install with: %s\n", deps.InstallHint(pm, runtime.GOOS, st.Package))
			issues++
			continue
		}
		fmt.Printf("OK %s (%s)\n", st.Version, st.Path)
	}

	fmt.Print("Checking package manager... ")
	if pmErr != nil {
		fmt.Println("WARN (none found)")
		fmt.Println("  → Missing tools must be installed manually")
	} else {
		fmt.Printf("OK → %s\n", pm)
	}

	fmt.Print("Checking chezmoi... ")
	cz := chezmoi.New(runner)
	switch {
	case !cz.Available():
		fmt.Println("not installed (optional)")
	case paths.Override:
		fmt.Println("skipped (CLAUDE_DIR_OVERRIDE set)")
	default:
		if source, ok := cz.SourcePath(ctx, paths.ClaudeDir); ok {
			fmt.Printf("OK → manages %s (%s)\n", paths.Display(paths.ClaudeDir), paths.Display(source))
		} else {
			fmt.Printf("OK (%s not managed)\n", paths.Display(paths.ClaudeDir))
		}
	}

	fmt.Println()
	if issues == 0 {
		fmt.Println("All checks passed!")
	} else {
		fmt.Printf("Found %d issue(s)\n", issues)
	}
	return nil
}
