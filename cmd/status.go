package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/installer"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show what is already configured",
	Long: `Display the current claude-code-plus configuration.

Shows:
- The shell Claude Code runs commands in (env.SHELL)
- Whether the auto-approve hook is installed and registered
- How many permissions are allowed and how many defaults are missing
- Which shell config files contain the claude wrapper`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	inst, err := newInstaller(cmd.Context(), true)
	if err != nil {
		return err
	}
	report, err := inst.Status(cmd.Context())
	if err != nil {
		return err
	}
	paths := inst.Paths()

	fmt.Println("=== Claude Code Plus Status ===")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	settingsState := "ok"
	if !report.SettingsExists {
		settingsState = "missing"
	}
	fmt.Fprintf(w, "Settings:\t%s\t[%s]\n", paths.Display(report.SettingsPath), settingsState)

	shell := report.Shell
	if shell == "" {
		shell = "not set"
	}
	fmt.Fprintf(w, "Shell:\t%s\n", shell)
	fmt.Fprintf(w, "Hook script:\t%s\t[%s]\n", paths.Display(report.HookScript), yesNo(report.HookInstalled, "installed", "missing"))
	fmt.Fprintf(w, "Hook entry:\t%s\n", yesNo(report.HookRegistered, "registered", "not registered"))
	fmt.Fprintf(w, "Permissions:\t%d allowed, %d defaults missing\n", report.AllowCount, report.MissingDefaults)
	w.Flush()
	fmt.Println()

	fmt.Println("--- Shell aliases ---")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range report.Aliases {
		state := "no file"
		if a.Exists {
			state = yesNo(a.Present, "configured", "missing")
		}
		fmt.Fprintf(w, "  %s\t[%s]\n", paths.Display(a.Path), state)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("--- Health ---")
	issues := statusIssues(report)
	if len(issues) == 0 {
		fmt.Println("  All configured")
		return nil
	}
	for _, issue := range issues {
		fmt.Printf("  ⚠ %s\n", issue)
	}
	fmt.Println()
	fmt.Println("Run 'claude-code-plus' to fix")
	return nil
}

func statusIssues(r *installer.Report) []string {
	var issues []string
	if r.Shell == "" {
		issues = append(issues, "env.SHELL is not set in settings.json")
	}
	if !r.HookInstalled {
		issues = append(issues, "Hook script is not installed")
	}
	if !r.HookRegistered {
		issues = append(issues, "Hook is not registered in settings.json")
	}
	if r.MissingDefaults > 0 {
		issues = append(issues, fmt.Sprintf("%d default permissions are missing", r.MissingDefaults))
	}

	configured := false
	for _, a := range r.Aliases {
		configured = configured || a.Present
	}
	if !configured {
		issues = append(issues, "No shell config file contains the claude wrapper")
	}
	return issues
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
