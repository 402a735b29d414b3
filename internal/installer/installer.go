// Package installer runs the claude-code-plus installation flow: dependency
// checks, shell configuration, hook installation and permissions.
package installer

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/samhoang/ccplus/internal/chezmoi"
	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/deps"
	"github.com/samhoang/ccplus/internal/logging"
	"github.com/samhoang/ccplus/internal/permissions"
	"github.com/samhoang/ccplus/internal/shellrc"
	"github.com/samhoang/ccplus/internal/store"
	"github.com/samhoang/ccplus/internal/ui"
)

// Options configures an Installer
type Options struct {
	Paths    *config.Paths
	Config   *config.PlusConfig
	Fs       afero.Fs
	Runner   deps.Runner
	Prompter Prompter
	Out      io.Writer

	// GOOS selects bash candidates and install hints
	GOOS string

	// UserShell is the login shell ($SHELL), used for the source hint
	UserShell string

	// NonInteractive accepts every default without prompting
	NonInteractive bool

	// DryRun prints diffs instead of writing files
	DryRun bool
}

// Installer applies configuration changes
type Installer struct {
	paths    *config.Paths
	cfg      *config.PlusConfig
	store    *store.Store
	checker  *deps.Checker
	runner   deps.Runner
	chezmoi  *chezmoi.Client
	tracker  *chezmoi.Tracker
	prompter Prompter
	out      *ui.Printer

	goos           string
	userShell      string
	nonInteractive bool
	dryRun         bool

	// claudeManaged is true when WriteDir is a chezmoi source directory
	claudeManaged bool
}

// New creates an Installer. When chezmoi manages the claude directory,
// opts.Paths.WriteDir is redirected to its source directory.
func New(ctx context.Context, opts Options) *Installer {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultPlusConfig()
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	prompter := opts.Prompter
	if prompter == nil || opts.NonInteractive {
		prompter = AutoPrompter{}
	}

	candidates := cfg.Bash.Candidates
	if len(candidates) == 0 {
		candidates = config.DefaultBashCandidates(opts.GOOS)
	}

	inst := &Installer{
		paths:   opts.Paths,
		cfg:     cfg,
		runner:  opts.Runner,
		chezmoi: chezmoi.New(opts.Runner),
		tracker: chezmoi.NewTracker(),
		checker: &deps.Checker{
			Runner:         opts.Runner,
			GOOS:           opts.GOOS,
			MinBash:        cfg.Bash.MinVersion,
			BashCandidates: candidates,
		},
		prompter:       prompter,
		out:            ui.New(out),
		goos:           opts.GOOS,
		userShell:      opts.UserShell,
		nonInteractive: opts.NonInteractive,
		dryRun:         opts.DryRun,
	}

	if cfg.Chezmoi.Enabled && inst.chezmoi.ResolveWriteDir(ctx, opts.Paths) {
		inst.claudeManaged = true
		inst.tracker.Watch(opts.Paths.WriteDir, opts.Paths.ClaudeDir)
	}

	inst.store = store.New(fsys, opts.Paths.SettingsPath())
	inst.store.DryRun = opts.DryRun
	inst.store.Out = out
	inst.store.OnWrite = inst.tracker.Observe

	return inst
}

// Paths returns the resolved paths, with WriteDir redirected when chezmoi
// manages the claude directory
func (i *Installer) Paths() *config.Paths {
	return i.paths
}

// Store returns the store the installer writes through
func (i *Installer) Store() *store.Store {
	return i.store
}

// Tracker returns the chezmoi modification tracker
func (i *Installer) Tracker() *chezmoi.Tracker {
	return i.tracker
}

// Checker returns the dependency checker
func (i *Installer) Checker() *deps.Checker {
	return i.checker
}

// Run executes the full installation flow
func (i *Installer) Run(ctx context.Context) error {
	if i.claudeManaged {
		i.out.Info("Detected chezmoi managing %s", i.out.File(i.paths.Display(i.paths.ClaudeDir)))
		i.out.Info("Installing to: %s", i.out.File(i.paths.Display(i.paths.WriteDir)))
	}

	i.out.Banner()

	i.out.Step("Checking dependencies")
	if err := i.CheckDependencies(ctx); err != nil {
		i.out.Error("Missing required dependencies. See install hints above.")
		return err
	}

	bashPath, _, err := i.checker.FindModernBash(ctx)
	if err != nil {
		pm, _ := deps.DetectPackageManager(i.runner)
		i.out.Error("Modern bash (%s+) not found", i.cfg.Bash.MinVersion)
		i.out.Info("Install with: %s", i.out.Cmd(deps.InstallHint(pm, i.goos, "bash")))
		return err
	}

	mode, err := i.prompter.SelectMode()
	if err != nil {
		return err
	}
	logging.Debug().Str("mode", string(mode)).Str("bash", bashPath).Msg("starting install")

	if mode == ModeCustom {
		err = i.runCustom(ctx, bashPath)
	} else {
		err = i.runRecommended(ctx, bashPath)
	}
	if err != nil {
		return err
	}

	i.out.Completion()
	i.out.Success("Claude Code Plus is now configured!")
	i.out.Blank()
	settingsFile := i.out.File(i.paths.Display(i.paths.SettingsPath()))
	i.out.Info("Settings file: %s", settingsFile)

	if err := i.applyChezmoi(ctx); err != nil {
		return err
	}

	i.out.Blank()
	i.out.Info("Open a new terminal or run %s, then run %s to start.",
		i.out.Cmd(shellrc.SourceCommand(i.userShell)), i.out.Cmd("claude"))
	i.out.Blank()
	i.out.Info("Review %s to remove any permissions you don't want auto-approved.", settingsFile)
	return nil
}

func (i *Installer) runRecommended(ctx context.Context, bashPath string) error {
	i.out.Info("Installing with recommended settings...")
	i.out.Blank()

	if err := i.Shell(ctx, bashPath); err != nil {
		return err
	}
	if err := i.Hook(ctx); err != nil {
		return err
	}
	return i.Permissions(ctx, nil)
}

func (i *Installer) runCustom(ctx context.Context, bashPath string) error {
	i.out.Info("Custom installation...")
	i.out.Blank()

	useBash, err := i.prompter.Confirm("Use modern bash (recommended for Claude Code)?", true)
	if err != nil {
		return err
	}
	if useBash {
		if err := i.Shell(ctx, bashPath); err != nil {
			return err
		}
	} else if err := i.customShell(ctx); err != nil {
		return err
	}

	hook, err := i.prompter.Confirm("Auto-approve piped commands that match allowed patterns?", true)
	if err != nil {
		return err
	}
	if hook {
		if err := i.Hook(ctx); err != nil {
			return err
		}
	} else {
		i.out.Info("Skipping hook installation")
	}

	perms, err := i.prompter.Confirm("Pre-approve common safe commands (ls, git status, grep, etc.)?", true)
	if err != nil {
		return err
	}
	if !perms {
		i.out.Info("Skipping permissions")
		return nil
	}

	catalogue, err := permissions.Load()
	if err != nil {
		return err
	}
	categories, err := i.prompter.SelectCategories(catalogue.Categories)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		i.out.Info("No categories selected, skipping permissions")
		return nil
	}
	return i.Permissions(ctx, categories)
}

func (i *Installer) customShell(ctx context.Context) error {
	i.out.Info("Enter shell name or path (e.g., %s, %s)", i.out.Cmd("fish"), i.out.File("/opt/homebrew/bin/zsh"))
	input, err := i.prompter.Input("Shell:", "")
	if err != nil {
		return err
	}
	if input == "" {
		i.out.Info("Skipping shell configuration")
		return nil
	}

	shellPath, err := i.checker.ResolveShell(input)
	if err != nil {
		i.out.Error("Could not find shell: %s", input)
		i.out.Info("Skipping shell configuration")
		return nil
	}
	return i.Shell(ctx, shellPath)
}

func (i *Installer) applyChezmoi(ctx context.Context) error {
	if i.paths.Override || i.dryRun || !i.tracker.HasModifications() {
		return nil
	}

	i.out.Blank()
	targets := i.tracker.Files()
	display := make([]string, len(targets))
	for n, t := range targets {
		display[n] = i.paths.Display(t)
	}
	applyCmd := "chezmoi apply " + strings.Join(display, " ")

	apply := i.nonInteractive || i.cfg.Chezmoi.AutoApply
	if !apply {
		var err error
		apply, err = i.prompter.Confirm("Run "+applyCmd+" now?", true)
		if err != nil {
			return err
		}
	}
	if !apply {
		i.out.Warn("Remember to run %s before using Claude Code", i.out.Cmd(applyCmd))
		return nil
	}

	if err := i.chezmoi.Apply(ctx, targets...); err != nil {
		i.out.Error("Failed to apply chezmoi changes: %v", err)
		return nil
	}
	i.out.Success("Chezmoi applied")
	return nil
}
