package installer

import (
	"context"

	"github.com/samhoang/ccplus/internal/deps"
	ccperrors "github.com/samhoang/ccplus/internal/errors"
)

// CheckDependencies reports bash, jq and shfmt and offers to install the
// missing ones. Returns ErrMissingDependencies when any stay missing.
func (i *Installer) CheckDependencies(ctx context.Context) error {
	statuses := i.checker.CheckAll(ctx)
	i.ShowDependencies(statuses)

	missing := deps.Missing(statuses)
	if len(missing) == 0 {
		return nil
	}

	pm, err := deps.DetectPackageManager(i.runner)
	if err != nil {
		i.out.Blank()
		i.out.Info("No supported package manager found. Please install manually:")
		for _, dep := range missing {
			i.out.Info("  %s: %s", dep.Name, deps.InstallHint("", i.goos, dep.Package))
		}
		return ccperrors.ErrMissingDependencies
	}

	i.out.Blank()
	for _, dep := range missing {
		install, err := i.prompter.Confirm("Install "+dep.Package+"?", true)
		if err != nil {
			return err
		}
		if !install {
			i.out.Info("Skipping %s. Install with: %s", dep.Package, deps.InstallHint(pm, i.goos, dep.Package))
			return ccperrors.ErrMissingDependencies
		}
		if i.dryRun {
			i.out.Info("Would run: %s", i.out.Cmd(deps.InstallHint(pm, i.goos, dep.Package)))
			continue
		}

		i.out.Info("Installing %s with %s...", dep.Package, pm)
		if err := deps.Install(ctx, i.runner, pm, dep.Package); err != nil {
			i.out.Error("Failed to install %s: %v", dep.Package, err)
			return err
		}
		i.out.Success("%s installed successfully", dep.Package)
	}
	return nil
}

// ShowDependencies prints one line per dependency
func (i *Installer) ShowDependencies(statuses []deps.Status) {
	bashMissing := false
	for _, dep := range statuses {
		if dep.Installed {
			i.out.Success("%s %s", dep.Name, dep.Version)
			continue
		}
		i.out.Error("%s not found", dep.Name)
		if dep.Package == "bash" {
			bashMissing = true
		}
	}
	if bashMissing && i.goos == "darwin" {
		i.out.Info("macOS ships with bash 3.2, which is too old")
	}
}
