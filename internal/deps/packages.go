package deps

import (
	"context"
	"strings"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
)

// PackageManager identifies a supported system package manager
type PackageManager string

const (
	Brew   PackageManager = "brew"
	Apt    PackageManager = "apt"
	Dnf    PackageManager = "dnf"
	Pacman PackageManager = "pacman"
	Apk    PackageManager = "apk"
)

// PackageManagers returns supported managers in detection order
func PackageManagers() []PackageManager {
	return []PackageManager{Brew, Apt, Dnf, Pacman, Apk}
}

// DetectPackageManager returns the first supported manager on PATH
func DetectPackageManager(r Runner) (PackageManager, error) {
	for _, pm := range PackageManagers() {
		if _, err := r.LookPath(string(pm)); err == nil {
			return pm, nil
		}
	}
	return "", ccperrors.ErrNoPackageManager
}

// InstallCommand returns the argv that installs pkg
func (pm PackageManager) InstallCommand(pkg string) []string {
	switch pm {
	case Brew:
		return []string{"brew", "install", pkg}
	case Apt:
		return []string{"sudo", "apt", "install", "-y", pkg}
	case Dnf:
		return []string{"sudo", "dnf", "install", "-y", pkg}
	case Pacman:
		return []string{"sudo", "pacman", "-S", "--noconfirm", pkg}
	case Apk:
		return []string{"sudo", "apk", "add", pkg}
	default:
		return nil
	}
}

// InstallHint returns a command line the user can run to install pkg.
// pm may be empty when no manager was detected.
func InstallHint(pm PackageManager, goos, pkg string) string {
	if argv := pm.InstallCommand(pkg); argv != nil {
		return strings.Join(argv, " ")
	}
	if goos == "darwin" {
		return "brew install " + pkg
	}
	return "apt install " + pkg + "  OR  dnf install " + pkg + "  OR  pacman -S " + pkg
}

// Install runs the install command for pkg
func Install(ctx context.Context, r Runner, pm PackageManager, pkg string) error {
	argv := pm.InstallCommand(pkg)
	if argv == nil {
		return ccperrors.NewDependencyError(pkg, "install", ccperrors.ErrNoPackageManager)
	}
	if err := r.Run(ctx, argv[0], argv[1:]...); err != nil {
		return ccperrors.NewDependencyError(pkg, "install", err)
	}
	return nil
}
