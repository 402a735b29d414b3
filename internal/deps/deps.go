// Package deps checks and installs the programs the installer relies on:
// a modern bash, jq and shfmt.
package deps

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
)

const bashVersionScript = `echo "${BASH_VERSINFO[0]}.${BASH_VERSINFO[1]}"`

// Status describes one dependency
type Status struct {
	Name      string // display name, e.g. "bash (>= 4.4)"
	Package   string // package to install
	Installed bool
	Version   string
	Path      string
}

// Checker locates dependencies
type Checker struct {
	Runner         Runner
	GOOS           string
	MinBash        string
	BashCandidates []string
}

// BashVersion returns "major.minor" reported by the bash at path
func (c *Checker) BashVersion(ctx context.Context, path string) (string, error) {
	out, err := c.Runner.Output(ctx, path, "-c", bashVersionScript)
	if err != nil {
		return "", err
	}
	return out, nil
}

// FindModernBash returns the first candidate whose version is at least MinBash
func (c *Checker) FindModernBash(ctx context.Context) (path, version string, err error) {
	for _, candidate := range c.BashCandidates {
		v, err := c.BashVersion(ctx, candidate)
		if err != nil {
			continue
		}
		if VersionAtLeast(v, c.MinBash) {
			return candidate, v, nil
		}
	}
	return "", "", ccperrors.ErrModernBashNotFound
}

// VersionAtLeast compares dotted versions such as "5.2" and "4.4".
// Unparseable versions never satisfy the minimum.
func VersionAtLeast(version, minimum string) bool {
	v, m := canonical(version), canonical(minimum)
	if v == "" || m == "" {
		return false
	}
	return semver.Compare(v, m) >= 0
}

func canonical(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	return version
}

// ToolVersion returns the first line of "name --version" with common
// prefixes such as "jq-" removed
func (c *Checker) ToolVersion(ctx context.Context, name string) string {
	out, err := c.Runner.Output(ctx, name, "--version")
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(out, "\n")
	return strings.TrimPrefix(strings.TrimSpace(line), name+"-")
}

// CheckAll reports bash, jq and shfmt in that order
func (c *Checker) CheckAll(ctx context.Context) []Status {
	bash := Status{Name: fmt.Sprintf("bash (>= %s)", c.MinBash), Package: "bash"}
	if path, version, err := c.FindModernBash(ctx); err == nil {
		bash.Installed, bash.Version, bash.Path = true, version, path
	}

	statuses := []Status{bash}
	for _, tool := range []string{"jq", "shfmt"} {
		st := Status{Name: tool, Package: tool}
		if path, err := c.Runner.LookPath(tool); err == nil {
			st.Installed, st.Path = true, path
			st.Version = c.ToolVersion(ctx, tool)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Missing returns the statuses that are not installed
func Missing(statuses []Status) []Status {
	var out []Status
	for _, st := range statuses {
		if !st.Installed {
			out = append(out, st)
		}
	}
	return out
}

// ResolveShell turns a shell name or path into an executable path
func (c *Checker) ResolveShell(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ccperrors.ErrShellNotFound
	}
	path, err := c.Runner.LookPath(input)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ccperrors.ErrShellNotFound, input)
	}
	return path, nil
}
