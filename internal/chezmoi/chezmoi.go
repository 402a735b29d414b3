// Package chezmoi redirects installer writes to chezmoi source files when the
// user's dotfiles are managed by chezmoi.
package chezmoi

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/deps"
	"github.com/samhoang/ccplus/internal/logging"
)

const binary = "chezmoi"

// ExecutablePrefix marks a source file whose target is executable
const ExecutablePrefix = "executable_"

// Client wraps the chezmoi CLI
type Client struct {
	Runner deps.Runner
}

// New creates a Client
func New(r deps.Runner) *Client {
	return &Client{Runner: r}
}

// Available reports whether chezmoi is on PATH
func (c *Client) Available() bool {
	_, err := c.Runner.LookPath(binary)
	return err == nil
}

// SourcePath returns the chezmoi source file for target. ok is false when
// chezmoi is missing or does not manage target.
func (c *Client) SourcePath(ctx context.Context, target string) (string, bool) {
	if !c.Available() {
		return "", false
	}
	out, err := c.Runner.Output(ctx, binary, "source-path", target)
	if err != nil || strings.TrimSpace(out) == "" {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// Manages reports whether chezmoi manages target
func (c *Client) Manages(ctx context.Context, target string) bool {
	_, ok := c.SourcePath(ctx, target)
	return ok
}

// Apply runs chezmoi apply for the given targets
func (c *Client) Apply(ctx context.Context, targets ...string) error {
	args := append([]string{"apply"}, targets...)
	return c.Runner.Run(ctx, binary, args...)
}

// ResolveWriteDir points paths.WriteDir at the chezmoi source of the claude
// directory when chezmoi manages it. CLAUDE_DIR_OVERRIDE disables the lookup.
func (c *Client) ResolveWriteDir(ctx context.Context, paths *config.Paths) bool {
	if paths.Override {
		return false
	}
	source, ok := c.SourcePath(ctx, paths.ClaudeDir)
	if !ok {
		return false
	}
	logging.Debug().Str("target", paths.ClaudeDir).Str("source", source).Msg("claude dir managed by chezmoi")
	paths.WriteDir = source
	return true
}

// Tracker records chezmoi targets whose source files were modified
type Tracker struct {
	targets []string
	roots   map[string]string // source path or dir -> target
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{roots: make(map[string]string)}
}

// Watch maps writes at or below source to target
func (t *Tracker) Watch(source, target string) {
	t.roots[filepath.Clean(source)] = target
}

// Observe records the target for a written path. It is meant to be used as a
// store OnWrite callback.
func (t *Tracker) Observe(path string) {
	path = filepath.Clean(path)
	for source, target := range t.roots {
		if path == source || strings.HasPrefix(path, source+string(filepath.Separator)) {
			t.Track(target)
			return
		}
	}
}

// Track records target as modified
func (t *Tracker) Track(target string) {
	if !slices.Contains(t.targets, target) {
		t.targets = append(t.targets, target)
	}
}

// Files returns tracked targets in the order they were first modified
func (t *Tracker) Files() []string {
	return slices.Clone(t.targets)
}

// HasModifications reports whether any target was tracked
func (t *Tracker) HasModifications() bool {
	return len(t.targets) > 0
}
