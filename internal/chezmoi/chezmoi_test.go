package chezmoi

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samhoang/ccplus/internal/config"
)

type fakeRunner struct {
	installed bool
	sources   map[string]string
	runs      [][]string
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if name != "chezmoi" || len(args) != 2 || args[0] != "source-path" {
		return "", errors.New("unexpected command")
	}
	if src, ok := f.sources[args[1]]; ok {
		return src + "\n", nil
	}
	return "", errors.New("not managed")
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.runs = append(f.runs, append([]string{name}, args...))
	return nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.installed && name == "chezmoi" {
		return "/usr/bin/chezmoi", nil
	}
	return "", errors.New("not found")
}

func TestSourcePath(t *testing.T) {
	r := &fakeRunner{installed: true, sources: map[string]string{
		"/home/user/.zshrc": "/home/user/.local/share/chezmoi/dot_zshrc",
	}}
	c := New(r)

	src, ok := c.SourcePath(context.Background(), "/home/user/.zshrc")
	if !ok || src != "/home/user/.local/share/chezmoi/dot_zshrc" {
		t.Errorf("SourcePath() = %q, %v", src, ok)
	}
	if c.Manages(context.Background(), "/home/user/.bashrc") {
		t.Error("Manages() = true for unmanaged file")
	}

	r.installed = false
	if _, ok := c.SourcePath(context.Background(), "/home/user/.zshrc"); ok {
		t.Error("SourcePath() ok without chezmoi installed")
	}
}

func TestResolveWriteDir(t *testing.T) {
	r := &fakeRunner{installed: true, sources: map[string]string{
		"/home/user/.claude": "/home/user/.local/share/chezmoi/dot_claude",
	}}
	c := New(r)

	paths := &config.Paths{Home: "/home/user", ClaudeDir: "/home/user/.claude", WriteDir: "/home/user/.claude"}
	if !c.ResolveWriteDir(context.Background(), paths) {
		t.Fatal("ResolveWriteDir() = false for managed dir")
	}
	if paths.WriteDir != "/home/user/.local/share/chezmoi/dot_claude" {
		t.Errorf("WriteDir = %q", paths.WriteDir)
	}
	if paths.ClaudeDir != "/home/user/.claude" {
		t.Errorf("ClaudeDir changed to %q", paths.ClaudeDir)
	}

	override := &config.Paths{ClaudeDir: "/home/user/.claude", WriteDir: "/home/user/.claude", Override: true}
	if c.ResolveWriteDir(context.Background(), override) || override.WriteDir != "/home/user/.claude" {
		t.Error("ResolveWriteDir() must not redirect an override dir")
	}
}

func TestApply(t *testing.T) {
	r := &fakeRunner{installed: true}
	if err := New(r).Apply(context.Background(), "/home/user/.claude", "/home/user/.zshrc"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"chezmoi", "apply", "/home/user/.claude", "/home/user/.zshrc"}}
	if !reflect.DeepEqual(r.runs, want) {
		t.Errorf("runs = %v, want %v", r.runs, want)
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	if tr.HasModifications() {
		t.Error("new tracker has modifications")
	}

	tr.Watch("/src/dot_claude", "/home/user/.claude")
	tr.Watch("/src/dot_zshrc", "/home/user/.zshrc")

	tr.Observe("/src/dot_claude/settings.json")
	tr.Observe("/src/dot_claude/hooks/hook.sh")
	tr.Observe("/src/dot_zshrc")
	tr.Observe("/src/dot_claude_other/file")
	tr.Observe("/home/user/.bashrc")

	want := []string{"/home/user/.claude", "/home/user/.zshrc"}
	if got := tr.Files(); !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
	if !tr.HasModifications() {
		t.Error("HasModifications() = false")
	}

	tr.Track("/tmp/test-file.json")
	if got := strings.Join(tr.Files(), ","); !strings.HasSuffix(got, "/tmp/test-file.json") {
		t.Errorf("Track() not recorded: %v", got)
	}
}
