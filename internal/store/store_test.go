package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
	"github.com/samhoang/ccplus/internal/settings"
)

const settingsPath = "/home/user/.claude/settings.json"

func TestReadDocumentMissing(t *testing.T) {
	s := New(afero.NewMemMapFs(), settingsPath)

	doc, err := s.ReadDocument()
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if doc.Env != nil || doc.Permissions != nil || doc.Hooks != nil {
		t.Errorf("ReadDocument() on missing file = %+v, want empty", doc)
	}
}

func TestReadDocumentMalformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, settingsPath, []byte(`{"env": {`), 0644); err != nil {
		t.Fatal(err)
	}
	s := New(fsys, settingsPath)

	_, err := s.ReadDocument()
	if !errors.Is(err, ccperrors.ErrMalformedSettings) {
		t.Fatalf("ReadDocument() error = %v, want ErrMalformedSettings", err)
	}
	var pathErr *ccperrors.PathError
	if !errors.As(err, &pathErr) || pathErr.Op != "parse" || pathErr.Path != settingsPath {
		t.Errorf("error = %#v, want PathError{Op: parse}", err)
	}
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys, settingsPath)

	var written []string
	s.OnWrite = func(path string) { written = append(written, path) }

	doc, _ := settings.SetEnvVar(&settings.Document{}, "SHELL", "/opt/homebrew/bin/bash")
	doc, _ = settings.AddPermission(doc, "Bash(ls:*)")
	if err := s.WriteDocument(doc); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}

	data, err := afero.ReadFile(fsys, settingsPath)
	if err != nil {
		t.Fatalf("settings not written: %v", err)
	}
	want := "{\n  \"env\": {\n    \"SHELL\": \"/opt/homebrew/bin/bash\"\n  },\n  \"permissions\": {\n    \"allow\": [\n      \"Bash(ls:*)\"\n    ]\n  }\n}\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	if ok, _ := afero.Exists(fsys, settingsPath+".tmp"); ok {
		t.Error("temp file left behind")
	}
	if len(written) != 1 || written[0] != settingsPath {
		t.Errorf("OnWrite calls = %v", written)
	}

	loaded, err := s.ReadDocument()
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if !settings.HasPermission(loaded, "Bash(ls:*)") || loaded.Env["SHELL"] != "/opt/homebrew/bin/bash" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestReadText(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys, settingsPath)

	content, ok, err := s.ReadText("/home/user/.zshrc")
	if err != nil || ok || content != "" {
		t.Errorf("ReadText(missing) = %q, %v, %v", content, ok, err)
	}

	_ = afero.WriteFile(fsys, "/home/user/.zshrc", []byte("export A=1\n"), 0644)
	content, ok, err = s.ReadText("/home/user/.zshrc")
	if err != nil || !ok || content != "export A=1\n" {
		t.Errorf("ReadText() = %q, %v, %v", content, ok, err)
	}
}

func TestWriteTextKeepsMode(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/home/user/.bashrc"
	_ = afero.WriteFile(fsys, path, []byte("alias ll='ls -l'\n"), 0600)

	s := New(fsys, settingsPath)
	if err := s.WriteText(path, "alias ll='ls -l'\n\nexport X=1\n"); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteExecutable(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys, settingsPath)
	path := "/home/user/.claude/hooks/hook.sh"

	if err := s.WriteExecutable(path, "#!/usr/bin/env bash\n"); err != nil {
		t.Fatalf("WriteExecutable() error: %v", err)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestDryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/home/user/.zshrc"
	_ = afero.WriteFile(fsys, path, []byte("export A=1\n"), 0644)

	var out bytes.Buffer
	s := New(fsys, settingsPath)
	s.DryRun = true
	s.Out = &out
	s.OnWrite = func(string) { t.Error("OnWrite called in dry run") }

	if err := s.WriteText(path, "export A=1\nexport B=2\n"); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if err := s.WriteDocument(&settings.Document{Env: map[string]string{"SHELL": "/bin/bash"}}); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}

	data, _ := afero.ReadFile(fsys, path)
	if string(data) != "export A=1\n" {
		t.Errorf("dry run modified file: %q", data)
	}
	if ok, _ := afero.Exists(fsys, settingsPath); ok {
		t.Error("dry run created settings.json")
	}

	diff := out.String()
	for _, want := range []string{"--- " + path, "+export B=2", " export A=1", "+++ " + settingsPath, `+    "SHELL": "/bin/bash"`} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestDryRunUnchangedPrintsNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/f", []byte("same\n"), 0644)

	var out bytes.Buffer
	s := New(fsys, settingsPath)
	s.DryRun = true
	s.Out = &out

	if err := s.WriteText("/f", "same\n"); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected diff output: %q", out.String())
	}
}

func TestRemove(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/f", []byte("x"), 0644)
	s := New(fsys, settingsPath)

	if err := s.Remove("/f"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if s.Exists("/f") {
		t.Error("file still exists")
	}
	if err := s.Remove("/f"); err != nil {
		t.Errorf("Remove(missing) error: %v", err)
	}
}

func TestWriteSkipsIdenticalContent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := New(fsys, settingsPath)

	writes := 0
	s.OnWrite = func(string) { writes++ }

	doc := &settings.Document{Env: map[string]string{"SHELL": "/bin/bash"}}
	if err := s.WriteDocument(doc); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteDocument(doc.Clone()); err != nil {
		t.Fatal(err)
	}
	if writes != 1 {
		t.Errorf("writes = %d, want 1", writes)
	}

	path := "/home/user/.claude/hooks/hook.sh"
	_ = afero.WriteFile(fsys, path, []byte("#!/bin/sh\n"), 0644)
	if err := s.WriteExecutable(path, "#!/bin/sh\n"); err != nil {
		t.Fatal(err)
	}
	info, _ := fsys.Stat(path)
	if info.Mode().Perm() != 0755 {
		t.Errorf("identical script with wrong mode not fixed: %v", info.Mode().Perm())
	}
}

func TestWriteTextFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dotfiles", "bashrc")
	link := filepath.Join(dir, ".bashrc")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("# mine\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join("dotfiles", "bashrc"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	var written []string
	s := NewOS(filepath.Join(dir, "settings.json"))
	s.OnWrite = func(path string) { written = append(written, path) }

	if err := s.WriteText(link, "# mine\nalias x=y\n"); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink replaced by a regular file")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# mine\nalias x=y\n" {
		t.Errorf("link target = %q", data)
	}
	if st, _ := os.Stat(target); st.Mode().Perm() != 0600 {
		t.Errorf("target mode = %v, want 0600", st.Mode().Perm())
	}
	if len(written) != 1 || written[0] != link {
		t.Errorf("OnWrite paths = %v, want [%s]", written, link)
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestWriteTextSymlinkLoop(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.Symlink(b, a); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(a, b); err != nil {
		t.Fatal(err)
	}

	s := NewOS(filepath.Join(dir, "settings.json"))
	var pathErr *ccperrors.PathError
	if err := s.WriteText(a, "x\n"); !errors.As(err, &pathErr) {
		t.Errorf("WriteText() error = %v, want PathError", err)
	}
}
