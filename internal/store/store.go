// Package store persists settings documents and shell files.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
	"github.com/samhoang/ccplus/internal/logging"
	"github.com/samhoang/ccplus/internal/settings"
)

const (
	dirMode  fs.FileMode = 0755
	fileMode fs.FileMode = 0644
	execMode fs.FileMode = 0755

	maxLinks = 40
)

// Store reads and writes installer files. Writes are skipped when the file
// already holds the same bytes; otherwise the target is replaced atomically
// (temp file + rename).
type Store struct {
	fs           afero.Fs
	settingsPath string

	// DryRun prints a diff to Out instead of writing
	DryRun bool

	// Out receives dry-run diffs
	Out io.Writer

	// OnWrite is called with the path of every file actually written
	OnWrite func(path string)
}

// New creates a Store over fsys with the given settings.json location
func New(fsys afero.Fs, settingsPath string) *Store {
	return &Store{fs: fsys, settingsPath: settingsPath, Out: io.Discard}
}

// NewOS creates a Store over the real filesystem
func NewOS(settingsPath string) *Store {
	return New(afero.NewOsFs(), settingsPath)
}

// Fs returns the underlying filesystem
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// SettingsPath returns the settings.json this store reads and writes
func (s *Store) SettingsPath() string {
	return s.settingsPath
}

// Exists reports whether path exists
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// ReadDocument loads settings.json. A missing file yields an empty document.
func (s *Store) ReadDocument() (*settings.Document, error) {
	data, err := afero.ReadFile(s.fs, s.settingsPath)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug().Str("path", s.settingsPath).Msg("settings file absent, starting empty")
		return &settings.Document{}, nil
	}
	if err != nil {
		return nil, ccperrors.NewPathError(s.settingsPath, "read", err)
	}

	doc, err := settings.Parse(data)
	if err != nil {
		return nil, ccperrors.NewPathError(s.settingsPath, "parse",
			fmt.Errorf("%w: %v", ccperrors.ErrMalformedSettings, err))
	}

	logging.Debug().Str("path", s.settingsPath).Int("bytes", len(data)).Msg("read settings")
	return doc, nil
}

// WriteDocument serializes doc to settings.json, creating the directory if needed
func (s *Store) WriteDocument(doc *settings.Document) error {
	data, err := settings.Marshal(doc)
	if err != nil {
		return ccperrors.NewPathError(s.settingsPath, "encode", err)
	}
	return s.write(s.settingsPath, data, fileMode, false)
}

// ReadText reads a text file. ok is false when the file does not exist.
func (s *Store) ReadText(path string) (content string, ok bool, err error) {
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ccperrors.NewPathError(path, "read", err)
	}
	return string(data), true, nil
}

// WriteText replaces a text file, keeping its mode when it already exists
func (s *Store) WriteText(path, content string) error {
	mode := fileMode
	if info, err := s.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return s.write(path, []byte(content), mode, false)
}

// WriteExecutable writes a script with mode 0755
func (s *Store) WriteExecutable(path, content string) error {
	return s.write(path, []byte(content), execMode, true)
}

func (s *Store) write(name string, data []byte, mode fs.FileMode, forceMode bool) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if s.unchanged(path, data, mode, forceMode) {
		logging.Debug().Str("path", path).Msg("file unchanged, skipping write")
		return nil
	}
	if s.DryRun {
		return s.preview(path, data)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return ccperrors.NewPathError(path, "mkdir", err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, mode); err != nil {
		return ccperrors.NewPathError(path, "write", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return ccperrors.NewPathError(path, "rename", err)
	}
	if forceMode {
		if err := s.fs.Chmod(path, mode); err != nil {
			return ccperrors.NewPathError(path, "chmod", err)
		}
	}

	logging.Debug().Str("path", path).Int("bytes", len(data)).Str("mode", mode.String()).Msg("wrote file")
	if s.OnWrite != nil {
		s.OnWrite(name)
	}
	return nil
}

// resolve follows symlinks at path so the rename replaces the link target
// and the link itself survives. Filesystems without symlinks return path.
func (s *Store) resolve(path string) (string, error) {
	lstater, ok := s.fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := s.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for i := 0; i < maxLinks; i++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", ccperrors.NewPathError(path, "lstat", err)
		}
		if !lstatCalled || info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}

		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", ccperrors.NewPathError(path, "readlink", err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		logging.Debug().Str("link", path).Str("target", target).Msg("following symlink")
		path = target
	}
	return "", ccperrors.NewPathError(path, "resolve", errors.New("too many levels of symbolic links"))
}

// unchanged reports whether path already holds data (and mode, when forced)
func (s *Store) unchanged(path string, data []byte, mode fs.FileMode, forceMode bool) bool {
	current, err := afero.ReadFile(s.fs, path)
	if err != nil || !bytes.Equal(current, data) {
		return false
	}
	if !forceMode {
		return true
	}
	info, err := s.fs.Stat(path)
	return err == nil && info.Mode().Perm() == mode
}

func (s *Store) preview(path string, data []byte) error {
	before, _, err := s.ReadText(path)
	if err != nil {
		return err
	}
	diff := UnifiedDiff(path, before, string(data))
	if diff == "" {
		return nil
	}
	_, err = io.WriteString(s.Out, diff)
	return err
}

// Remove deletes path if it exists
func (s *Store) Remove(path string) error {
	if s.DryRun {
		if s.Exists(path) {
			_, err := fmt.Fprintf(s.Out, "--- %s\n+++ /dev/null\n", path)
			return err
		}
		return nil
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ccperrors.NewPathError(path, "remove", err)
	}
	return nil
}
