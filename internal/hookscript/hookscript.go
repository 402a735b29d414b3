// Package hookscript installs the auto-approve PreToolUse hook script and
// registers it in settings.json.
package hookscript

import (
	_ "embed"

	"github.com/samhoang/ccplus/internal/config"
	"github.com/samhoang/ccplus/internal/settings"
	"github.com/samhoang/ccplus/internal/store"
)

//go:embed auto-approve-allowed-commands.sh
var script string

// Content returns the hook script
func Content() string {
	return script
}

// Install writes the script to path with mode 0755. Returns false when the
// file already has the same content and is executable.
func Install(s *store.Store, path string) (bool, error) {
	current, ok, err := s.ReadText(path)
	if err != nil {
		return false, err
	}
	if ok && current == script && isExecutable(s, path) {
		return false, nil
	}
	if err := s.WriteExecutable(path, script); err != nil {
		return false, err
	}
	return true, nil
}

func isExecutable(s *store.Store, path string) bool {
	info, err := s.Fs().Stat(path)
	return err == nil && info.Mode().Perm()&0111 != 0
}

// Register adds the hook command to doc under the configured event and
// matcher. Returns doc itself when the command is already registered.
func Register(doc *settings.Document, hs config.HookSettings, command string) (*settings.Document, bool) {
	return settings.AddHook(doc, string(hs.Event), hs.Matcher, []settings.HookEntry{settings.CommandHook(command)})
}

// Registered reports whether command is registered for the configured event
func Registered(doc *settings.Document, hs config.HookSettings, command string) bool {
	return settings.HasHook(doc, string(hs.Event), command)
}
