package config

import (
	"os"
	"path/filepath"
	"strings"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
)

// Paths holds all resolved paths for installer operations
type Paths struct {
	Home       string // user home directory
	ClaudeDir  string // ~/.claude (where Claude Code reads its config)
	WriteDir   string // where settings.json and hooks are written
	ConfigFile string // claude-code-plus config.toml

	// Override is true when ClaudeDir came from CLAUDE_DIR_OVERRIDE
	Override bool
}

// SettingsFileName is the Claude Code settings file inside the claude dir
const SettingsFileName = "settings.json"

// ResolvePaths resolves all paths based on environment and defaults
func ResolvePaths() (*Paths, error) {
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil || home == "" {
			return nil, ccperrors.ErrHomeNotSet
		}
	}

	// Claude config directory (can be overridden for testing)
	claudeDir := os.Getenv("CLAUDE_DIR_OVERRIDE")
	override := claudeDir != ""
	if !override {
		claudeDir = filepath.Join(home, ".claude")
	}

	configFile := os.Getenv("CCPLUS_CONFIG")
	if configFile == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(home, ".config")
		}
		configFile = filepath.Join(configDir, "claude-code-plus", "config.toml")
	}

	return &Paths{
		Home:       home,
		ClaudeDir:  claudeDir,
		WriteDir:   claudeDir,
		ConfigFile: configFile,
		Override:   override,
	}, nil
}

// SettingsPath returns the settings.json the installer writes
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.WriteDir, SettingsFileName)
}

// TargetSettingsPath returns the settings.json Claude Code reads
func (p *Paths) TargetSettingsPath() string {
	return filepath.Join(p.ClaudeDir, SettingsFileName)
}

// HooksDir returns the directory hook scripts are written to
func (p *Paths) HooksDir() string {
	return filepath.Join(p.WriteDir, "hooks")
}

// HookPath returns the file a hook script is written to
func (p *Paths) HookPath(filename string) string {
	return filepath.Join(p.HooksDir(), filename)
}

// HookCommand returns the command registered in settings.json for a hook
// script. It points at the location Claude Code sees, not the chezmoi source.
func (p *Paths) HookCommand(filename string) string {
	return ToPortablePath(filepath.Join(p.ClaudeDir, "hooks", filename), p.Home)
}

// ShellConfigPath returns the absolute path of a home-relative shell config file
func (p *Paths) ShellConfigPath(rel string) string {
	return filepath.Join(p.Home, rel)
}

// Display shortens a path under the home directory to ~/...
func (p *Paths) Display(path string) string {
	if p.Home == "" || !strings.HasPrefix(path, p.Home) {
		return path
	}
	return "~" + strings.TrimPrefix(path, p.Home)
}

// ToPortablePath rewrites a path under home to start with $HOME so the
// registered command survives a change of home directory
func ToPortablePath(path, home string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "$HOME"
	}
	prefix := strings.TrimSuffix(home, string(filepath.Separator)) + string(filepath.Separator)
	if strings.HasPrefix(path, prefix) {
		return "$HOME/" + filepath.ToSlash(strings.TrimPrefix(path, prefix))
	}
	return path
}
