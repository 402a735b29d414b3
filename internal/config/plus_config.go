package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// PlusConfig represents the claude-code-plus config.toml file
type PlusConfig struct {
	// Hook registration for the auto-approve script
	Hook HookSettings `toml:"hook"`

	// Bash requirements for the shell Claude Code runs commands in
	Bash BashConfig `toml:"bash"`

	// Permissions applied by the permissions step
	Permissions PermissionsConfig `toml:"permissions"`

	// Chezmoi integration
	Chezmoi ChezmoiConfig `toml:"chezmoi"`
}

// BashConfig holds bash discovery settings
type BashConfig struct {
	// Minimum acceptable version as "major.minor"
	MinVersion string `toml:"min_version"`

	// Paths probed in order; empty means the platform defaults
	Candidates []string `toml:"candidates,omitempty"`
}

// PermissionsConfig selects which allow patterns are added
type PermissionsConfig struct {
	// Catalogue categories to include; empty means all
	Categories []string `toml:"categories,omitempty"`

	// Patterns added on top of the catalogue
	Extra []string `toml:"extra,omitempty"`

	// Catalogue patterns never added
	Exclude []string `toml:"exclude,omitempty"`
}

// ChezmoiConfig holds chezmoi integration settings
type ChezmoiConfig struct {
	// Write to chezmoi source files when ~/.claude or shell files are managed
	Enabled bool `toml:"enabled"`

	// Run chezmoi apply without asking
	AutoApply bool `toml:"auto_apply"`
}

// DefaultPlusConfig returns default configuration
func DefaultPlusConfig() *PlusConfig {
	return &PlusConfig{
		Hook: DefaultHookSettings(),
		Bash: BashConfig{
			MinVersion: "4.4",
		},
		Chezmoi: ChezmoiConfig{
			Enabled: true,
		},
	}
}

// BashCandidates returns the configured candidates or the platform defaults.
// macOS ships bash 3.2 at /bin/bash, so Homebrew paths are probed first there.
func (c *PlusConfig) BashCandidates() []string {
	if len(c.Bash.Candidates) > 0 {
		return c.Bash.Candidates
	}
	return DefaultBashCandidates(runtime.GOOS)
}

// DefaultBashCandidates returns the bash paths probed on goos
func DefaultBashCandidates(goos string) []string {
	if goos == "darwin" {
		return []string{"/opt/homebrew/bin/bash", "/usr/local/bin/bash", "/bin/bash"}
	}
	return []string{"/bin/bash", "/usr/bin/bash", "/usr/local/bin/bash"}
}

// LoadPlusConfig loads config.toml, returning defaults when it does not exist
func LoadPlusConfig(path string) (*PlusConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPlusConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultPlusConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes config.toml to disk
func (c *PlusConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
