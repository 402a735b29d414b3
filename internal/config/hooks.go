package config

// HookType represents the type of hook event
type HookType string

const (
	HookSessionStart     HookType = "SessionStart"
	HookUserPromptSubmit HookType = "UserPromptSubmit"
	HookPreToolUse       HookType = "PreToolUse"
	HookPostToolUse      HookType = "PostToolUse"
	HookStop             HookType = "Stop"
	HookSubagentStop     HookType = "SubagentStop"
)

// AllHookTypes returns all valid hook types
func AllHookTypes() []HookType {
	return []HookType{
		HookSessionStart,
		HookUserPromptSubmit,
		HookPreToolUse,
		HookPostToolUse,
		HookStop,
		HookSubagentStop,
	}
}

// IsValid reports whether t is a known hook event
func (t HookType) IsValid() bool {
	for _, known := range AllHookTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// HookSettings configures the auto-approve hook registration
type HookSettings struct {
	// Event is the hook event the script is registered for
	Event HookType `toml:"event"`

	// Matcher selects the tool the hook runs for
	Matcher string `toml:"matcher"`

	// Filename is the script name inside the hooks directory
	Filename string `toml:"filename"`
}

// DefaultHookSettings returns the registration used by the recommended install
func DefaultHookSettings() HookSettings {
	return HookSettings{
		Event:    HookPreToolUse,
		Matcher:  "Bash",
		Filename: "auto-approve-allowed-commands.sh",
	}
}
