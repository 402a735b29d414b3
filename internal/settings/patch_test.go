package settings

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	return doc
}

func mustMarshal(t *testing.T, doc *Document) string {
	t.Helper()
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	return string(data)
}

func TestSetEnvVar(t *testing.T) {
	doc := mustParse(t, `{"env":{"FIRST":"first-value"},"model":"opus"}`)
	before := mustMarshal(t, doc)

	next, changed := SetEnvVar(doc, "SHELL", "/bin/bash")
	if !changed {
		t.Error("SetEnvVar() changed = false, want true")
	}
	if next == doc {
		t.Error("SetEnvVar() returned the input document")
	}
	if next.Env["SHELL"] != "/bin/bash" || next.Env["FIRST"] != "first-value" {
		t.Errorf("Env = %v", next.Env)
	}
	if string(next.Extra["model"]) != `"opus"` {
		t.Errorf("model = %s, want preserved", next.Extra["model"])
	}
	if got := mustMarshal(t, doc); got != before {
		t.Errorf("input mutated:\n%s\nwant:\n%s", got, before)
	}
}

func TestSetEnvVarOverwritesAndReportsChange(t *testing.T) {
	doc := mustParse(t, `{"env":{"SHELL":"/bin/zsh"}}`)

	next, changed := SetEnvVar(doc, "SHELL", "/bin/zsh")
	if !changed {
		t.Error("SetEnvVar() with same value should still report a change")
	}
	next, _ = SetEnvVar(next, "SHELL", "/bin/bash")
	if next.Env["SHELL"] != "/bin/bash" {
		t.Errorf("SHELL = %q, want /bin/bash", next.Env["SHELL"])
	}
}

func TestAddPermission(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		pattern   string
		wantAdded bool
		want      string
	}{
		{
			name:      "empty document",
			input:     `{}`,
			pattern:   "Bash(ls:*)",
			wantAdded: true,
			want:      `{"permissions":{"allow":["Bash(ls:*)"]}}`,
		},
		{
			name:      "permissions without allow",
			input:     `{"permissions":{"deny":["Read(../)"]}}`,
			pattern:   "Bash(ls:*)",
			wantAdded: true,
			want:      `{"permissions":{"allow":["Bash(ls:*)"],"deny":["Read(../)"]}}`,
		},
		{
			name:      "empty allow",
			input:     `{"permissions":{"allow":[]}}`,
			pattern:   "Bash(ls:*)",
			wantAdded: true,
			want:      `{"permissions":{"allow":["Bash(ls:*)"]}}`,
		},
		{
			name:      "appends after existing",
			input:     `{"permissions":{"allow":["Bash(cat:*)"]}}`,
			pattern:   "Bash(ls:*)",
			wantAdded: true,
			want:      `{"permissions":{"allow":["Bash(cat:*)","Bash(ls:*)"]}}`,
		},
		{
			name:      "already present",
			input:     `{"permissions":{"allow":["Bash(ls:*)"]}}`,
			pattern:   "Bash(ls:*)",
			wantAdded: false,
			want:      `{"permissions":{"allow":["Bash(ls:*)"]}}`,
		},
		{
			name:      "keeps unknown permission keys",
			input:     `{"permissions":{"defaultMode":"acceptEdits","ask":["Bash(git push:*)"]}}`,
			pattern:   "Bash(ls:*)",
			wantAdded: true,
			want:      `{"permissions":{"allow":["Bash(ls:*)"],"ask":["Bash(git push:*)"],"defaultMode":"acceptEdits"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			next, added := AddPermission(doc, tt.pattern)
			if added != tt.wantAdded {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
			if !added && next != doc {
				t.Error("no-op AddPermission() returned a new document")
			}
			if got := compact(t, next); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAddPermissionIsIdempotent(t *testing.T) {
	doc := mustParse(t, `{"env":{"A":"1"}}`)

	once, added := AddPermission(doc, "Bash(ls:*)")
	if !added {
		t.Fatal("first AddPermission() added = false")
	}
	twice, added := AddPermission(once, "Bash(ls:*)")
	if added {
		t.Error("second AddPermission() added = true")
	}
	if twice != once {
		t.Error("second AddPermission() returned a new document")
	}
	if mustMarshal(t, once) != mustMarshal(t, twice) {
		t.Error("documents differ after repeated AddPermission()")
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"no permissions", `{}`, false},
		{"null permissions", `{"permissions":null}`, false},
		{"no allow", `{"permissions":{"deny":["Bash(ls:*)"]}}`, false},
		{"present", `{"permissions":{"allow":["Bash(ls:*)"]}}`, true},
		{"other pattern", `{"permissions":{"allow":["Bash(cat:*)"]}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(mustParse(t, tt.input), "Bash(ls:*)"); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}

	if HasPermission(nil, "Bash(ls:*)") {
		t.Error("HasPermission(nil) = true")
	}
}

func TestAddPermissions(t *testing.T) {
	doc := mustParse(t, `{"permissions":{"allow":["Bash(ls:*)"]}}`)

	next, added := AddPermissions(doc, []string{"Bash(ls:*)", "Bash(cat:*)"})
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	want := `{"permissions":{"allow":["Bash(ls:*)","Bash(cat:*)"]}}`
	if got := compact(t, next); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if len(doc.Permissions.Allow) != 1 {
		t.Errorf("input allow mutated: %v", doc.Permissions.Allow)
	}
}

func TestAddPermissionsCollapsesRepeats(t *testing.T) {
	next, added := AddPermissions(&Document{}, []string{"Bash(ls:*)", "Bash(ls:*)", "Grep"})
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	got := next.Permissions.Allow
	if len(got) != 2 || got[0] != "Bash(ls:*)" || got[1] != "Grep" {
		t.Errorf("allow = %v", got)
	}
}

func TestAddPermissionsNoOpKeepsIdentity(t *testing.T) {
	doc := mustParse(t, `{"permissions":{"allow":["Bash(ls:*)","Grep"]}}`)

	tests := []struct {
		name     string
		patterns []string
	}{
		{"empty batch", nil},
		{"subset already present", []string{"Grep", "Bash(ls:*)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, added := AddPermissions(doc, tt.patterns)
			if added != 0 {
				t.Errorf("added = %d, want 0", added)
			}
			if next != doc {
				t.Error("AddPermissions() returned a new document")
			}
		})
	}
}

func TestAddPermissionsMatchesSequentialAdds(t *testing.T) {
	doc := mustParse(t, `{"permissions":{"deny":["Bash(rm:*)"]},"theme":"dark"}`)

	batch, _ := AddPermissions(doc, []string{"Bash(ls:*)", "Bash(cat:*)"})
	seq, _ := AddPermission(doc, "Bash(ls:*)")
	seq, _ = AddPermission(seq, "Bash(cat:*)")

	if mustMarshal(t, batch) != mustMarshal(t, seq) {
		t.Errorf("batch:\n%s\nsequential:\n%s", mustMarshal(t, batch), mustMarshal(t, seq))
	}
}

func TestAddHook(t *testing.T) {
	hook := CommandHook("a.sh")

	tests := []struct {
		name        string
		input       string
		matcher     string
		entries     []HookEntry
		wantChanged bool
		want        string
	}{
		{
			name:        "empty document",
			input:       `{}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "hooks without event",
			input:       `{"hooks":{"Stop":[{"hooks":[{"command":"done.sh","type":"command"}]}]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}],"Stop":[{"hooks":[{"command":"done.sh","type":"command"}]}]}}`,
		},
		{
			name:        "empty event list",
			input:       `{"hooks":{"PreToolUse":[]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "other matcher only",
			input:       `{"hooks":{"PreToolUse":[{"matcher":"Edit","hooks":[{"type":"command","command":"fmt.sh"}]}]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"fmt.sh","type":"command"}],"matcher":"Edit"},{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "matcher with empty hooks",
			input:       `{"hooks":{"PreToolUse":[{"matcher":"Bash","hooks":[]}]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "appends to existing matcher",
			input:       `{"hooks":{"PreToolUse":[{"matcher":"Bash","hooks":[{"type":"command","command":"first.sh","timeout":5}]}]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"first.sh","timeout":5,"type":"command"},{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "already registered",
			input:       `{"hooks":{"PreToolUse":[{"matcher":"Bash","hooks":[{"type":"command","command":"a.sh"}]}]}}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook},
			wantChanged: false,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
		{
			name:        "new group with empty matcher",
			input:       `{}`,
			matcher:     "",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":""}]}}`,
		},
		{
			name:        "existing empty matcher",
			input:       `{"hooks":{"PreToolUse":[{"matcher":"","hooks":[{"type":"prompt","prompt":"check"}]}]}}`,
			matcher:     "",
			entries:     []HookEntry{hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"prompt":"check","type":"prompt"},{"command":"a.sh","type":"command"}],"matcher":""}]}}`,
		},
		{
			name:        "duplicate commands in input",
			input:       `{}`,
			matcher:     "Bash",
			entries:     []HookEntry{hook, hook},
			wantChanged: true,
			want:        `{"hooks":{"PreToolUse":[{"hooks":[{"command":"a.sh","type":"command"}],"matcher":"Bash"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			before := mustMarshal(t, doc)

			next, changed := AddHook(doc, "PreToolUse", tt.matcher, tt.entries)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if !changed && next != doc {
				t.Error("no-op AddHook() returned a new document")
			}
			if got := compact(t, next); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			if got := mustMarshal(t, doc); got != before {
				t.Errorf("input mutated:\n%s", got)
			}
			if !HasHook(next, "PreToolUse", "a.sh") {
				t.Error("HasHook() = false after AddHook()")
			}
		})
	}
}

func TestHasHook(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"no hooks", `{}`, false},
		{"no event", `{"hooks":{"Stop":[]}}`, false},
		{"group without hooks", `{"hooks":{"PreToolUse":[{"matcher":"Bash"}]}}`, false},
		{"present under other matcher", `{"hooks":{"PreToolUse":[{"matcher":"Edit","hooks":[{"type":"command","command":"a.sh"}]}]}}`, true},
		{"other event only", `{"hooks":{"PostToolUse":[{"matcher":"Bash","hooks":[{"type":"command","command":"a.sh"}]}]}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasHook(mustParse(t, tt.input), "PreToolUse", "a.sh"); got != tt.want {
				t.Errorf("HasHook() = %v, want %v", got, tt.want)
			}
		})
	}

	if HasHook(nil, "PreToolUse", "a.sh") {
		t.Error("HasHook(nil) = true")
	}
}

func TestOperationsPreserveUnrelatedKeys(t *testing.T) {
	input := `{
  "env": {"KEEP": "1"},
  "permissions": {"allow": ["Grep"], "deny": ["Bash(rm:*)"], "ask": ["Bash(git push:*)"]},
  "hooks": {"Stop": [{"hooks": [{"type": "command", "command": "bye.sh"}]}]},
  "statusLine": {"type": "command", "command": "~/.claude/status.sh"},
  "enabledPlugins": {"a@b": true}
}`
	doc := mustParse(t, input)

	ops := map[string]func(*Document) *Document{
		"SetEnvVar": func(d *Document) *Document {
			next, _ := SetEnvVar(d, "SHELL", "/bin/bash")
			return next
		},
		"AddPermission": func(d *Document) *Document {
			next, _ := AddPermission(d, "Bash(ls:*)")
			return next
		},
		"AddPermissions": func(d *Document) *Document {
			next, _ := AddPermissions(d, []string{"Bash(ls:*)", "Bash(cat:*)"})
			return next
		},
		"AddHook": func(d *Document) *Document {
			next, _ := AddHook(d, "PreToolUse", "Bash", []HookEntry{CommandHook("a.sh")})
			return next
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			next := op(doc)
			for key, raw := range doc.Extra {
				if string(next.Extra[key]) != string(raw) {
					t.Errorf("%s = %s, want %s", key, next.Extra[key], raw)
				}
			}
			if got := strings.Join(next.Permissions.Deny, ","); got != "Bash(rm:*)" {
				t.Errorf("deny = %q", got)
			}
			if string(next.Permissions.Extra["ask"]) != string(doc.Permissions.Extra["ask"]) {
				t.Errorf("ask = %s", next.Permissions.Extra["ask"])
			}
			if !HasHook(next, "Stop", "bye.sh") {
				t.Error("Stop hook lost")
			}
			if next.Env["KEEP"] != "1" {
				t.Error("env KEEP lost")
			}
		})
	}
}
