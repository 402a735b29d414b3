// Package settings models the Claude Code settings.json document and the pure
// patch operations the installer applies to it.
//
// Only the keys the installer edits are typed. Every other key, at every level
// the installer descends into, is carried as raw JSON so a load/patch/save cycle
// never drops user configuration.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Document represents the settings.json structure
type Document struct {
	Env         map[string]string
	Permissions *Permissions
	Hooks       map[string][]MatcherGroup

	// Extra holds top-level keys the installer does not manage
	Extra map[string]json.RawMessage
}

// Permissions represents the permissions section of settings.json
type Permissions struct {
	Allow []string
	Deny  []string
	Extra map[string]json.RawMessage
}

// MatcherGroup is a set of hook commands registered for one matcher of an event
type MatcherGroup struct {
	Matcher string
	Hooks   []HookEntry
	Extra   map[string]json.RawMessage
}

// HookEntry represents a single hook command
type HookEntry struct {
	Type    string
	Command string
	Extra   map[string]json.RawMessage
}

// CommandHook creates a hook entry of type "command"
func CommandHook(command string) HookEntry {
	return HookEntry{Type: "command", Command: command}
}

// Parse decodes a settings document. Empty input is treated as an empty object.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Marshal encodes a document with 2-space indentation, no HTML escaping and a
// single trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		Env:   maps.Clone(d.Env),
		Extra: cloneRaw(d.Extra),
	}
	if d.Permissions != nil {
		c.Permissions = &Permissions{
			Allow: slices.Clone(d.Permissions.Allow),
			Deny:  slices.Clone(d.Permissions.Deny),
			Extra: cloneRaw(d.Permissions.Extra),
		}
	}
	if d.Hooks != nil {
		c.Hooks = make(map[string][]MatcherGroup, len(d.Hooks))
		for event, groups := range d.Hooks {
			cloned := make([]MatcherGroup, len(groups))
			for i, g := range groups {
				cloned[i] = MatcherGroup{Matcher: g.Matcher, Extra: cloneRaw(g.Extra)}
				if g.Hooks != nil {
					cloned[i].Hooks = make([]HookEntry, len(g.Hooks))
					for j, h := range g.Hooks {
						cloned[i].Hooks[j] = HookEntry{Type: h.Type, Command: h.Command, Extra: cloneRaw(h.Extra)}
					}
				}
			}
			c.Hooks[event] = cloned
		}
	}
	return c
}

// shallow copies the top-level struct. Callers replace, never mutate, the
// branches they change so the input document stays intact.
func (d *Document) shallow() *Document {
	if d == nil {
		return &Document{}
	}
	c := *d
	return &c
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Document) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*d = Document{}

	var env map[string]string
	if ok, err := take(fields, "env", &env); err != nil {
		return err
	} else if ok {
		d.Env = nonNilMap(env)
	}

	var perms Permissions
	if ok, err := take(fields, "permissions", &perms); err != nil {
		return err
	} else if ok {
		d.Permissions = &perms
	}

	var hooks map[string][]MatcherGroup
	if ok, err := take(fields, "hooks", &hooks); err != nil {
		return err
	} else if ok {
		d.Hooks = nonNilMap(hooks)
	}

	if len(fields) > 0 {
		d.Extra = fields
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Document) MarshalJSON() ([]byte, error) {
	out := rawObject(d.Extra)
	if d.Env != nil {
		out["env"] = d.Env
	}
	if d.Permissions != nil {
		out["permissions"] = d.Permissions
	}
	if d.Hooks != nil {
		out["hooks"] = d.Hooks
	}
	return encodeCompact(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Permissions) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*p = Permissions{}

	var allow, deny []string
	if ok, err := take(fields, "allow", &allow); err != nil {
		return err
	} else if ok {
		p.Allow = nonNilSlice(allow)
	}
	if ok, err := take(fields, "deny", &deny); err != nil {
		return err
	} else if ok {
		p.Deny = nonNilSlice(deny)
	}

	if len(fields) > 0 {
		p.Extra = fields
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (p Permissions) MarshalJSON() ([]byte, error) {
	out := rawObject(p.Extra)
	if p.Allow != nil {
		out["allow"] = p.Allow
	}
	if p.Deny != nil {
		out["deny"] = p.Deny
	}
	return encodeCompact(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (g *MatcherGroup) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*g = MatcherGroup{}

	if err := takeString(fields, "matcher", &g.Matcher); err != nil {
		return err
	}
	var hooks []HookEntry
	if ok, err := take(fields, "hooks", &hooks); err != nil {
		return err
	} else if ok {
		g.Hooks = nonNilSlice(hooks)
	}

	if len(fields) > 0 {
		g.Extra = fields
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (g MatcherGroup) MarshalJSON() ([]byte, error) {
	out := rawObject(g.Extra)
	if g.Matcher != "" {
		out["matcher"] = g.Matcher
	}
	if g.Hooks != nil {
		out["hooks"] = g.Hooks
	}
	return encodeCompact(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (h *HookEntry) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	*h = HookEntry{}

	if err := takeString(fields, "type", &h.Type); err != nil {
		return err
	}
	if err := takeString(fields, "command", &h.Command); err != nil {
		return err
	}

	if len(fields) > 0 {
		h.Extra = fields
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (h HookEntry) MarshalJSON() ([]byte, error) {
	out := rawObject(h.Extra)
	if h.Type != "" {
		out["type"] = h.Type
	}
	if h.Command != "" {
		out["command"] = h.Command
	}
	return encodeCompact(out)
}

// objectFields decodes a JSON object into its raw members
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	return fields, nil
}

// take decodes fields[key] into v and removes it from fields. A null value is
// left in place so it is written back unchanged.
func take(fields map[string]json.RawMessage, key string, v any) (bool, error) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	delete(fields, key)
	return true, nil
}

// takeString decodes a string member into v. Only non-empty values leave
// fields; an empty string stays raw so it is written back as it was.
func takeString(fields map[string]json.RawMessage, key string, v *string) error {
	var s string
	ok, err := take(fields, key, &s)
	if err != nil || !ok {
		return err
	}
	if s == "" {
		fields[key] = json.RawMessage(`""`)
		return nil
	}
	*v = s
	return nil
}

func rawObject(extra map[string]json.RawMessage) map[string]any {
	out := make(map[string]any, len(extra)+3)
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// encodeCompact marshals v without HTML escaping so patterns such as
// "Bash(a && b)" are written as typed.
func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func cloneRaw(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}

func nonNilMap[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return make(M)
	}
	return m
}

func nonNilSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
