package settings

import (
	"encoding/json"
	"maps"
	"slices"
)

// Patch operations never modify their input. When an operation reports no
// change it returns the very pointer it was given, so callers can skip the
// write with a plain identity check.

// SetEnvVar returns a document with env[name] set to value. It always reports
// a change; compare beforehand if a no-op must be detected.
func SetEnvVar(doc *Document, name, value string) (*Document, bool) {
	next := doc.shallow()
	env := make(map[string]string, len(next.Env)+1)
	maps.Copy(env, next.Env)
	env[name] = value
	next.Env = env
	return next, true
}

// AddPermission appends pattern to permissions.allow unless it is already there
func AddPermission(doc *Document, pattern string) (*Document, bool) {
	next, added := AddPermissions(doc, []string{pattern})
	return next, added == 1
}

// HasPermission reports whether pattern is in permissions.allow
func HasPermission(doc *Document, pattern string) bool {
	return slices.Contains(allowList(doc), pattern)
}

// AddPermissions appends the patterns that are not yet allowed, in input order,
// and returns how many were appended. Repeats inside patterns count once.
func AddPermissions(doc *Document, patterns []string) (*Document, int) {
	current := allowList(doc)
	seen := make(map[string]struct{}, len(current)+len(patterns))
	for _, p := range current {
		seen[p] = struct{}{}
	}

	var fresh []string
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		fresh = append(fresh, p)
	}
	if len(fresh) == 0 {
		return doc, 0
	}

	next := doc.shallow()
	var perms Permissions
	if next.Permissions != nil {
		perms = *next.Permissions
	}
	allow := make([]string, 0, len(current)+len(fresh))
	allow = append(allow, current...)
	perms.Allow = append(allow, fresh...)
	next.Permissions = &perms
	return next, len(fresh)
}

// AddHook registers entries under matcher for the given event. A missing
// matcher group is appended; an existing one only gains the entries whose
// command it does not already run.
func AddHook(doc *Document, event, matcher string, entries []HookEntry) (*Document, bool) {
	var groups []MatcherGroup
	if doc != nil {
		groups = doc.Hooks[event]
	}

	var updated []MatcherGroup
	idx := slices.IndexFunc(groups, func(g MatcherGroup) bool { return g.Matcher == matcher })
	if idx < 0 {
		hooks := mergeEntries(nil, entries)
		if hooks == nil {
			hooks = []HookEntry{}
		}
		updated = make([]MatcherGroup, 0, len(groups)+1)
		updated = append(updated, groups...)
		group := MatcherGroup{Matcher: matcher, Hooks: hooks}
		if matcher == "" {
			group.Extra = map[string]json.RawMessage{"matcher": json.RawMessage(`""`)}
		}
		updated = append(updated, group)
	} else {
		existing := groups[idx].Hooks
		merged := mergeEntries(existing, entries)
		if len(merged) == len(existing) {
			return doc, false
		}
		updated = slices.Clone(groups)
		updated[idx].Hooks = merged
	}

	next := doc.shallow()
	hooks := make(map[string][]MatcherGroup, len(next.Hooks)+1)
	maps.Copy(hooks, next.Hooks)
	hooks[event] = updated
	next.Hooks = hooks
	return next, true
}

// HasHook reports whether any matcher group of event runs command
func HasHook(doc *Document, event, command string) bool {
	if doc == nil {
		return false
	}
	for _, g := range doc.Hooks[event] {
		if slices.ContainsFunc(g.Hooks, sameCommand(command)) {
			return true
		}
	}
	return false
}

// mergeEntries returns a fresh slice holding existing followed by the entries
// whose command is not present yet
func mergeEntries(existing, entries []HookEntry) []HookEntry {
	out := slices.Clone(existing)
	for _, e := range entries {
		if slices.ContainsFunc(out, sameCommand(e.Command)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sameCommand(command string) func(HookEntry) bool {
	return func(h HookEntry) bool { return h.Command == command }
}

func allowList(doc *Document) []string {
	if doc == nil || doc.Permissions == nil {
		return nil
	}
	return doc.Permissions.Allow
}
