package installer

import (
	"context"

	"github.com/samhoang/ccplus/internal/hookscript"
	"github.com/samhoang/ccplus/internal/settings"
	"github.com/samhoang/ccplus/internal/shellrc"
)

// AliasStatus describes one shell config file
type AliasStatus struct {
	Path    string
	Exists  bool
	Present bool
}

// Report summarizes what is already configured
type Report struct {
	SettingsPath    string
	SettingsExists  bool
	Shell           string
	HookScript      string
	HookInstalled   bool
	HookRegistered  bool
	AllowCount      int
	MissingDefaults int
	Aliases         []AliasStatus
}

// Status inspects settings.json, the hook script and shell config files using
// the same predicates the installation steps use
func (i *Installer) Status(ctx context.Context) (*Report, error) {
	doc, err := i.store.ReadDocument()
	if err != nil {
		return nil, err
	}

	hs := i.cfg.Hook
	r := &Report{
		SettingsPath:   i.store.SettingsPath(),
		SettingsExists: i.store.Exists(i.store.SettingsPath()),
		Shell:          doc.Env["SHELL"],
		HookScript:     i.hookScriptPath(),
		HookRegistered: hookscript.Registered(doc, hs, i.paths.HookCommand(hs.Filename)),
	}
	r.HookInstalled = i.store.Exists(r.HookScript)
	if doc.Permissions != nil {
		r.AllowCount = len(doc.Permissions.Allow)
	}

	defaults, err := i.selectPermissions(nil)
	if err != nil {
		return nil, err
	}
	for _, p := range defaults {
		if !settings.HasPermission(doc, p) {
			r.MissingDefaults++
		}
	}

	for _, d := range shellrc.Dialects() {
		for _, rel := range d.ConfigPaths {
			path := i.paths.ShellConfigPath(rel)
			st := AliasStatus{Path: path, Exists: i.store.Exists(path)}
			if st.Exists {
				content, _, err := i.store.ReadText(i.resolveShellTarget(ctx, path))
				if err != nil {
					return nil, err
				}
				st.Present = d.Rewriter().Has(content)
			}
			r.Aliases = append(r.Aliases, st)
		}
	}
	return r, nil
}

// RemoveAliases deletes the generated block from every shell config file.
// Returns the files that changed.
func (i *Installer) RemoveAliases(ctx context.Context) ([]string, error) {
	var removed []string
	for _, d := range shellrc.Dialects() {
		rw := d.Rewriter()
		for _, rel := range d.ConfigPaths {
			path := i.paths.ShellConfigPath(rel)
			if !i.store.Exists(path) {
				continue
			}
			target := i.resolveShellTarget(ctx, path)
			content, _, err := i.store.ReadText(target)
			if err != nil {
				return nil, err
			}
			if !rw.Has(content) {
				continue
			}
			if err := i.store.WriteText(target, rw.Remove(content)); err != nil {
				return nil, err
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// ApplyChezmoi runs chezmoi apply for tracked targets when any were modified
func (i *Installer) ApplyChezmoi(ctx context.Context) error {
	return i.applyChezmoi(ctx)
}
