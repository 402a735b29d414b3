package installer

import (
	"context"
	"path/filepath"

	"github.com/samhoang/ccplus/internal/chezmoi"
	"github.com/samhoang/ccplus/internal/hookscript"
	"github.com/samhoang/ccplus/internal/logging"
	"github.com/samhoang/ccplus/internal/permissions"
	"github.com/samhoang/ccplus/internal/settings"
	"github.com/samhoang/ccplus/internal/shellrc"
)

// AliasChange describes the outcome for one shell config file
type AliasChange struct {
	Path    string // file in $HOME
	Written string // file actually written (chezmoi source when managed)
	Action  string // "Added", "Updated" or "Unchanged"
}

// Shell sets env.SHELL in settings.json and installs the claude wrapper in
// every existing shell config file
func (i *Installer) Shell(ctx context.Context, shellPath string) error {
	i.out.Step("Configuring shell for Claude Code commands")

	shellName := filepath.Base(shellPath)
	i.out.Info("Configuring Claude to use %s (%s)", i.out.Cmd(shellName), i.out.File(shellPath))

	doc, err := i.store.ReadDocument()
	if err != nil {
		return err
	}
	doc, _ = settings.SetEnvVar(doc, "SHELL", shellPath)
	if err := i.store.WriteDocument(doc); err != nil {
		return err
	}

	changes, err := i.ConfigureAliases(ctx, shellPath)
	if err != nil {
		return err
	}
	for _, c := range changes {
		if c.Action == "Unchanged" {
			i.out.Success("claude alias already up to date in %s", i.out.File(i.paths.Display(c.Path)))
			continue
		}
		i.out.Success("%s claude alias in %s", c.Action, i.out.File(i.paths.Display(c.Path)))
	}

	i.out.Success("Claude Code will now run commands in %s", shellName)
	return nil
}

// ConfigureAliases upserts the generated block into each shell config file
// that exists. Missing files are never created.
func (i *Installer) ConfigureAliases(ctx context.Context, shellPath string) ([]AliasChange, error) {
	var changes []AliasChange
	for _, d := range shellrc.Dialects() {
		block := d.Render(shellPath)
		if err := d.Validate(block); err != nil {
			return nil, err
		}

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

			updated, wasUpdate := d.Rewriter().Upsert(content, block)
			change := AliasChange{Path: path, Written: target, Action: "Added"}
			switch {
			case updated == content:
				change.Action = "Unchanged"
			case wasUpdate:
				change.Action = "Updated"
			}
			logging.Debug().Str("dialect", d.Name).Str("path", target).Str("action", change.Action).Msg("shell alias")

			if change.Action != "Unchanged" {
				if err := i.store.WriteText(target, updated); err != nil {
					return nil, err
				}
			}
			changes = append(changes, change)
		}
	}
	return changes, nil
}

// resolveShellTarget returns the chezmoi source for path when chezmoi
// manages it, registering the mapping with the tracker
func (i *Installer) resolveShellTarget(ctx context.Context, path string) string {
	if !i.cfg.Chezmoi.Enabled || i.paths.Override {
		return path
	}
	source, ok := i.chezmoi.SourcePath(ctx, path)
	if !ok {
		return path
	}
	i.tracker.Watch(source, path)
	return source
}

// Hook writes the auto-approve script and registers it in settings.json
func (i *Installer) Hook(ctx context.Context) error {
	i.out.Step("Installing hook to auto-approve allowed commands")

	hs := i.cfg.Hook
	scriptPath := i.hookScriptPath()
	written, err := hookscript.Install(i.store, scriptPath)
	if err != nil {
		return err
	}
	if written {
		i.out.Success("Installed hook to %s", i.out.File(i.paths.Display(scriptPath)))
	} else {
		i.out.Success("Hook script already up to date")
	}

	doc, err := i.store.ReadDocument()
	if err != nil {
		return err
	}
	next, changed := hookscript.Register(doc, hs, i.paths.HookCommand(hs.Filename))
	if !changed {
		i.out.Success("Hook already configured in settings.json")
		return nil
	}
	if err := i.store.WriteDocument(next); err != nil {
		return err
	}
	i.out.Success("Configured %s hook in settings.json", hs.Event)
	return nil
}

// Permissions adds catalogue patterns to permissions.allow. categories
// overrides the configured categories when non-empty.
func (i *Installer) Permissions(ctx context.Context, categories []string) error {
	i.out.Step("Adding safe permissions")

	patterns, err := i.selectPermissions(categories)
	if err != nil {
		return err
	}

	doc, err := i.store.ReadDocument()
	if err != nil {
		return err
	}
	next, added := settings.AddPermissions(doc, patterns)
	if added == 0 {
		i.out.Success("All permissions already configured")
		return nil
	}
	if err := i.store.WriteDocument(next); err != nil {
		return err
	}
	i.out.Success("Added %d safe command permissions", added)
	return nil
}

func (i *Installer) selectPermissions(categories []string) ([]string, error) {
	catalogue, err := permissions.Load()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		categories = i.cfg.Permissions.Categories
	}
	return catalogue.Select(permissions.Selection{
		Categories: categories,
		Extra:      i.cfg.Permissions.Extra,
		Exclude:    i.cfg.Permissions.Exclude,
	})
}

// hookScriptPath returns where the hook script is written. chezmoi encodes
// the executable bit in the source file name.
func (i *Installer) hookScriptPath() string {
	name := i.cfg.Hook.Filename
	if i.claudeManaged {
		name = chezmoi.ExecutablePrefix + name
	}
	return i.paths.HookPath(name)
}
