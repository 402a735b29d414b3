package shellrc

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	ccperrors "github.com/samhoang/ccplus/internal/errors"
)

// Dialect describes how one shell family spells the claude wrapper function
type Dialect struct {
	// Name is the display name ("Bash", "Zsh", "Fish")
	Name string

	// ConfigPaths are startup files relative to the home directory
	ConfigPaths []string

	// Terminator is the closing line every rendered block ends with
	Terminator string

	// SourceCommand reloads the primary config file
	SourceCommand string

	render func(shellPath string) string

	// posix marks dialects whose blocks can be checked with the bash parser
	posix bool
}

var (
	// Bash configures .bashrc and .bash_profile
	Bash = Dialect{
		Name:          "Bash",
		ConfigPaths:   []string{".bashrc", ".bash_profile"},
		Terminator:    "}",
		SourceCommand: "source ~/.bashrc",
		render:        renderFunction,
		posix:         true,
	}

	// Zsh configures .zshrc
	Zsh = Dialect{
		Name:          "Zsh",
		ConfigPaths:   []string{".zshrc"},
		Terminator:    "}",
		SourceCommand: "source ~/.zshrc",
		render:        renderFunction,
		posix:         true,
	}

	// Fish configures config.fish
	Fish = Dialect{
		Name:          "Fish",
		ConfigPaths:   []string{filepath.Join(".config", "fish", "config.fish")},
		Terminator:    "end",
		SourceCommand: "source ~/.config/fish/config.fish",
		render:        renderFishFunction,
	}
)

// Dialects returns all supported dialects in the order they are configured
func Dialects() []Dialect {
	return []Dialect{Bash, Zsh, Fish}
}

func renderFunction(shellPath string) string {
	return fmt.Sprintf("%s\nclaude() {\n  SHELL=\"%s\" command claude \"$@\"\n}\n", Marker, shellPath)
}

func renderFishFunction(shellPath string) string {
	return fmt.Sprintf("%s\nfunction claude\n  SHELL=\"%s\" command claude $argv\nend\n", Marker, shellPath)
}

// Render returns the generated block that runs claude with SHELL=shellPath
func (d Dialect) Render(shellPath string) string {
	return d.render(shellPath)
}

// Rewriter returns the block rewriter for this dialect
func (d Dialect) Rewriter() Rewriter {
	return Rewriter{Marker: Marker, Terminator: d.Terminator}
}

// Validate checks that block can later be found and removed without touching
// surrounding text: it starts with the marker, contains it once, and its only
// terminator line is the last one. Bash and zsh blocks must also parse.
func (d Dialect) Validate(block string) error {
	if !strings.HasPrefix(block, Marker+"\n") {
		return fmt.Errorf("%w: %s block does not start with the marker", ccperrors.ErrInvalidBlock, d.Name)
	}
	if n := strings.Count(block, Marker); n != 1 {
		return fmt.Errorf("%w: %s block contains the marker %d times", ccperrors.ErrInvalidBlock, d.Name, n)
	}

	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	for i, line := range lines {
		isTerminator := strings.TrimRight(line, " \t\r") == d.Terminator
		last := i == len(lines)-1
		if isTerminator != last {
			return fmt.Errorf("%w: %s block has a misplaced %q on line %d", ccperrors.ErrInvalidBlock, d.Name, d.Terminator, i+1)
		}
	}

	if d.posix {
		parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
		if _, err := parser.Parse(strings.NewReader(block), strings.ToLower(d.Name)); err != nil {
			return fmt.Errorf("%w: %v", ccperrors.ErrInvalidBlock, err)
		}
	}
	return nil
}

// DialectFor returns the dialect matching a shell path or name such as
// "/usr/bin/fish". Unknown shells fall back to Bash.
func DialectFor(shell string) Dialect {
	switch filepath.Base(shell) {
	case "fish":
		return Fish
	case "zsh":
		return Zsh
	default:
		return Bash
	}
}

// SourceCommand returns the command that reloads the config file of the given
// shell (typically the value of $SHELL)
func SourceCommand(shell string) string {
	return DialectFor(shell).SourceCommand
}
