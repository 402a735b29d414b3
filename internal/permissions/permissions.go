// Package permissions provides the default catalogue of safe allow patterns.
package permissions

import (
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Category groups related allow patterns
type Category struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tools       []string `yaml:"tools,omitempty"`
	Prefix      []string `yaml:"prefix,omitempty"`
	Exact       []string `yaml:"exact,omitempty"`
}

// Patterns returns the category's allow patterns in catalogue order
func (c Category) Patterns() []string {
	out := make([]string, 0, len(c.Tools)+len(c.Prefix)+len(c.Exact))
	out = append(out, c.Tools...)
	for _, cmd := range c.Prefix {
		out = append(out, "Bash("+cmd+":*)")
	}
	for _, cmd := range c.Exact {
		out = append(out, "Bash("+cmd+")")
	}
	return out
}

// Catalogue is the parsed catalogue file
type Catalogue struct {
	Categories []Category `yaml:"categories"`
}

var (
	loadOnce sync.Once
	loaded   *Catalogue
	loadErr  error
)

// Load returns the embedded catalogue
func Load() (*Catalogue, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogueYAML)
	})
	return loaded, loadErr
}

// Parse decodes a catalogue document
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse permission catalogue: %w", err)
	}
	return &c, nil
}

// All returns every pattern in the catalogue
func (c *Catalogue) All() []string {
	var out []string
	for _, cat := range c.Categories {
		out = append(out, cat.Patterns()...)
	}
	return out
}

// Category looks up a category by name
func (c *Catalogue) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Names returns category names in catalogue order
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Selection narrows the catalogue
type Selection struct {
	// Categories to include; empty means all
	Categories []string
	// Extra patterns appended after the catalogue
	Extra []string
	// Exclude patterns never returned
	Exclude []string
}

// Select returns the patterns chosen by sel. Unknown category names are an
// error so a typo in config.toml is not silently ignored.
func (c *Catalogue) Select(sel Selection) ([]string, error) {
	var out []string
	if len(sel.Categories) == 0 {
		out = c.All()
	} else {
		for _, name := range sel.Categories {
			cat, ok := c.Category(name)
			if !ok {
				return nil, fmt.Errorf("unknown permission category %q", name)
			}
			out = append(out, cat.Patterns()...)
		}
	}

	for _, p := range sel.Extra {
		if !Valid(p) {
			return nil, fmt.Errorf("invalid permission pattern %q", p)
		}
	}
	out = append(out, sel.Extra...)

	if len(sel.Exclude) > 0 {
		out = slices.DeleteFunc(out, func(p string) bool {
			return slices.Contains(sel.Exclude, p)
		})
	}
	return out, nil
}

var validPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Bash\(.+\)$`),
	regexp.MustCompile(`^(Read|Edit|Write)\(.+\)$`),
	regexp.MustCompile(`^WebFetch\(domain:.+\)$`),
	regexp.MustCompile(`^(Glob|Grep|Read|Edit|Write|WebFetch|WebSearch|NotebookEdit|TodoWrite|Task)$`),
	regexp.MustCompile(`^mcp__.+$`),
}

// Valid reports whether pattern has the shape of a Claude Code permission rule
func Valid(pattern string) bool {
	for _, re := range validPatterns {
		if re.MatchString(pattern) {
			return true
		}
	}
	return false
}
