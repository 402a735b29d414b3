package installer

import "github.com/samhoang/ccplus/internal/permissions"

// Mode selects which steps run
type Mode string

const (
	ModeRecommended Mode = "recommended"
	ModeCustom      Mode = "custom"
)

// Prompter asks the user questions during installation
type Prompter interface {
	SelectMode() (Mode, error)
	Confirm(question string, defaultYes bool) (bool, error)
	Input(question, fallback string) (string, error)
	SelectCategories(categories []permissions.Category) ([]string, error)
}

// AutoPrompter answers every question with its default. It backs --yes and
// sessions without a terminal.
type AutoPrompter struct{}

// SelectMode implements Prompter
func (AutoPrompter) SelectMode() (Mode, error) {
	return ModeRecommended, nil
}

// Confirm implements Prompter
func (AutoPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	return defaultYes, nil
}

// Input implements Prompter
func (AutoPrompter) Input(question, fallback string) (string, error) {
	return fallback, nil
}

// SelectCategories implements Prompter
func (AutoPrompter) SelectCategories(categories []permissions.Category) ([]string, error) {
	return nil, nil
}
