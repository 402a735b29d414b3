package cmd

import (
	"fmt"

	"github.com/samhoang/ccplus/internal/installer"
	"github.com/samhoang/ccplus/internal/permissions"
	"github.com/samhoang/ccplus/internal/picker"
)

// terminalPrompter answers installer questions with the interactive pickers
type terminalPrompter struct{}

func (terminalPrompter) SelectMode() (installer.Mode, error) {
	choice, err := picker.RunSingle("How would you like to install?", []picker.Item{
		{
			ID:          string(installer.ModeRecommended),
			Label:       "Recommended",
			Description: "modern bash, auto-approve hook and all safe permissions",
		},
		{
			ID:          string(installer.ModeCustom),
			Label:       "Custom",
			Description: "choose each step",
		},
	})
	if err != nil {
		return "", err
	}
	return installer.Mode(choice), nil
}

func (terminalPrompter) Confirm(question string, defaultYes bool) (bool, error) {
	return picker.RunConfirm(question, defaultYes)
}

func (terminalPrompter) Input(question, fallback string) (string, error) {
	return picker.RunInput(question, fallback)
}

func (terminalPrompter) SelectCategories(categories []permissions.Category) ([]string, error) {
	items := make([]picker.Item, len(categories))
	for n, c := range categories {
		items[n] = picker.Item{
			ID:          c.Name,
			Label:       c.Name,
			Description: fmt.Sprintf("%s (%d)", c.Description, len(c.Patterns())),
			Selected:    true,
		}
	}
	return picker.Run("Select permission categories", items)
}
