package picker

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user quits a prompt without answering
var ErrAborted = errors.New("aborted by user")

// SingleModel is the Bubble Tea model for single-select picker
type SingleModel struct {
	title    string
	items    []Item
	cursor   int
	done     bool
	quitting bool
}

// NewSingle creates a new single-select picker model. The cursor starts on
// the first item marked Selected.
func NewSingle(title string, items []Item) SingleModel {
	cursor := 0
	for i, item := range items {
		if item.Selected {
			cursor = i
			break
		}
	}

	return SingleModel{
		title:  title,
		items:  items,
		cursor: cursor,
	}
}

// Selected returns the ID of the item under the cursor
func (m SingleModel) Selected() string {
	if m.cursor < len(m.items) {
		return m.items[m.cursor].ID
	}
	return ""
}

// IsQuitting returns true if the user quit without confirming
func (m SingleModel) IsQuitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m SingleModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SingleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		if ok && key.Matches(keyMsg, singleKeys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, singleKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, singleKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.items) - 1
		}

	case key.Matches(keyMsg, singleKeys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}

	case key.Matches(keyMsg, singleKeys.Confirm):
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m SingleModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(item.Label))
		} else {
			b.WriteString("  ")
			b.WriteString(item.Label)
		}
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString(helpStyle.Render("    " + item.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return b.String()
}

type singleKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var singleKeys = singleKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

// RunSingle runs the single-select picker and returns the selected item ID
func RunSingle(title string, items []Item) (string, error) {
	finalModel, err := tea.NewProgram(NewSingle(title, items)).Run()
	if err != nil {
		return "", err
	}

	fm := finalModel.(SingleModel)
	if fm.IsQuitting() {
		return "", ErrAborted
	}

	return fm.Selected(), nil
}
