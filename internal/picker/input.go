package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel is a single-line text prompt
type InputModel struct {
	title    string
	input    textinput.Model
	fallback string
	done     bool
	quitting bool
}

// NewInput creates a text prompt. An empty answer resolves to fallback.
func NewInput(title, fallback string) InputModel {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return InputModel{
		title:    title,
		input:    ti,
		fallback: fallback,
	}
}

// Value returns the entered text, or the fallback when nothing was typed
func (m InputModel) Value() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.fallback
}

// IsQuitting returns true if the user quit without answering
func (m InputModel) IsQuitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, inputKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, inputKeys.Confirm):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m InputModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: confirm • esc: cancel"))

	return b.String()
}

type inputKeyMap struct {
	Confirm key.Binding
	Quit    key.Binding
}

var inputKeys = inputKeyMap{
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

// RunInput runs a text prompt
func RunInput(title, fallback string) (string, error) {
	finalModel, err := tea.NewProgram(NewInput(title, fallback)).Run()
	if err != nil {
		return "", err
	}

	fm := finalModel.(InputModel)
	if fm.IsQuitting() {
		return "", ErrAborted
	}

	return fm.Value(), nil
}
