package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no prompt. Enter accepts the default answer.
type ConfirmModel struct {
	question string
	answer   bool
	done     bool
	quitting bool
}

// NewConfirm creates a yes/no prompt with the given default
func NewConfirm(question string, defaultYes bool) ConfirmModel {
	return ConfirmModel{question: question, answer: defaultYes}
}

// Answer returns the chosen answer
func (m ConfirmModel) Answer() bool {
	return m.answer
}

// IsQuitting returns true if the user quit without answering
func (m ConfirmModel) IsQuitting() bool {
	return m.quitting
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmKeys.Yes):
		m.answer = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmKeys.No):
		m.answer = false
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmKeys.Toggle):
		m.answer = !m.answer
	case key.Matches(keyMsg, confirmKeys.Confirm):
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	yes, no := "Yes", "No"
	if m.answer {
		yes = selectedStyle.Render("[Yes]")
	} else {
		no = selectedStyle.Render("[No]")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.question))
	b.WriteString("  ")
	b.WriteString(yes + " / " + no)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("y/n: answer • ←/→: toggle • enter: confirm"))

	return b.String()
}

type confirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:     key.NewBinding(key.WithKeys("y", "Y")),
	No:      key.NewBinding(key.WithKeys("n", "N")),
	Toggle:  key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab")),
	Confirm: key.NewBinding(key.WithKeys("enter")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

// RunConfirm runs a yes/no prompt
func RunConfirm(question string, defaultYes bool) (bool, error) {
	finalModel, err := tea.NewProgram(NewConfirm(question, defaultYes)).Run()
	if err != nil {
		return false, err
	}

	fm := finalModel.(ConfirmModel)
	if fm.IsQuitting() {
		return false, ErrAborted
	}

	return fm.Answer(), nil
}
