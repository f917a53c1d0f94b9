package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskSubmittedMsg is sent when the user presses enter in the input field.
// Name may be empty; the store accepts any string.
type TaskSubmittedMsg struct {
	Name string
}

// InputField is a text input component for entering task names.
type InputField struct {
	input textinput.Model
	width int
}

// NewInputField creates a new InputField.
func NewInputField() *InputField {
	ti := textinput.New()
	ti.Placeholder = "Enter task"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	return &InputField{
		input: ti,
		width: 80,
	}
}

// SetWidth sets the width of the input field.
func (f *InputField) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 4 // Account for prompt and padding
}

// Value returns the current text.
func (f *InputField) Value() string {
	return f.input.Value()
}

// SetValue replaces the current text and moves the cursor to the end.
func (f *InputField) SetValue(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// Reset clears the text.
func (f *InputField) Reset() {
	f.input.Reset()
}

// Focused reports whether the field accepts keystrokes.
func (f *InputField) Focused() bool {
	return f.input.Focused()
}

// Update handles messages for the input field.
func (f *InputField) Update(msg tea.Msg) (*InputField, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter && f.input.Focused() {
		name := f.input.Value()
		f.input.Reset()
		return f, func() tea.Msg {
			return TaskSubmittedMsg{Name: name}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the input field.
func (f *InputField) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(f.width - 2)

	if f.input.Focused() {
		boxStyle = boxStyle.BorderForeground(lipgloss.Color("39"))
	}

	prompt := promptStyle.Render("> ")
	return boxStyle.Render(prompt + f.input.View())
}

// Focus sets focus on the input field.
func (f *InputField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus from the input field.
func (f *InputField) Blur() {
	f.input.Blur()
}
