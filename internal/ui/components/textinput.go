package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with answer-box styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	locked   bool
}

// NewTextInput creates a new styled text input. charLimit of zero means
// unlimited.
func NewTextInput(placeholder string, charLimit, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()

	return TextInput{
		Model:    ti,
		MaxWidth: width,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. A locked input ignores them.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.locked {
		view += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("(locked)")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the value and unlocks the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.locked = false
}

// Lock stops the input from accepting further edits.
func (t *TextInput) Lock() {
	t.locked = true
}
