package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

// KeyButton is an action bound to a single key, rendered as "[key] Label".
type KeyButton struct {
	Key    string
	Label  string
	Active bool
}

// NewKeyButton creates a new key button.
func NewKeyButton(key, label string, active bool) KeyButton {
	return KeyButton{Key: key, Label: label, Active: active}
}

// View renders the button.
func (b KeyButton) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// KeyButtonRow renders buttons side by side, dropping inactive ones when
// showInactive is false.
func KeyButtonRow(buttons []KeyButton, showInactive bool) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if !b.Active && !showInactive {
			continue
		}
		parts = append(parts, b.View())
	}
	if len(parts) == 0 {
		return ""
	}
	row := parts[0]
	for _, p := range parts[1:] {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, "  ", p)
	}
	return row
}
