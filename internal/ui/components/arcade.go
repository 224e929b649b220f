package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all arcade sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ScoreCard shows a letter grade and percentage in a card bordered with
// the grade's colour. detail is printed underneath when non-empty.
func ScoreCard(letter string, pct int, detail string, cw int) string {
	c := theme.GradeColor(letter)
	score := lipgloss.NewStyle().Foreground(c).Bold(true).Render(letter) +
		"  " +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("%d%%", pct))

	content := score
	if detail != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 2).
		Render(content)
}

// ButtonState is how an ArcadeButton is drawn.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonSelected
	ButtonDisabled
)

// ArcadeButton renders a fixed-width bordered menu button.
func ArcadeButton(label string, state ButtonState, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch state {
	case ButtonSelected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	case ButtonDisabled:
		return style.
			Foreground(theme.TextDim).
			BorderForeground(theme.Border).
			Render(label)
	default:
		return style.
			Foreground(theme.Text).
			BorderForeground(theme.Border).
			Render(label)
	}
}
