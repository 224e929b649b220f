package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

// Meter is a one-line horizontal gauge.
type Meter struct {
	Label    string
	Fraction float64
	Fill     color.Color
	Width    int
}

// NewLevelMeter shows microphone input level in [0, 1]. The fill turns
// yellow then red as the signal approaches clipping.
func NewLevelMeter(level float64, width int) Meter {
	fill := theme.Success
	switch {
	case level >= 0.85:
		fill = theme.Error
	case level >= 0.6:
		fill = theme.Warning
	}
	return Meter{Label: "MIC", Fraction: level, Fill: fill, Width: width}
}

// NewCountdownBar shows how much of the answer budget is left.
func NewCountdownBar(remaining, budget, width int) Meter {
	frac := 0.0
	if budget > 0 {
		frac = float64(remaining) / float64(budget)
	}
	return Meter{Fraction: frac, Fill: theme.TimerColor(remaining), Width: width}
}

// View renders the meter.
func (m Meter) View() string {
	var label string
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}

	barWidth := max(m.Width-lipgloss.Width(label), 4)
	filled := min(max(int(float64(barWidth)*m.Fraction), 0), barWidth)

	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return label +
		lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}
