package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/screens/welcome"
	"github.com/vistafly/interviewme/internal/ui/components"
	"github.com/vistafly/interviewme/internal/ui/theme"
)

const arcadeTitleCompact = "I N T E R V I E W · M E"

// renderTitle returns the banner or its compact fallback.
func renderTitle(cw int, compact bool) string {
	title := welcome.RenderBanner(cw)
	if compact {
		title = lipgloss.NewStyle().
			Foreground(theme.ArcadeYellow).
			Bold(true).
			Render(arcadeTitleCompact)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st Stats, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			countStyle.Render(fmt.Sprintf("★%d", st.Sessions)),
			bestStyle.Render(fmt.Sprintf("◆%d%%", st.BestPct)),
			lastText(st, true, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			countStyle.Render(fmt.Sprintf("★ %d SESSIONS", st.Sessions)),
			bestStyle.Render(fmt.Sprintf("◆ BEST %d%%", st.BestPct)),
			lastText(st, false, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func lastText(st Stats, compact bool, dim lipgloss.Style) string {
	if st.Sessions == 0 {
		if compact {
			return dim.Render("▶ -")
		}
		return dim.Render("▶ NO INTERVIEWS YET")
	}
	style := lipgloss.NewStyle().Foreground(theme.GradeColor(st.LastGrade)).Bold(true)
	if compact {
		return style.Render("▶" + st.LastGrade)
	}
	return style.Render(fmt.Sprintf("▶ LAST %s %d%%", st.LastGrade, st.LastPct))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(menu components.Menu, cw int) string {
	var buttons []string
	for i, label := range menu.Labels() {
		buttons = append(buttons, components.ArcadeButton(label, menu.State(i), buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, label := range menu.Labels() {
		var line string
		switch menu.State(i) {
		case components.ButtonDisabled:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case components.ButtonSelected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
