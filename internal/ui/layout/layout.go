package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// ChromeHeight is the rows taken by the header and footer bars plus
	// the gaps between them and the content.
	ChromeHeight = 8

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether a content area of width x height belongs to a
// terminal too small for the full-size layouts.
func IsCompact(width, height int) bool {
	return width < CompactWidthThreshold || height+ChromeHeight < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar draws a full-width rounded bar used for the header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the application header bar: the app name on the
// left, title centred and status on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  InterviewMe")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	leftLen, centerLen, rightLen := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	inner := max(width-4, 0)

	leftGap := max((inner-centerLen)/2-leftLen, 1)
	rightGap := max(inner-leftLen-leftGap-centerLen-rightLen, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter renders the footer with key hints. Hints that do not fit
// in width are dropped from the end, after first trying keys alone.
func RenderFooter(hints []KeyHint, width int) string {
	return bar(fitHints(hints, max(width-4, 0)), width)
}

func fitHints(hints []KeyHint, inner int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	join := func(n int, withDesc bool) string {
		parts := make([]string, 0, n)
		for _, h := range hints[:n] {
			part := keyStyle.Render(h.Key)
			if withDesc {
				part += " " + descStyle.Render(h.Description)
			}
			parts = append(parts, part)
		}
		return "  " + strings.Join(parts, "   ")
	}

	full := join(len(hints), true)
	if lipgloss.Width(full) <= inner {
		return full
	}
	for n := len(hints); n > 0; n-- {
		if line := join(n, false); lipgloss.Width(line) <= inner {
			return line
		}
	}
	return ""
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
