package home

import (
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, sparkles: last interview graded B+ or better
	MascotAlert                            // Orange, exclamation: last interview failed
)

const mascotIdle = `╭───╮
│▓▓▓│
│▓▓▓│
╰─┬─╯
──┴──`

const mascotCelebrating = `✦╭───╮✦
 │▓▓▓│
 │▓▓▓│
 ╰─┬─╯
 ──┴──`

const mascotAlert = `╭───╮
│▓▓▓│ !
│▓▓▓│
╰─┬─╯
──┴──`

// mascotFor picks the mascot mood from the latest result.
func mascotFor(st Stats) MascotVariant {
	switch {
	case st.Sessions == 0:
		return MascotIdle
	case st.LastGrade == "A" || st.LastGrade == "B+":
		return MascotCelebrating
	case st.LastGrade == "F":
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
