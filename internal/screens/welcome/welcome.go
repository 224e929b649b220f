package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	wavesAt      = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	// autoAdvance moves on to the home screen without a key press.
	autoAdvance = 6 * time.Second
)

// stage is the part of the splash currently visible.
type stage int

const (
	stageMic stage = iota
	stageWaves
	stageBanner
)

const micArt = `  ╭─────────╮
  │  ╭───╮  │
  │  │▓▓▓│  │
  │  │▓▓▓│  │
  │  ╰─┬─╯  │
  │  ──┴──  │
  ╰─────────╯`

// soundwave frames pulse beside the microphone
var waveFrames = []string{")", "))", ")))"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) stage() stage {
	switch {
	case w.elapsed >= bannerAt:
		return stageBanner
	case w.elapsed >= wavesAt:
		return stageWaves
	default:
		return stageMic
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= autoAdvance {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(micArt)

	if w.stage() >= stageWaves {
		wave := waveFrames[w.tickCount%len(waveFrames)]
		left := lipgloss.NewStyle().Foreground(theme.Secondary).Render(reverseWave(wave))
		right := lipgloss.NewStyle().Foreground(theme.Accent).Render(wave)

		lines := strings.Split(rendered, "\n")
		for _, i := range []int{2, 3} {
			if i < len(lines) {
				lines[i] = pad(left, 3) + " " + lines[i] + " " + right
			}
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if w.stage() == stageBanner {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Practice out loud. Get graded.")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func reverseWave(w string) string {
	return strings.Repeat("(", len(w))
}

// pad left-pads s to n visible columns.
func pad(s string, n int) string {
	if gap := n - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
