package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/screens/history"
	"github.com/vistafly/interviewme/internal/screens/interview"
	"github.com/vistafly/interviewme/internal/store"
	"github.com/vistafly/interviewme/internal/ui/components"
	"github.com/vistafly/interviewme/internal/ui/layout"
)

// Stats summarises past interviews for the dashboard.
type Stats struct {
	Sessions  int
	BestPct   int
	LastGrade string
	LastPct   int
}

type statsLoadedMsg struct {
	Stats Stats
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	sessions      store.SessionRepo
	userID        string
	stats         Stats
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. newInterview builds a fresh interview for
// each run; sessions may be nil when history is unavailable.
func New(newInterview func() screen.Screen, sessions store.SessionRepo, userID string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START INTERVIEW", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newInterview()}
			}
		}},
		{Label: "HISTORY", Disabled: sessions == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(sessions, userID)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		sessions:      sessions,
		userID:        userID,
		mascotVariant: MascotIdle,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo, userID := h.sessions, h.userID
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		list, err := repo.ListSessions(context.Background(), store.QueryOpts{UserID: userID})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: ComputeStats(list)}
	}
}

// ComputeStats derives dashboard numbers from sessions listed newest first.
func ComputeStats(list []store.SavedSession) Stats {
	var st Stats
	st.Sessions = len(list)
	for i, s := range list {
		if i == 0 {
			st.LastGrade = s.Grade
			st.LastPct = s.Percentage
		}
		if s.Percentage > st.BestPct {
			st.BestPct = s.Percentage
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			h.stats = msg.Stats
			h.mascotVariant = mascotFor(msg.Stats)
		}
		return h, nil
	case interview.SavedMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.ChromeHeight
	compact := layout.IsCompact(width, height)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if compact && termHeight < 26 {
		sections = append(sections, renderArcadeMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
