package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/screens/summary"
	"github.com/vistafly/interviewme/internal/store"
	"github.com/vistafly/interviewme/internal/ui/layout"
	"github.com/vistafly/interviewme/internal/ui/theme"
)

// listLimit caps how many past interviews are shown.
const listLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SavedSession
	Err      error
}

// HistoryScreen lists past interviews.
type HistoryScreen struct {
	repo     store.SessionRepo
	userID   string
	sessions []store.SavedSession
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. An empty userID lists every user.
func New(repo store.SessionRepo, userID string) *HistoryScreen {
	return &HistoryScreen{
		repo:   repo,
		userID: userID,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userID := s.repo, s.userID
	return func() tea.Msg {
		sessions, err := repo.ListSessions(context.Background(), store.QueryOpts{
			Limit:  listLimit,
			UserID: userID,
		})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.openSelected()
		}
	}
	return s, nil
}

func (s *HistoryScreen) openSelected() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	detail, err := summary.FromStored(s.sessions[s.selected])
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No interviews yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	day := ""
	for i, sess := range s.sessions {
		ts := sess.Timestamp.Local()
		if d := ts.Format("Monday, Jan 02 2006"); d != day {
			if day != "" {
				b.WriteString("\n")
			}
			day = d
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(day)))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i, width)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderRow draws one session: time, grade, score with its change from the
// previous (older) session, answered count and role.
func (s *HistoryScreen) renderRow(i, width int) string {
	sess := s.sessions[i]

	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	role := summary.RoleLine(sess.JobTitle, sess.Company)
	if role == "" {
		role = "Practice"
	}
	if maxRole := width - 48; maxRole > 3 && len([]rune(role)) > maxRole {
		role = string([]rune(role)[:maxRole-3]) + "..."
	}

	gradeStyle := lipgloss.NewStyle().Foreground(theme.GradeColor(sess.Grade))
	textStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		gradeStyle = gradeStyle.Bold(true)
		textStyle = textStyle.Bold(true)
	}

	return textStyle.Render(prefix+sess.Timestamp.Local().Format("15:04")+"  ") +
		gradeStyle.Render(fmt.Sprintf("%-2s %3d%%", sess.Grade, sess.Percentage)) +
		" " + trend(s.sessions, i) + "  " +
		textStyle.Render(fmt.Sprintf("%d/%d answered  %s", sess.Answered, sess.Total, role))
}

// trend compares session i with the next older one. sessions is newest
// first.
func trend(sessions []store.SavedSession, i int) string {
	if i+1 >= len(sessions) {
		return " "
	}
	diff := sessions[i].Percentage - sessions[i+1].Percentage
	switch {
	case diff > 0:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("↑")
	case diff < 0:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("↓")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("=")
	}
}
