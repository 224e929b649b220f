package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/report"
	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/store"
	"github.com/vistafly/interviewme/internal/ui/layout"
	"github.com/vistafly/interviewme/internal/ui/theme"
)

// SummaryScreen displays a finished interview.
type SummaryScreen struct {
	saved    report.Saved
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(saved report.Saved) *SummaryScreen {
	return &SummaryScreen{saved: saved}
}

// FromStored decodes a stored session into a SummaryScreen.
func FromStored(ss store.SavedSession) (*SummaryScreen, error) {
	var saved report.Saved
	if err := json.Unmarshal(ss.Data, &saved); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", ss.SessionID, err)
	}
	return New(saved), nil
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.saved.Questions)-1 {
				s.selected++
			}
		case "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Render(s.saved, s.selected, width))

	if len(s.saved.Questions) > 0 {
		q := s.saved.Questions[s.selected]
		b.WriteString("\n")
		b.WriteString(RenderAnswer(q, width))
	}
	return b.String()
}

// Render draws the overall grade followed by one line per answered
// question. selected highlights a row; pass -1 for none.
func Render(saved report.Saved, selected, width int) string {
	var b strings.Builder

	center := func(s string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s))
		b.WriteString("\n")
	}

	if role := RoleLine(saved.JobTitle, saved.Company); role != "" {
		center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(role))
	}

	grade := lipgloss.NewStyle().
		Foreground(theme.GradeColor(saved.Grade)).
		Bold(true).
		Render(saved.Grade)
	center(fmt.Sprintf("%s  %s", grade,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("%d%%", saved.Percentage))))

	center(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d questions answered", saved.Count, saved.Total)))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", min(width-8, 60)))
	center(divider)

	for i, q := range saved.Questions {
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%sQ%-2d %-2s %3d%%  %d/%d keys  %s  %d words",
			prefix, i+1, q.Grade, q.Percentage, q.Hits, q.TotalKeys,
			report.FormatClock(q.TimeUsed), q.WordCount)

		style := lipgloss.NewStyle().Foreground(theme.GradeColor(q.Grade))
		if i == selected {
			style = style.Bold(true)
		}
		center(style.Render(line))
	}
	return b.String()
}

// RenderAnswer shows one question with the saved answer.
func RenderAnswer(q report.SavedQuestion, width int) string {
	w := min(width-8, 70)
	text := lipgloss.NewStyle().Width(w).Foreground(theme.Text).Bold(true).Render(q.Question)

	answer := q.Answer
	if answer == "" {
		answer = "(no answer)"
	}
	ans := lipgloss.NewStyle().Width(w).Foreground(theme.TextDim).Italic(true).Render(answer)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text+"\n\n"+ans)
}

// RoleLine formats "title @ company", leaving out whichever is empty.
func RoleLine(jobTitle, company string) string {
	switch {
	case jobTitle != "" && company != "":
		return jobTitle + " @ " + company
	case jobTitle != "":
		return jobTitle
	default:
		return company
	}
}
