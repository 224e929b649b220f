package interview

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vistafly/interviewme/internal/capture"
	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/report"
	"github.com/vistafly/interviewme/internal/screens/summary"
	"github.com/vistafly/interviewme/internal/session"
	"github.com/vistafly/interviewme/internal/ui/components"
	"github.com/vistafly/interviewme/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	if s.errMsg != "" || s.sess == nil {
		return renderError(width, s.errMsg)
	}
	if s.sess.Phase() == session.PhaseReview {
		return s.renderReview(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render(s.sess.Current().Text)))
	b.WriteString("\n\n")

	if s.sess.Phase() != session.PhaseFeedback {
		b.WriteString(s.renderTip(width))
		b.WriteString("\n\n")
	}

	switch s.sess.Phase() {
	case session.PhasePre:
		b.WriteString(s.renderPre(width))
	case session.PhaseSpeaking:
		b.WriteString(centered(width, theme.Accent, "Reading the question..."))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.NewKeyButton("enter", "Skip", true).View()))
	case session.PhaseListening:
		b.WriteString(s.renderListening(width))
	case session.PhaseFeedback:
		b.WriteString(s.renderFeedback(width))
	}

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Warning, s.notice))
	}
	return b.String()
}

func (s *InterviewScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.sess.Index()+1, s.sess.Total()))

	input := "keyboard"
	if s.mode == capture.ModeSpeech {
		input = "microphone"
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered  input: %s", s.sess.Answered(), input))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *InterviewScreen) renderTip(width int) string {
	tip := s.sess.Current().Tip
	if tip == "" {
		return ""
	}
	if !s.sess.ShowTip() {
		return centered(width, theme.TextDim, "[tab] show tip")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.ArcadeCyan).
			Italic(true).
			Render("Tip: "+tip))
}

func (s *InterviewScreen) renderPre(width int) string {
	var b strings.Builder
	b.WriteString(centered(width, theme.TextDim,
		fmt.Sprintf("You will have %s to answer.", report.FormatClock(s.sess.Budget()))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewKeyButton("enter", "Start", true).View()))
	return b.String()
}

func (s *InterviewScreen) renderListening(width int) string {
	var b strings.Builder

	remaining := s.sess.Remaining()
	clock := lipgloss.NewStyle().
		Foreground(theme.TimerColor(remaining)).
		Bold(true).
		Render(report.FormatClock(remaining))
	words := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d words", grading.WordCount(s.sess.Transcript())))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, clock+"    "+words))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewCountdownBar(remaining, s.sess.Budget(), min(width-8, 40)).View()))
	b.WriteString("\n\n")

	if s.rec != nil && s.rec.Mode() == capture.ModeSpeech {
		meter := components.NewLevelMeter(s.level, min(width-8, 40))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, meter.View()))
		b.WriteString("\n\n")

		transcript := s.sess.Transcript()
		if transcript == "" {
			transcript = "Listening..."
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().
				Width(min(width-8, 70)).
				Foreground(theme.Text).
				Render(transcript)))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			"Answer: "+s.input.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewKeyButton("enter", "Done", true).View()))
	return b.String()
}

func (s *InterviewScreen) renderFeedback(width int) string {
	rec, ok := s.sess.LastResult()
	if !ok {
		return ""
	}
	g := rec.Grade

	detail := fmt.Sprintf("%d of %d key points  •  %s  •  %d words",
		g.HitCount, g.TotalKeys, report.FormatClock(rec.Answer.ElapsedSeconds), rec.Answer.WordCount)
	if rec.Answer.Forced {
		detail += "  •  time ran out"
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ScoreCard(g.Letter, g.Percentage, detail, min(width-8, 64))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderKeys(rec)))
	b.WriteString("\n\n")

	next := "Next"
	if s.sess.Answered() == s.sess.Total() {
		next = "Review"
	}
	buttons := []components.KeyButton{
		components.NewKeyButton("r", "Retry", true),
		components.NewKeyButton("n", next, true),
		components.NewKeyButton("v", "Review now", s.sess.CanReviewEarly() && !s.sess.AllAnswered()),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.KeyButtonRow(buttons, false)))
	return b.String()
}

// renderKeys lists each key phrase as hit or missed.
func renderKeys(rec session.Record) string {
	hit := make(map[string]bool, len(rec.Grade.Hits))
	for _, h := range rec.Grade.Hits {
		hit[h] = true
	}

	var lines []string
	seen := make(map[string]bool)
	for _, k := range rec.Question.KeyPhrases {
		if seen[k] {
			continue
		}
		seen[k] = true
		if hit[k] {
			lines = append(lines, theme.Hit.Render("✓ "+k))
		} else {
			lines = append(lines, theme.Miss.Render("✗ "+k))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (s *InterviewScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Primary, "Interview review"))
	b.WriteString("\n\n")
	b.WriteString(summary.Render(s.preview(), -1, width))
	b.WriteString("\n")

	buttons := []components.KeyButton{
		components.NewKeyButton("c", "Continue", !s.sess.AllAnswered()),
		components.NewKeyButton("s", "Save & exit", true),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.KeyButtonRow(buttons, false)))
	return b.String()
}

func centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
