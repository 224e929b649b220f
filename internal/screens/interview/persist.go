package interview

import (
	"context"
	"encoding/json"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vistafly/interviewme/internal/report"
	"github.com/vistafly/interviewme/internal/session"
	"github.com/vistafly/interviewme/internal/store"
)

// persistTimeout bounds each background store write.
const persistTimeout = 5 * time.Second

// persist runs write in the background. Failures are logged and never
// reach the session.
func (s *InterviewScreen) persist(what string, write func(ctx context.Context) error) tea.Cmd {
	log := s.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := write(ctx)
		if err != nil {
			log.Warn("persist failed", "what", what, "error", err)
		}
		return persistedMsg{What: what, Err: err}
	}
}

func (s *InterviewScreen) sessionEvent(action string) tea.Cmd {
	if s.deps.Events == nil {
		return nil
	}
	data := store.SessionEventData{
		SessionID:     s.sess.ID(),
		Action:        action,
		QuestionIndex: s.sess.Index(),
		Answered:      s.sess.Answered(),
		Total:         s.sess.Total(),
	}
	events := s.deps.Events
	return s.persist("session event "+action, func(ctx context.Context) error {
		return events.AppendSessionEvent(ctx, data)
	})
}

// answerEvent logs a graded answer and records it.
func (s *InterviewScreen) answerEvent(rec session.Record) tea.Cmd {
	s.log.Info("answer graded",
		"question", rec.Answer.QuestionIndex,
		"hits", rec.Grade.HitCount,
		"total", rec.Grade.TotalKeys,
		"pct", rec.Grade.Percentage,
		"grade", rec.Grade.Letter,
		"forced", rec.Answer.Forced,
	)
	if s.deps.Events == nil {
		return nil
	}
	data := store.AnswerEventData{
		SessionID:     s.sess.ID(),
		QuestionIndex: rec.Answer.QuestionIndex,
		QuestionText:  rec.Question.Text,
		AnswerText:    rec.Answer.RawText,
		ElapsedSecs:   rec.Answer.ElapsedSeconds,
		WordCount:     rec.Answer.WordCount,
		Hits:          rec.Grade.HitCount,
		TotalKeys:     rec.Grade.TotalKeys,
		Percentage:    rec.Grade.Percentage,
		Grade:         rec.Grade.Letter,
		Forced:        rec.Answer.Forced,
	}
	events := s.deps.Events
	return s.persist("answer event", func(ctx context.Context) error {
		return events.AppendAnswerEvent(ctx, data)
	})
}

// meta describes this run for the saved record.
func (s *InterviewScreen) meta() report.Meta {
	company, jobTitle := s.deps.Company, s.deps.JobTitle
	if company == "" && s.deps.Bank != nil {
		company = s.deps.Bank.Company
	}
	if jobTitle == "" && s.deps.Bank != nil {
		jobTitle = s.deps.Bank.JobTitle
	}
	return report.Meta{
		SessionID: s.sess.ID(),
		UserID:    s.deps.UserID,
		Company:   company,
		JobTitle:  jobTitle,
		Date:      s.deps.Now(),
		Total:     s.sess.Total(),
	}
}

// preview builds the report for the records answered so far.
func (s *InterviewScreen) preview() report.Saved {
	sum := report.Summarize(s.sess.Records(), s.deps.Config.Scale)
	return report.NewSaved(sum, s.meta())
}

// saveCmd stores the finished interview. The result is broadcast as a
// SavedMsg whether or not the write succeeded.
func (s *InterviewScreen) saveCmd(records []session.Record) tea.Cmd {
	sum := report.Summarize(records, s.deps.Config.Scale)
	saved := report.NewSaved(sum, s.meta())
	id := saved.SessionID

	repo, log := s.deps.Sessions, s.log
	if repo == nil {
		return func() tea.Msg { return SavedMsg{SessionID: id} }
	}

	data, err := json.Marshal(saved)
	if err != nil {
		log.Error("encode interview failed", "error", err)
		return func() tea.Msg { return SavedMsg{SessionID: id, Err: err} }
	}
	row := &store.SavedSession{
		Timestamp:  saved.Date,
		SessionID:  id,
		UserID:     saved.UserID,
		Company:    saved.Company,
		JobTitle:   saved.JobTitle,
		Percentage: saved.Percentage,
		Grade:      saved.Grade,
		Answered:   saved.Count,
		Total:      saved.Total,
		Data:       data,
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := repo.SaveSession(ctx, row); err != nil {
			log.Error("save interview failed", "error", err)
			return SavedMsg{SessionID: id, Err: err}
		}
		log.Info("interview saved", "pct", saved.Percentage, "grade", saved.Grade,
			"answered", saved.Count, "total", saved.Total)
		return SavedMsg{SessionID: id}
	}
}
