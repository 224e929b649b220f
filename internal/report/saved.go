package report

import (
	"time"
	"unicode/utf8"
)

// MaxSavedAnswerRunes caps how much of each answer is kept in a saved record.
const MaxSavedAnswerRunes = 200

// Meta describes the context a session ran in.
type Meta struct {
	SessionID string
	UserID    string
	Company   string
	JobTitle  string
	Date      time.Time
	Total     int // questions offered
}

// Saved is the persisted shape of a finished session.
type Saved struct {
	SessionID  string          `json:"session_id"`
	UserID     string          `json:"user_id,omitempty"`
	Date       time.Time       `json:"date"`
	Company    string          `json:"company"`
	JobTitle   string          `json:"job_title"`
	Percentage int             `json:"pct"`
	Grade      string          `json:"grade"`
	Count      int             `json:"count"`
	Total      int             `json:"total"`
	Questions  []SavedQuestion `json:"questions"`
}

// SavedQuestion is one answered question inside a Saved record.
type SavedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Grade      string `json:"grade"`
	Percentage int    `json:"pct"`
	Hits       int    `json:"hits"`
	TotalKeys  int    `json:"total"`
	TimeUsed   int    `json:"time_used"`
	WordCount  int    `json:"word_count"`
}

// NewSaved converts a summary into its persisted form.
func NewSaved(sum Summary, meta Meta) Saved {
	s := Saved{
		SessionID:  meta.SessionID,
		UserID:     meta.UserID,
		Date:       meta.Date.UTC(),
		Company:    meta.Company,
		JobTitle:   meta.JobTitle,
		Percentage: sum.OverallPercentage,
		Grade:      sum.OverallGrade,
		Count:      sum.Answered,
		Total:      meta.Total,
		Questions:  make([]SavedQuestion, 0, len(sum.Questions)),
	}
	for _, q := range sum.Questions {
		s.Questions = append(s.Questions, SavedQuestion{
			Question:   q.Question,
			Answer:     truncateRunes(q.Answer, MaxSavedAnswerRunes),
			Grade:      q.Letter,
			Percentage: q.Percentage,
			Hits:       q.Hits,
			TotalKeys:  q.TotalKeys,
			TimeUsed:   q.ElapsedSeconds,
			WordCount:  q.WordCount,
		})
	}
	return s
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
