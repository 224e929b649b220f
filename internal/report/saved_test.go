package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/session"
)

func TestNewSaved_Fields(t *testing.T) {
	records := []session.Record{record(0, 83, 5, 6, 30, 12)}
	sum := Summarize(records, grading.DefaultScale)
	date := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("X", 3600))

	saved := NewSaved(sum, Meta{
		SessionID: "s-1",
		UserID:    "u-1",
		Company:   "Acme",
		JobTitle:  "Frontend Developer",
		Date:      date,
		Total:     8,
	})

	assert.Equal(t, "s-1", saved.SessionID)
	assert.Equal(t, 83, saved.Percentage)
	assert.Equal(t, "B", saved.Grade)
	assert.Equal(t, 1, saved.Count)
	assert.Equal(t, 8, saved.Total)
	assert.Equal(t, time.UTC, saved.Date.Location())
	require.Len(t, saved.Questions, 1)
	assert.Equal(t, 30, saved.Questions[0].TimeUsed)
	assert.Equal(t, 6, saved.Questions[0].TotalKeys)
}

func TestNewSaved_TruncatesAnswers(t *testing.T) {
	rec := record(0, 50, 1, 2, 10, 1)
	rec.Answer.RawText = strings.Repeat("é", 250)
	sum := Summarize([]session.Record{rec}, grading.DefaultScale)

	saved := NewSaved(sum, Meta{Total: 1})

	require.Len(t, saved.Questions, 1)
	assert.Equal(t, MaxSavedAnswerRunes, utf8.RuneCountInString(saved.Questions[0].Answer))
	assert.True(t, utf8.ValidString(saved.Questions[0].Answer))
}

func TestNewSaved_JSONOmitsEmptyUser(t *testing.T) {
	saved := NewSaved(Summarize(nil, grading.DefaultScale), Meta{Total: 3})
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "user_id")
	assert.Contains(t, string(data), `"grade":"F"`)
}
