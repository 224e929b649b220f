package report

import (
	"math"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/session"
)

// Summary is the aggregate view of a session's graded answers.
type Summary struct {
	OverallPercentage int
	OverallGrade      string
	Answered          int
	TotalWords        int
	TotalTimeSeconds  int
	Questions         []QuestionResult
}

// QuestionResult is one row of the per-question breakdown.
type QuestionResult struct {
	Index          int
	Question       string
	Answer         string
	Percentage     int
	Letter         string
	Hits           int
	TotalKeys      int
	ElapsedSeconds int
	WordCount      int
	Forced         bool
}

// Summarize builds a Summary from records. It does not modify records and
// returns the same result for the same input. With no records the overall
// score is 0 and the grade is the failing letter.
func Summarize(records []session.Record, scale grading.Scale) Summary {
	if len(scale) == 0 {
		scale = grading.DefaultScale
	}

	sum := Summary{
		Answered:  len(records),
		Questions: make([]QuestionResult, 0, len(records)),
	}

	var pctTotal int
	for _, r := range records {
		pctTotal += r.Grade.Percentage
		sum.TotalWords += r.Answer.WordCount
		sum.TotalTimeSeconds += r.Answer.ElapsedSeconds

		sum.Questions = append(sum.Questions, QuestionResult{
			Index:          r.Answer.QuestionIndex,
			Question:       r.Question.Text,
			Answer:         r.Answer.RawText,
			Percentage:     r.Grade.Percentage,
			Letter:         r.Grade.Letter,
			Hits:           r.Grade.HitCount,
			TotalKeys:      r.Grade.TotalKeys,
			ElapsedSeconds: r.Answer.ElapsedSeconds,
			WordCount:      r.Answer.WordCount,
			Forced:         r.Answer.Forced,
		})
	}

	if len(records) > 0 {
		sum.OverallPercentage = int(math.Round(float64(pctTotal) / float64(len(records))))
	}
	sum.OverallGrade = scale.Letter(sum.OverallPercentage)
	return sum
}
