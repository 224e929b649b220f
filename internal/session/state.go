package session

import (
	"time"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/question"
)

// DefaultAnswerBudget is how long the candidate has to answer one question.
const DefaultAnswerBudget = 120 * time.Second

// Phase is the current step of the per-question interaction.
type Phase int

const (
	PhasePre       Phase = iota // Question selected, nothing captured yet
	PhaseSpeaking               // Question being read aloud
	PhaseListening              // Countdown running, answer being captured
	PhaseFeedback               // Showing the grade for the last answer
	PhaseReview                 // Aggregate view of answered questions
	PhaseClosed                 // Session finalized or abandoned
)

func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhaseSpeaking:
		return "speaking"
	case PhaseListening:
		return "listening"
	case PhaseFeedback:
		return "feedback"
	case PhaseReview:
		return "review"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Token identifies one narration or countdown run. Signals carrying a token
// from an earlier run are ignored. The zero Token never matches.
type Token uint64

// TickOutcome reports what a countdown tick did.
type TickOutcome int

const (
	TickStale   TickOutcome = iota // Tick from a finished countdown; ignored
	TickCounted                    // One second consumed
	TickExpired                    // Budget exhausted; answer force-submitted
	TickFailed                     // Budget exhausted; forced answer could not be graded
)

// Config holds the fixed parameters of a session.
type Config struct {
	// AnswerBudget is the listening countdown. Rounded down to whole seconds.
	AnswerBudget time.Duration

	// Scale maps percentages to letter grades.
	Scale grading.Scale
}

// DefaultConfig returns the standard session parameters.
func DefaultConfig() Config {
	return Config{
		AnswerBudget: DefaultAnswerBudget,
		Scale:        grading.DefaultScale,
	}
}

// AnswerAttempt is one submitted answer.
type AnswerAttempt struct {
	QuestionIndex  int    `json:"question_index"`
	RawText        string `json:"raw_text"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	WordCount      int    `json:"word_count"`

	// Forced is true when the countdown expired before the candidate finished.
	Forced bool `json:"forced"`
}

// Record is the graded result for one question.
type Record struct {
	Question question.Question   `json:"question"`
	Answer   AnswerAttempt       `json:"answer"`
	Grade    grading.GradeResult `json:"grade"`
}
