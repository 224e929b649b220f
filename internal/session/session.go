package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/question"
)

// ErrIllegalTransition is returned when an action is not allowed in the
// current phase. The session is left unchanged.
var ErrIllegalTransition = errors.New("illegal transition")

// Session sequences a fixed question list through the interview phases and
// owns the graded results. It is driven by discrete events from its host
// and is not safe for concurrent use.
type Session struct {
	id        string
	questions []question.Question
	grader    *grading.Grader
	budget    int // seconds

	phase      Phase
	index      int
	records    []Record
	remaining  int
	transcript string
	showTip    bool

	lastToken Token
	narration Token
	countdown Token
}

// New creates a session over questions. The question list is validated
// up front so grading can never meet an empty rubric.
func New(id string, questions []question.Question, cfg Config) (*Session, error) {
	if err := question.Validate(questions); err != nil {
		return nil, fmt.Errorf("invalid questions: %w", err)
	}
	budget := int(cfg.AnswerBudget.Seconds())
	if budget <= 0 {
		return nil, fmt.Errorf("answer budget must be at least one second, got %s", cfg.AnswerBudget)
	}

	qs := make([]question.Question, len(questions))
	copy(qs, questions)

	return &Session{
		id:        id,
		questions: qs,
		grader:    grading.NewGrader(cfg.Scale),
		budget:    budget,
		phase:     PhasePre,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the current question index.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Budget returns the answer budget in seconds.
func (s *Session) Budget() int { return s.budget }

// Current returns the current question.
func (s *Session) Current() question.Question { return s.questions[s.index] }

// Questions returns a copy of the question list.
func (s *Session) Questions() []question.Question {
	out := make([]question.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Remaining returns the seconds left on the countdown. It is only
// meaningful while listening.
func (s *Session) Remaining() int { return s.remaining }

// Transcript returns the text captured so far for the current answer.
func (s *Session) Transcript() string { return s.transcript }

// ShowTip reports whether the current tip is revealed.
func (s *Session) ShowTip() bool { return s.showTip }

// CountdownToken returns the token of the running countdown, or zero.
func (s *Session) CountdownToken() Token { return s.countdown }

// NarrationToken returns the token of the in-flight narration, or zero.
func (s *Session) NarrationToken() Token { return s.narration }

// Records returns a copy of the graded results ordered by question index.
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Answered returns how many questions have a graded result.
func (s *Session) Answered() int { return len(s.records) }

// AllAnswered reports whether every question has a graded result.
func (s *Session) AllAnswered() bool { return len(s.records) == len(s.questions) }

// LastResult returns the record for the current question, if graded.
func (s *Session) LastResult() (Record, bool) {
	i := s.recordIndex(s.index)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i], true
}

// LastGrade returns the grade of the current question's answer, if any.
func (s *Session) LastGrade() (grading.GradeResult, bool) {
	rec, ok := s.LastResult()
	return rec.Grade, ok
}

// CanReviewEarly reports whether ReviewNow is currently allowed.
func (s *Session) CanReviewEarly() bool {
	return s.phase == PhaseFeedback && len(s.records) > 1
}

// ToggleTip shows or hides the current question's tip.
func (s *Session) ToggleTip() {
	s.showTip = !s.showTip
}

// Start begins the current question: pre -> speaking. The returned token
// identifies the narration run and must accompany NarrationDone.
func (s *Session) Start() (Token, error) {
	if s.phase != PhasePre {
		return 0, s.illegal("start")
	}
	s.transcript = ""
	s.narration = s.nextToken()
	s.phase = PhaseSpeaking
	return s.narration, nil
}

// NarrationDone reports that narration tok finished on its own. Signals
// for a narration that was skipped or superseded are ignored. It returns
// the countdown token and true when listening started.
func (s *Session) NarrationDone(tok Token) (Token, bool) {
	if s.phase != PhaseSpeaking || tok == 0 || tok != s.narration {
		return 0, false
	}
	return s.beginListening(), true
}

// SkipNarration moves straight to listening without waiting for
// narration to finish. Skipping when nothing is being narrated is a no-op.
func (s *Session) SkipNarration() (Token, bool) {
	if s.phase != PhaseSpeaking {
		return 0, false
	}
	return s.beginListening(), true
}

func (s *Session) beginListening() Token {
	s.narration = 0
	s.remaining = s.budget
	s.countdown = s.nextToken()
	s.phase = PhaseListening
	return s.countdown
}

// Tick consumes one second of countdown tok. When the budget runs out the
// captured transcript is force-submitted and the session moves to feedback.
// Ticks for any countdown other than the running one are stale.
//
// If the forced submission cannot be graded, Tick returns TickFailed with
// the error. The countdown is stopped and the session stays in listening.
func (s *Session) Tick(tok Token) (TickOutcome, error) {
	if s.phase != PhaseListening || tok == 0 || tok != s.countdown {
		return TickStale, nil
	}
	s.remaining--
	if s.remaining > 0 {
		return TickCounted, nil
	}
	s.remaining = 0
	if _, err := s.submit(s.transcript, true); err != nil {
		s.countdown = 0
		return TickFailed, fmt.Errorf("forced submission: %w", err)
	}
	return TickExpired, nil
}

// UpdateTranscript replaces the captured text for the current answer.
func (s *Session) UpdateTranscript(text string) error {
	if s.phase != PhaseListening {
		return s.illegal("update transcript")
	}
	s.transcript = text
	return nil
}

// Finish submits finalText as the answer: listening -> feedback.
func (s *Session) Finish(finalText string) (Record, error) {
	if s.phase != PhaseListening {
		return Record{}, s.illegal("finish")
	}
	return s.submit(finalText, false)
}

func (s *Session) submit(text string, forced bool) (Record, error) {
	q := s.questions[s.index]
	grade, err := s.grader.Grade(text, q.KeyPhrases)
	if err != nil {
		return Record{}, fmt.Errorf("grade question %d: %w", s.index+1, err)
	}

	elapsed := s.budget - s.remaining
	if forced {
		elapsed = s.budget
	}

	rec := Record{
		Question: q,
		Answer: AnswerAttempt{
			QuestionIndex:  s.index,
			RawText:        text,
			ElapsedSeconds: elapsed,
			WordCount:      grading.WordCount(text),
			Forced:         forced,
		},
		Grade: grade,
	}
	s.transcript = text
	s.countdown = 0
	s.upsert(rec)
	s.phase = PhaseFeedback
	return rec, nil
}

// Retry discards the current question's result and returns to pre for the
// same question.
func (s *Session) Retry() error {
	if s.phase != PhaseFeedback {
		return s.illegal("retry")
	}
	if i := s.recordIndex(s.index); i >= 0 {
		s.records = append(s.records[:i], s.records[i+1:]...)
	}
	s.resetQuestion()
	s.phase = PhasePre
	return nil
}

// Next advances to the next unanswered question, or to review when every
// question has a result.
func (s *Session) Next() error {
	if s.phase != PhaseFeedback {
		return s.illegal("next")
	}
	s.advance()
	return nil
}

// ReviewNow jumps to review before all questions are answered. It requires
// more than one answered question.
func (s *Session) ReviewNow() error {
	if !s.CanReviewEarly() {
		return s.illegal("review now")
	}
	s.phase = PhaseReview
	return nil
}

// Resume leaves review for the next unanswered question.
func (s *Session) Resume() error {
	if s.phase != PhaseReview || s.AllAnswered() {
		return s.illegal("resume")
	}
	s.advance()
	return nil
}

// Finalize closes the session from review and returns its results for
// reporting and persistence.
func (s *Session) Finalize() ([]Record, error) {
	if s.phase != PhaseReview {
		return nil, s.illegal("finalize")
	}
	s.closeOut()
	return s.Records(), nil
}

// Abandon closes the session from any phase. Any running countdown or
// narration is invalidated. It returns the phase the session was in.
func (s *Session) Abandon() Phase {
	prev := s.phase
	if prev != PhaseClosed {
		s.closeOut()
	}
	return prev
}

func (s *Session) closeOut() {
	s.countdown = 0
	s.narration = 0
	s.phase = PhaseClosed
}

func (s *Session) advance() {
	next := s.nextUnanswered()
	if next < 0 {
		s.phase = PhaseReview
		return
	}
	s.index = next
	s.resetQuestion()
	s.phase = PhasePre
}

func (s *Session) resetQuestion() {
	s.transcript = ""
	s.remaining = 0
	s.showTip = false
	s.countdown = 0
	s.narration = 0
}

// nextUnanswered returns the first unanswered index after the current one,
// wrapping to the start, or -1.
func (s *Session) nextUnanswered() int {
	n := len(s.questions)
	for step := 1; step <= n; step++ {
		i := (s.index + step) % n
		if s.recordIndex(i) < 0 {
			return i
		}
	}
	return -1
}

func (s *Session) recordIndex(questionIndex int) int {
	for i, r := range s.records {
		if r.Answer.QuestionIndex == questionIndex {
			return i
		}
	}
	return -1
}

// upsert replaces the record for the same question or inserts it in
// question order.
func (s *Session) upsert(rec Record) {
	if i := s.recordIndex(rec.Answer.QuestionIndex); i >= 0 {
		s.records[i] = rec
		return
	}
	s.records = append(s.records, rec)
	sort.SliceStable(s.records, func(a, b int) bool {
		return s.records[a].Answer.QuestionIndex < s.records[b].Answer.QuestionIndex
	})
}

func (s *Session) nextToken() Token {
	s.lastToken++
	return s.lastToken
}

func (s *Session) illegal(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrIllegalTransition, action, s.phase)
}
