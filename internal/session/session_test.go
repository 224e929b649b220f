package session

import (
	"errors"
	"testing"
	"time"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/question"
)

func testQuestions() []question.Question {
	return []question.Question{
		{
			Text:       "Explain JavaScript closures.",
			Tip:        "Mention scope and a practical use.",
			KeyPhrases: []string{"closure", "scope", "function", "variable", "private", "callback"},
		},
		{
			Text:       "What is the event loop?",
			KeyPhrases: []string{"call stack", "queue", "asynchronous"},
		},
	}
}

func testSession(t *testing.T) *Session {
	t.Helper()
	s, err := New("test-session-id", testQuestions(), DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// listen drives the session from pre into listening via narration.
func listen(t *testing.T, s *Session) Token {
	t.Helper()
	narr, err := s.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	tok, ok := s.NarrationDone(narr)
	if !ok {
		t.Fatal("NarrationDone did not start listening")
	}
	return tok
}

func tickN(s *Session, tok Token, n int) {
	for range n {
		s.Tick(tok)
	}
}

func TestNew_RejectsInvalidQuestions(t *testing.T) {
	if _, err := New("id", nil, DefaultConfig()); !errors.Is(err, question.ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}

	bad := []question.Question{{Text: "q", KeyPhrases: nil}}
	if _, err := New("id", bad, DefaultConfig()); !errors.Is(err, question.ErrInvalidQuestion) {
		t.Errorf("err = %v, want ErrInvalidQuestion", err)
	}
}

func TestNew_RejectsZeroBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnswerBudget = 500 * time.Millisecond
	if _, err := New("id", testQuestions(), cfg); err == nil {
		t.Error("expected error for sub-second budget")
	}
}

func TestNew_InitialState(t *testing.T) {
	s := testSession(t)
	if s.Phase() != PhasePre {
		t.Errorf("Phase = %v, want pre", s.Phase())
	}
	if s.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.Index())
	}
	if s.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", s.Answered())
	}
	if s.Budget() != 120 {
		t.Errorf("Budget = %d, want 120", s.Budget())
	}
}

func TestWalkthrough_RetryAndTimeout(t *testing.T) {
	s := testSession(t)

	// Q1: three of six key phrases after 45 seconds.
	tok := listen(t, s)
	tickN(s, tok, 45)
	rec, err := s.Finish("A closure keeps its scope so the function can reach it.")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if rec.Grade.Percentage != 50 || rec.Grade.Letter != "F" {
		t.Errorf("first attempt = %d%% %s, want 50%% F", rec.Grade.Percentage, rec.Grade.Letter)
	}
	if rec.Answer.ElapsedSeconds != 45 {
		t.Errorf("ElapsedSeconds = %d, want 45", rec.Answer.ElapsedSeconds)
	}
	if s.Phase() != PhaseFeedback {
		t.Fatalf("Phase = %v, want feedback", s.Phase())
	}

	// Retry replaces the result rather than adding one.
	if err := s.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if s.Answered() != 0 {
		t.Errorf("Answered after retry = %d, want 0", s.Answered())
	}
	if s.Phase() != PhasePre || s.Index() != 0 {
		t.Errorf("after retry phase=%v index=%d, want pre/0", s.Phase(), s.Index())
	}

	tok = listen(t, s)
	tickN(s, tok, 30)
	rec, err = s.Finish("A closure is a function that keeps a private variable from its scope.")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if rec.Grade.Percentage != 83 || rec.Grade.Letter != "B" {
		t.Errorf("second attempt = %d%% %s, want 83%% B", rec.Grade.Percentage, rec.Grade.Letter)
	}
	if s.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", s.Answered())
	}

	// Q2: the timer runs out with nothing captured.
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s.Index() != 1 {
		t.Fatalf("Index = %d, want 1", s.Index())
	}
	tok = listen(t, s)
	tickN(s, tok, 119)
	if s.Phase() != PhaseListening || s.Remaining() != 1 {
		t.Fatalf("phase=%v remaining=%d, want listening/1", s.Phase(), s.Remaining())
	}
	if got, err := s.Tick(tok); err != nil || got != TickExpired {
		t.Fatalf("final Tick = %v, %v, want TickExpired", got, err)
	}

	last, ok := s.LastResult()
	if !ok {
		t.Fatal("expected a result for the timed-out question")
	}
	if !last.Answer.Forced || last.Answer.ElapsedSeconds != 120 {
		t.Errorf("forced=%v elapsed=%d, want true/120", last.Answer.Forced, last.Answer.ElapsedSeconds)
	}
	if last.Grade.Percentage != 0 || last.Grade.Letter != "F" {
		t.Errorf("timeout grade = %d%% %s, want 0%% F", last.Grade.Percentage, last.Grade.Letter)
	}

	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s.Phase() != PhaseReview {
		t.Fatalf("Phase = %v, want review", s.Phase())
	}
	records, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if s.Phase() != PhaseClosed {
		t.Errorf("Phase = %v, want closed", s.Phase())
	}
}

func TestTick_ExpiresExactlyOnce(t *testing.T) {
	s := testSession(t)
	tok := listen(t, s)
	if err := s.UpdateTranscript("the call stack"); err != nil {
		t.Fatalf("UpdateTranscript: %v", err)
	}

	expired := 0
	for range 200 {
		if got, _ := s.Tick(tok); got == TickExpired {
			expired++
		}
	}
	if expired != 1 {
		t.Errorf("expired %d times, want 1", expired)
	}
	if s.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", s.Answered())
	}
	last, _ := s.LastResult()
	if last.Answer.RawText != "the call stack" {
		t.Errorf("forced answer = %q, want captured transcript", last.Answer.RawText)
	}
}

func TestTick_NeverNegative(t *testing.T) {
	s := testSession(t)
	tok := listen(t, s)
	tickN(s, tok, 500)
	if s.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", s.Remaining())
	}
}

func TestTick_ForcedSubmissionGradeError(t *testing.T) {
	s := testSession(t)
	tok := listen(t, s)
	// Break the rubric after validation so grading the forced answer fails.
	s.questions[s.index].KeyPhrases = nil

	tickN(s, tok, 119)
	got, err := s.Tick(tok)
	if got != TickFailed {
		t.Fatalf("final Tick = %v, want TickFailed", got)
	}
	if !errors.Is(err, grading.ErrEmptyRubric) {
		t.Fatalf("err = %v, want ErrEmptyRubric", err)
	}
	if s.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", s.Answered())
	}
	if got, err := s.Tick(tok); got != TickStale || err != nil {
		t.Errorf("Tick after failure = %v, %v, want TickStale", got, err)
	}
	if s.Phase() != PhaseListening {
		t.Errorf("Phase = %v, want listening", s.Phase())
	}
}

func TestTick_StaleAfterFinish(t *testing.T) {
	s := testSession(t)
	tok := listen(t, s)
	s.Tick(tok)
	if _, err := s.Finish("closure"); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if got, _ := s.Tick(tok); got != TickStale {
		t.Errorf("Tick after finish = %v, want TickStale", got)
	}
	if s.Phase() != PhaseFeedback {
		t.Errorf("Phase = %v, want feedback", s.Phase())
	}
}

func TestTick_OldCountdownIgnoredAfterRetry(t *testing.T) {
	s := testSession(t)
	old := listen(t, s)
	if _, err := s.Finish("closure"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := s.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	cur := listen(t, s)
	if cur == old {
		t.Fatal("expected a fresh countdown token")
	}

	for range 200 {
		if got, _ := s.Tick(old); got != TickStale {
			t.Fatalf("old Tick = %v, want TickStale", got)
		}
	}
	if s.Remaining() != 120 {
		t.Errorf("Remaining = %d, want 120", s.Remaining())
	}
}

func TestSkipNarration(t *testing.T) {
	s := testSession(t)
	narr, err := s.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	tok, ok := s.SkipNarration()
	if !ok {
		t.Fatal("SkipNarration did not start listening")
	}
	if s.Phase() != PhaseListening {
		t.Errorf("Phase = %v, want listening", s.Phase())
	}

	// The late completion signal and a second skip are no-ops.
	if _, ok := s.NarrationDone(narr); ok {
		t.Error("late NarrationDone should be ignored")
	}
	if _, ok := s.SkipNarration(); ok {
		t.Error("second SkipNarration should be a no-op")
	}
	if s.CountdownToken() != tok {
		t.Error("countdown token changed after no-op signals")
	}
}

func TestIllegalTransitions(t *testing.T) {
	s := testSession(t)

	tests := []struct {
		name string
		do   func() error
	}{
		{"finish in pre", func() error { _, err := s.Finish("x"); return err }},
		{"retry in pre", s.Retry},
		{"next in pre", s.Next},
		{"review in pre", s.ReviewNow},
		{"resume in pre", s.Resume},
		{"finalize in pre", func() error { _, err := s.Finalize(); return err }},
		{"transcript in pre", func() error { return s.UpdateTranscript("x") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.do()
			if !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("err = %v, want ErrIllegalTransition", err)
			}
			if s.Phase() != PhasePre {
				t.Errorf("Phase = %v, want pre (unchanged)", s.Phase())
			}
		})
	}
}

func TestStart_OnlyFromPre(t *testing.T) {
	s := testSession(t)
	listen(t, s)
	if _, err := s.Start(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}
	if s.Phase() != PhaseListening {
		t.Errorf("Phase = %v, want listening", s.Phase())
	}
}

func TestReviewNow_RequiresTwoAnswers(t *testing.T) {
	qs := append(testQuestions(), question.Question{
		Text:       "Describe REST.",
		KeyPhrases: []string{"stateless", "resource"},
	})
	s, err := New("id", qs, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	listen(t, s)
	s.Finish("closure")
	if s.CanReviewEarly() {
		t.Error("CanReviewEarly with one answer")
	}
	if err := s.ReviewNow(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("ReviewNow with one answer: err = %v", err)
	}

	s.Next()
	listen(t, s)
	s.Finish("the queue")
	if err := s.ReviewNow(); err != nil {
		t.Fatalf("ReviewNow: %v", err)
	}
	if s.Phase() != PhaseReview {
		t.Fatalf("Phase = %v, want review", s.Phase())
	}

	// Resume picks up the unanswered third question.
	if err := s.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if s.Phase() != PhasePre || s.Index() != 2 {
		t.Errorf("phase=%v index=%d, want pre/2", s.Phase(), s.Index())
	}
}

func TestResume_NotAllowedWhenComplete(t *testing.T) {
	s := testSession(t)
	listen(t, s)
	s.Finish("closure")
	s.Next()
	listen(t, s)
	s.Finish("queue")
	s.Next()

	if err := s.Resume(); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}
}

func TestAbandon_InvalidatesCountdown(t *testing.T) {
	s := testSession(t)
	tok := listen(t, s)

	if prev := s.Abandon(); prev != PhaseListening {
		t.Errorf("Abandon returned %v, want listening", prev)
	}
	if s.Phase() != PhaseClosed {
		t.Errorf("Phase = %v, want closed", s.Phase())
	}
	if got, _ := s.Tick(tok); got != TickStale {
		t.Errorf("Tick after abandon = %v, want TickStale", got)
	}
	if prev := s.Abandon(); prev != PhaseClosed {
		t.Errorf("second Abandon returned %v, want closed", prev)
	}
}

func TestRecordsOrderedByQuestion(t *testing.T) {
	s := testSession(t)
	listen(t, s)
	s.Finish("closure")
	s.Next()
	listen(t, s)
	s.Finish("queue")

	recs := s.Records()
	for i, r := range recs {
		if r.Answer.QuestionIndex != i {
			t.Errorf("records[%d].QuestionIndex = %d", i, r.Answer.QuestionIndex)
		}
	}
	if !s.AllAnswered() {
		t.Error("AllAnswered = false, want true")
	}
}

func TestToggleTip_ResetsPerQuestion(t *testing.T) {
	s := testSession(t)
	s.ToggleTip()
	if !s.ShowTip() {
		t.Fatal("ShowTip = false after toggle")
	}
	listen(t, s)
	s.Finish("closure")
	s.Next()
	if s.ShowTip() {
		t.Error("tip should be hidden for the next question")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhasePre, "pre"},
		{PhaseSpeaking, "speaking"},
		{PhaseListening, "listening"},
		{PhaseFeedback, "feedback"},
		{PhaseReview, "review"},
		{PhaseClosed, "closed"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestLastGrade(t *testing.T) {
	s := testSession(t)
	if _, ok := s.LastGrade(); ok {
		t.Fatal("LastGrade before any answer should be absent")
	}
	listen(t, s)
	s.Finish("closure and scope")
	g, ok := s.LastGrade()
	if !ok {
		t.Fatal("LastGrade missing after Finish")
	}
	if g.HitCount != 2 || g.Percentage != 33 {
		t.Errorf("grade = %d hits %d%%, want 2 hits 33%%", g.HitCount, g.Percentage)
	}
}
