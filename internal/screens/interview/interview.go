package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vistafly/interviewme/internal/capture"
	"github.com/vistafly/interviewme/internal/logger"
	"github.com/vistafly/interviewme/internal/narration"
	"github.com/vistafly/interviewme/internal/question"
	"github.com/vistafly/interviewme/internal/router"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/session"
	"github.com/vistafly/interviewme/internal/store"
	"github.com/vistafly/interviewme/internal/ui/components"
	"github.com/vistafly/interviewme/internal/ui/layout"

	"github.com/google/uuid"
)

// Deps are the collaborators one interview run needs.
type Deps struct {
	Bank   *question.Bank
	Config session.Config

	Narrator narration.Narrator

	// Speech is the spoken-answer recognizer. nil disables speech input.
	Speech    capture.Recognizer
	InputMode capture.Mode

	Sessions store.SessionRepo
	Events   store.EventRepo
	Log      *logger.Logger

	UserID string

	// Company and JobTitle override the bank's values when set.
	Company  string
	JobTitle string

	Now   func() time.Time
	NewID func() string
}

// InterviewScreen drives one session: it reads questions aloud, runs the
// answer countdown, feeds captured text into the session and shows grades.
type InterviewScreen struct {
	deps Deps
	sess *session.Session
	log  *logger.Logger

	typed   *capture.Typed
	mode    capture.Mode
	rec     capture.Recognizer
	updates <-chan capture.Update
	input   components.TextInput
	level   float64

	cancelNarration context.CancelFunc
	cancelCapture   context.CancelFunc

	startedAt time.Time
	notice    string
	errMsg    string
	closed    bool
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.Closer = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen. Construction errors (an empty or invalid
// question bank) are shown on screen.
func New(deps Deps) *InterviewScreen {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Narrator == nil {
		deps.Narrator = narration.None{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.New().String() }
	}
	if deps.Config.AnswerBudget == 0 {
		deps.Config.AnswerBudget = session.DefaultAnswerBudget
	}

	s := &InterviewScreen{
		deps:  deps,
		log:   deps.Log,
		typed: capture.NewTyped(),
		mode:  deps.InputMode,
		input: newAnswerInput(),
	}
	if s.mode != capture.ModeSpeech || deps.Speech == nil {
		s.mode = capture.ModeTyped
	}

	if deps.Bank == nil {
		s.errMsg = question.ErrNoQuestions.Error()
		return s
	}
	sess, err := session.New(deps.NewID(), deps.Bank.Questions, deps.Config)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.sess = sess
	s.log = deps.Log.With("session_id", sess.ID())
	return s
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", 0, 60)
}

// Session exposes the underlying state machine.
func (s *InterviewScreen) Session() *session.Session {
	return s.sess
}

func (s *InterviewScreen) Init() tea.Cmd {
	if s.sess == nil {
		return nil
	}
	s.startedAt = s.deps.Now()
	s.log.Info("interview started", "questions", s.sess.Total(), "input", string(s.mode),
		"budget_secs", s.sess.Budget())
	return s.sessionEvent(store.ActionStart)
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

// Status shows the question position in the header.
func (s *InterviewScreen) Status() string {
	if s.sess == nil {
		return ""
	}
	if p := s.sess.Phase(); p == session.PhaseReview || p == session.PhaseClosed {
		return ""
	}
	return fmt.Sprintf("Q %d/%d", s.sess.Index()+1, s.sess.Total())
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.sess == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	tip := layout.KeyHint{Key: "Tab", Description: "Tip"}
	switch s.sess.Phase() {
	case session.PhasePre:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Start"}, tip}
		if s.deps.Speech != nil {
			hints = append(hints, layout.KeyHint{Key: "m", Description: "Input mode"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case session.PhaseSpeaking:
		return []layout.KeyHint{{Key: "Enter", Description: "Skip"}, tip, {Key: "Esc", Description: "Quit"}}
	case session.PhaseListening:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}, tip, {Key: "Esc", Description: "Quit"}}
	case session.PhaseFeedback:
		hints := []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "n", Description: "Next"}}
		if s.sess.CanReviewEarly() && !s.sess.AllAnswered() {
			hints = append(hints, layout.KeyHint{Key: "v", Description: "Review now"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case session.PhaseReview:
		var hints []layout.KeyHint
		if !s.sess.AllAnswered() {
			hints = append(hints, layout.KeyHint{Key: "c", Description: "Continue"})
		}
		return append(hints, layout.KeyHint{Key: "s", Description: "Save & exit"})
	}
	return nil
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.errMsg != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case narrationDoneMsg:
		return s.handleNarrationDone(msg)

	case countdownTickMsg:
		return s.handleTick(msg)

	case captureUpdateMsg:
		return s.handleCaptureUpdate(msg)

	case captureClosedMsg, persistedMsg:
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Pastes, clipboard reads and cursor blinks also edit the answer.
	if s.typing() {
		return s.handleTyping(msg)
	}
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "tab" {
		switch s.sess.Phase() {
		case session.PhasePre, session.PhaseSpeaking, session.PhaseListening:
			s.sess.ToggleTip()
		}
		return s, nil
	}

	switch s.sess.Phase() {
	case session.PhasePre:
		switch key {
		case "enter":
			return s.start()
		case "m":
			s.toggleMode()
		}

	case session.PhaseSpeaking:
		if key == "enter" || key == "s" {
			return s.skipNarration()
		}

	case session.PhaseListening:
		if key == "enter" {
			return s.finish()
		}
		if s.typing() {
			return s.handleTyping(msg)
		}

	case session.PhaseFeedback:
		switch key {
		case "r":
			return s.retry()
		case "n", "enter":
			return s.next()
		case "v":
			return s.reviewNow()
		}

	case session.PhaseReview:
		switch key {
		case "c":
			return s.resume()
		case "s", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// typing reports whether keystrokes currently edit the typed answer.
func (s *InterviewScreen) typing() bool {
	return s.sess != nil &&
		s.sess.Phase() == session.PhaseListening &&
		s.rec != nil && s.rec.Mode() == capture.ModeTyped
}

func (s *InterviewScreen) handleTyping(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	text := s.input.Value()
	if err := s.typed.Set(text); err != nil {
		s.log.Debug("typed capture rejected text", "error", err)
	}
	if err := s.sess.UpdateTranscript(text); err != nil {
		s.log.Debug("transcript update ignored", "error", err)
	}
	return s, cmd
}

func (s *InterviewScreen) toggleMode() {
	if s.deps.Speech == nil {
		s.mode = capture.ModeTyped
		return
	}
	if s.mode == capture.ModeSpeech {
		s.mode = capture.ModeTyped
	} else {
		s.mode = capture.ModeSpeech
	}
	s.notice = ""
}

// start moves pre -> speaking and reads the question aloud.
func (s *InterviewScreen) start() (screen.Screen, tea.Cmd) {
	tok, err := s.sess.Start()
	if err != nil {
		s.log.Debug("start ignored", "error", err)
		return s, nil
	}
	s.notice = ""
	s.input.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelNarration = cancel

	narrator := s.deps.Narrator
	text := s.sess.Current().Text
	s.log.Debug("narrating question", "question", s.sess.Index())
	return s, func() tea.Msg {
		return narrationDoneMsg{Token: tok, Err: narrator.Speak(ctx, text)}
	}
}

func (s *InterviewScreen) handleNarrationDone(msg narrationDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
		s.log.Warn("narration failed", "error", msg.Err)
		s.notice = "Could not read the question aloud. Answer when ready."
	}
	tok, ok := s.sess.NarrationDone(msg.Token)
	if !ok {
		return s, nil
	}
	s.releaseNarration()
	return s, s.beginListening(tok)
}

func (s *InterviewScreen) skipNarration() (screen.Screen, tea.Cmd) {
	tok, ok := s.sess.SkipNarration()
	if !ok {
		return s, nil
	}
	s.releaseNarration()
	return s, s.beginListening(tok)
}

func (s *InterviewScreen) releaseNarration() {
	if s.cancelNarration != nil {
		s.cancelNarration()
		s.cancelNarration = nil
	}
}

func (s *InterviewScreen) handleTick(msg countdownTickMsg) (screen.Screen, tea.Cmd) {
	outcome, err := s.sess.Tick(msg.Token)
	switch outcome {
	case session.TickFailed:
		s.stopCapture()
		s.log.Error("forced submission failed", "error", err)
		s.errMsg = err.Error()
		return s, nil
	case session.TickCounted:
		return s, tickCmd(msg.Token)
	case session.TickExpired:
		s.stopCapture()
		rec, _ := s.sess.LastResult()
		s.log.Info("answer time expired", "question", rec.Answer.QuestionIndex)
		return s, s.answerEvent(rec)
	}
	return s, nil
}

// finish submits the current answer: listening -> feedback.
func (s *InterviewScreen) finish() (screen.Screen, tea.Cmd) {
	text := s.stopCapture()
	rec, err := s.sess.Finish(text)
	if err != nil {
		s.log.Error("finish answer failed", "error", err)
		return s, nil
	}
	return s, s.answerEvent(rec)
}

func (s *InterviewScreen) retry() (screen.Screen, tea.Cmd) {
	idx := s.sess.Index()
	if err := s.sess.Retry(); err != nil {
		return s, nil
	}
	s.log.Info("answer discarded for retry", "question", idx)
	s.input.Reset()
	s.notice = ""
	return s, s.sessionEvent(store.ActionRetry)
}

func (s *InterviewScreen) next() (screen.Screen, tea.Cmd) {
	if err := s.sess.Next(); err != nil {
		return s, nil
	}
	s.input.Reset()
	s.notice = ""
	if s.sess.Phase() == session.PhaseReview {
		return s, s.sessionEvent(store.ActionReview)
	}
	return s, nil
}

func (s *InterviewScreen) reviewNow() (screen.Screen, tea.Cmd) {
	if err := s.sess.ReviewNow(); err != nil {
		return s, nil
	}
	return s, s.sessionEvent(store.ActionReview)
}

func (s *InterviewScreen) resume() (screen.Screen, tea.Cmd) {
	if err := s.sess.Resume(); err != nil {
		return s, nil
	}
	s.input.Reset()
	return s, s.sessionEvent(store.ActionResume)
}

// Close ends the run when the screen is left. Leaving from review saves
// the interview; leaving from any other phase abandons it unsaved.
func (s *InterviewScreen) Close() tea.Cmd {
	if s.closed || s.sess == nil {
		return nil
	}
	s.closed = true
	s.releaseNarration()
	s.stopCapture()

	if s.sess.Phase() == session.PhaseReview {
		records, err := s.sess.Finalize()
		if err != nil {
			s.log.Error("finalize failed", "error", err)
			return nil
		}
		s.log.Info("interview finished", "answered", len(records), "total", s.sess.Total(),
			"duration", s.deps.Now().Sub(s.startedAt).Round(time.Second).String())
		return tea.Batch(s.sessionEvent(store.ActionFinish), s.saveCmd(records))
	}

	prev := s.sess.Abandon()
	s.log.Info("interview abandoned", "phase", prev.String(), "answered", s.sess.Answered())
	return s.sessionEvent(store.ActionAbandon)
}

// tickCmd schedules the next countdown second for run tok.
func tickCmd(tok session.Token) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{Token: tok}
	})
}
