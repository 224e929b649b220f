package interview

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/vistafly/interviewme/internal/capture"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/session"
)

// levelDecay smooths the microphone meter between audio chunks.
const levelDecay = 0.6

// beginListening starts answer capture and the countdown for run tok.
func (s *InterviewScreen) beginListening(tok session.Token) tea.Cmd {
	s.level = 0
	s.input.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelCapture = cancel
	s.rec, s.updates = s.startRecognizer(ctx)

	cmds := []tea.Cmd{tickCmd(tok)}
	if s.rec.Mode() == capture.ModeSpeech {
		cmds = append(cmds, waitCapture(tok, s.updates))
	} else {
		cmds = append(cmds, s.input.Init())
	}
	s.log.Debug("listening", "question", s.sess.Index(), "input", string(s.rec.Mode()))
	return tea.Batch(cmds...)
}

// startRecognizer starts the preferred recognizer. Any speech failure
// switches the rest of the interview to typed input.
func (s *InterviewScreen) startRecognizer(ctx context.Context) (capture.Recognizer, <-chan capture.Update) {
	if s.mode == capture.ModeSpeech && s.deps.Speech != nil {
		rec, ch, err := capture.StartWithFallback(ctx, s.deps.Speech, s.typed)
		if err != nil {
			s.log.Warn("speech capture unavailable", "error", err)
			s.notice = "Microphone unavailable. Type your answer instead."
			s.mode = capture.ModeTyped
		}
		if rec != nil {
			return rec, ch
		}
	}
	// Typed capture cannot fail to start.
	ch, _ := s.typed.Start(ctx)
	return s.typed, ch
}

// stopCapture ends the running recognizer and returns its final text.
func (s *InterviewScreen) stopCapture() string {
	if s.rec == nil {
		return s.sess.Transcript()
	}
	text := s.rec.Stop()
	s.rec = nil
	s.updates = nil
	if s.cancelCapture != nil {
		s.cancelCapture()
		s.cancelCapture = nil
	}
	s.input.Lock()
	return text
}

func (s *InterviewScreen) handleCaptureUpdate(msg captureUpdateMsg) (screen.Screen, tea.Cmd) {
	if s.sess.Phase() != session.PhaseListening || msg.Token != s.sess.CountdownToken() {
		return s, nil
	}

	u := msg.Update
	if u.Err != nil {
		s.log.Warn("speech capture error", "error", u.Err)
		s.notice = "Speech recognition stopped. Press Enter to submit what was heard."
	}
	s.level = max(u.Level, s.level*levelDecay)
	if err := s.sess.UpdateTranscript(u.Text); err != nil {
		s.log.Debug("transcript update ignored", "error", err)
	}
	return s, waitCapture(msg.Token, s.updates)
}

// waitCapture delivers the next update from ch, tagged with run tok.
func waitCapture(tok session.Token, ch <-chan capture.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return captureClosedMsg{Token: tok}
		}
		return captureUpdateMsg{Token: tok, Update: u}
	}
}
