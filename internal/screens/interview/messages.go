package interview

import (
	"github.com/vistafly/interviewme/internal/capture"
	"github.com/vistafly/interviewme/internal/session"
)

// narrationDoneMsg is sent when reading a question aloud ends, either
// normally, by skip, or with an error.
type narrationDoneMsg struct {
	Token session.Token
	Err   error
}

// countdownTickMsg is sent once per second while listening.
type countdownTickMsg struct {
	Token session.Token
}

// captureUpdateMsg carries a recognizer update for the countdown run
// identified by Token.
type captureUpdateMsg struct {
	Token  session.Token
	Update capture.Update
}

// captureClosedMsg is sent when a recognizer's update channel closes.
type captureClosedMsg struct {
	Token session.Token
}

// persistedMsg reports the outcome of a background store write.
type persistedMsg struct {
	What string
	Err  error
}

// SavedMsg is broadcast after a finished interview has been stored, so
// screens showing history can refresh.
type SavedMsg struct {
	SessionID string
	Err       error
}
