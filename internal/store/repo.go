package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	UserID string    // only sessions for this user ("" = all)
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SavedSession is a finished interview as stored. Data carries the full
// per-question payload as JSON.
type SavedSession struct {
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	UserID     string
	Company    string
	JobTitle   string
	Percentage int
	Grade      string
	Answered   int
	Total      int
	Data       json.RawMessage
}

// SessionRepo persists finished sessions.
type SessionRepo interface {
	// SaveSession stores a finished session. Saving the same session ID
	// twice is an error.
	SaveSession(ctx context.Context, s *SavedSession) error

	// ListSessions returns saved sessions, newest first.
	ListSessions(ctx context.Context, opts QueryOpts) ([]SavedSession, error)

	// GetSession returns the session with the given ID, or nil.
	GetSession(ctx context.Context, sessionID string) (*SavedSession, error)

	// DeleteSessions removes all saved sessions and their events and
	// returns how many sessions were deleted.
	DeleteSessions(ctx context.Context) (int, error)
}

// Session lifecycle actions recorded by AppendSessionEvent.
const (
	ActionStart   = "start"
	ActionRetry   = "retry"
	ActionReview  = "review"
	ActionResume  = "resume"
	ActionFinish  = "finish"
	ActionAbandon = "abandon"
)

// SessionEventData captures one session lifecycle transition.
type SessionEventData struct {
	SessionID     string
	Action        string
	QuestionIndex int
	Answered      int
	Total         int
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	Sequence      int64
	Timestamp     time.Time
	SessionID     string
	QuestionIndex int
	QuestionText  string
	AnswerText    string
	ElapsedSecs   int
	WordCount     int
	Hits          int
	TotalKeys     int
	Percentage    int
	Grade         string
	Forced        bool
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AnswerEvents returns a session's graded answers in sequence order.
	AnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventData, error)
}
