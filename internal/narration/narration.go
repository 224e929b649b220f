// Package narration reads questions aloud before the answer countdown.
package narration

import (
	"context"
	"fmt"
	"time"

	"github.com/vistafly/interviewme/internal/grading"
)

// Narrator speaks text. Speak blocks until narration finishes or ctx is
// cancelled. Cancelling stops playback and returns ctx.Err().
type Narrator interface {
	Speak(ctx context.Context, text string) error
}

// Mode selects a narrator.
type Mode string

const (
	ModePaced Mode = "paced"
	ModeTTS   Mode = "tts"
	ModeNone  Mode = "none"
)

// ParseMode converts a config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePaced, ModeTTS, ModeNone:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown narration mode %q", s)
	}
}

// None finishes immediately.
type None struct{}

func (None) Speak(ctx context.Context, _ string) error {
	return ctx.Err()
}

// DefaultWordsPerMinute approximates a relaxed speaking voice.
const DefaultWordsPerMinute = 160

// Paced holds the question on screen for as long as it would take to read
// it aloud, without producing sound.
type Paced struct {
	WordsPerMinute int
	Min            time.Duration
}

// NewPaced returns a Paced narrator. Non-positive wpm selects the default.
func NewPaced(wpm int) *Paced {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	return &Paced{WordsPerMinute: wpm, Min: time.Second}
}

// Duration returns how long text takes to read.
func (p *Paced) Duration(text string) time.Duration {
	wpm := p.WordsPerMinute
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	d := time.Duration(grading.WordCount(text)) * time.Minute / time.Duration(wpm)
	if d < p.Min {
		d = p.Min
	}
	return d
}

func (p *Paced) Speak(ctx context.Context, text string) error {
	t := time.NewTimer(p.Duration(text))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
