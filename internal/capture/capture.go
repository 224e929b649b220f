// Package capture turns a candidate's answer into text. A Recognizer is
// started when listening begins and stopped when the answer is submitted.
package capture

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the capture backend cannot be used (no microphone,
	// missing permission, no credentials). Hosts fall back to typed input.
	ErrUnavailable = errors.New("capture unavailable")

	// ErrNotListening is returned when text arrives while not started.
	ErrNotListening = errors.New("not listening")
)

// Mode names an input method.
type Mode string

const (
	ModeTyped  Mode = "typed"
	ModeSpeech Mode = "speech"
)

// ParseMode converts a config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTyped, ModeSpeech:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown input mode %q", s)
	}
}

// Update is a progress report from a running Recognizer.
type Update struct {
	// Text is the whole transcript so far, interim words included.
	Text string

	// Level is the latest input amplitude in [0,1]. Only speech sets it.
	Level float64

	// Err reports a backend failure. The recognizer keeps the text
	// captured before the failure.
	Err error
}

// Recognizer captures one answer at a time.
type Recognizer interface {
	Mode() Mode

	// Start begins capture. Updates stream on the returned channel until
	// Stop is called, after which the channel is closed.
	Start(ctx context.Context) (<-chan Update, error)

	// Stop ends capture and returns the final text. Calling Stop when not
	// started returns the last captured text.
	Stop() string
}

// StartWithFallback starts primary and, if it is unavailable, starts
// fallback instead. The returned error is the primary's start failure, or
// nil; it is informational when a recognizer was returned.
func StartWithFallback(ctx context.Context, primary, fallback Recognizer) (Recognizer, <-chan Update, error) {
	ch, err := primary.Start(ctx)
	if err == nil {
		return primary, ch, nil
	}
	if fallback == nil || !errors.Is(err, ErrUnavailable) {
		return nil, nil, err
	}

	fch, ferr := fallback.Start(ctx)
	if ferr != nil {
		return nil, nil, errors.Join(err, ferr)
	}
	return fallback, fch, err
}

// offer delivers u without blocking. Updates carry the full transcript, so
// when the buffer is full the oldest pending update is dropped.
func offer(ch chan Update, u Update) {
	select {
	case ch <- u:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- u:
	default:
	}
}
