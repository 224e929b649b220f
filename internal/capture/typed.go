package capture

import (
	"context"
	"sync"
)

// Typed captures answers entered from the keyboard. The host pushes the
// current input with Set.
type Typed struct {
	mu        sync.Mutex
	text      string
	ch        chan Update
	done      chan struct{}
	listening bool
}

var _ Recognizer = (*Typed)(nil)

// NewTyped creates a keyboard recognizer.
func NewTyped() *Typed {
	return &Typed{}
}

func (t *Typed) Mode() Mode { return ModeTyped }

func (t *Typed) Start(ctx context.Context) (<-chan Update, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.listening {
		t.stopLocked()
	}
	t.text = ""
	t.ch = make(chan Update, 8)
	t.done = make(chan struct{})
	t.listening = true

	done := t.done
	go func() {
		select {
		case <-ctx.Done():
			t.mu.Lock()
			if t.done == done {
				t.stopLocked()
			}
			t.mu.Unlock()
		case <-done:
		}
	}()
	return t.ch, nil
}

// Set replaces the captured text.
func (t *Typed) Set(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.listening {
		return ErrNotListening
	}
	t.text = text
	offer(t.ch, Update{Text: text})
	return nil
}

func (t *Typed) Stop() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	return t.text
}

func (t *Typed) stopLocked() {
	if !t.listening {
		return
	}
	t.listening = false
	close(t.done)
	close(t.ch)
}
