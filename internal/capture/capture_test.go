package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTyped_SetRequiresStart(t *testing.T) {
	tr := NewTyped()
	assert.ErrorIs(t, tr.Set("hello"), ErrNotListening)
}

func TestTyped_Lifecycle(t *testing.T) {
	tr := NewTyped()
	ch, err := tr.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, tr.Set("a closure"))
	require.NoError(t, tr.Set("a closure keeps scope"))

	var last Update
	for i := 0; i < 2; i++ {
		last = <-ch
	}
	assert.Equal(t, "a closure keeps scope", last.Text)

	assert.Equal(t, "a closure keeps scope", tr.Stop())
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after Stop")

	assert.Equal(t, "a closure keeps scope", tr.Stop())
	assert.ErrorIs(t, tr.Set("late"), ErrNotListening)
}

func TestTyped_RestartClearsText(t *testing.T) {
	tr := NewTyped()
	_, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, tr.Set("first"))
	tr.Stop()

	_, err = tr.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", tr.Stop())
}

func TestTyped_ContextCancelStops(t *testing.T) {
	tr := NewTyped()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := tr.Start(ctx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("cancel did not stop capture")
	}
}

func TestTyped_DoesNotBlockWhenUnread(t *testing.T) {
	tr := NewTyped()
	ch, err := tr.Start(context.Background())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Set(string(rune('a'+i%26))))
	}
	require.NoError(t, tr.Set("final"))

	var last Update
	for u := range drainNow(ch) {
		last = u
	}
	assert.Equal(t, "final", last.Text)
	tr.Stop()
}

func drainNow(ch <-chan Update) <-chan Update {
	out := make(chan Update, cap(ch))
	for {
		select {
		case u := <-ch:
			out <- u
		default:
			close(out)
			return out
		}
	}
}

type failingRecognizer struct{ err error }

func (f failingRecognizer) Mode() Mode { return ModeSpeech }
func (f failingRecognizer) Start(context.Context) (<-chan Update, error) {
	return nil, f.err
}
func (f failingRecognizer) Stop() string { return "" }

func TestStartWithFallback(t *testing.T) {
	typed := NewTyped()

	rec, ch, err := StartWithFallback(context.Background(), failingRecognizer{err: ErrUnavailable}, typed)
	require.NotNil(t, rec)
	require.NotNil(t, ch)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, ModeTyped, rec.Mode())
	rec.Stop()
}

func TestStartWithFallback_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	rec, _, err := StartWithFallback(context.Background(), failingRecognizer{err: boom}, NewTyped())
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, boom)
}

func TestStartWithFallback_PrimaryWorks(t *testing.T) {
	typed := NewTyped()
	rec, _, err := StartWithFallback(context.Background(), typed, nil)
	require.NoError(t, err)
	assert.Same(t, typed, rec)
	rec.Stop()
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("speech")
	require.NoError(t, err)
	assert.Equal(t, ModeSpeech, m)

	_, err = ParseMode("telepathy")
	assert.Error(t, err)
}

func TestAmplitude(t *testing.T) {
	tests := []struct {
		name string
		pcm  []byte
		want float64
	}{
		{"empty", nil, 0},
		{"single byte", []byte{0x7f}, 0},
		{"silence", tone(100, 0), 0},
		{"half scale", tone(100, 16384), 0.5},
		{"full scale negative", tone(100, -32768), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Amplitude(tt.pcm), 0.001)
		})
	}
}

func TestCommandSource(t *testing.T) {
	src := NewCommandSource("", 16000)
	assert.Equal(t, "arecord", src.Args[0])
	assert.Contains(t, src.Args, "16000")

	src = NewCommandSource("definitely-not-a-recorder-xyz --raw", 8000)
	assert.Equal(t, []string{"definitely-not-a-recorder-xyz", "--raw"}, src.Args)
	_, err := src.Open(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
