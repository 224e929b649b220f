package narration

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"paced", "tts", "none"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("opera")
	assert.Error(t, err)
}

func TestNone(t *testing.T) {
	assert.NoError(t, None{}.Speak(context.Background(), "hello"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, None{}.Speak(ctx, "hello"), context.Canceled)
}

func TestPaced_Duration(t *testing.T) {
	p := NewPaced(120)
	assert.Equal(t, time.Second, p.Duration("hi"))
	assert.Equal(t, 5*time.Second, p.Duration(strings.Repeat("word ", 10)))

	assert.Equal(t, DefaultWordsPerMinute, NewPaced(0).WordsPerMinute)
}

func TestPaced_Completes(t *testing.T) {
	p := &Paced{WordsPerMinute: 60000}
	assert.NoError(t, p.Speak(context.Background(), "one two"))
}

func TestPaced_Cancel(t *testing.T) {
	p := NewPaced(1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := p.Speak(ctx, "a long question that would take minutes")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSplitText(t *testing.T) {
	assert.Nil(t, splitText("   ", 10))
	assert.Equal(t, []string{"one two", "three"}, splitText("one  two three", 8))
	assert.Equal(t, []string{"abcdefghijkl", "ab"}, splitText("abcdefghijkl ab", 5))

	long := strings.Repeat("word ", 100)
	for _, c := range splitText(long, maxChunkLen) {
		assert.LessOrEqual(t, len(c), maxChunkLen)
	}
}

func newTestTTS(t *testing.T, srv *httptest.Server, player []string) *TTS {
	t.Helper()
	tts := NewTTS(nil, filepath.Join(t.TempDir(), "cache"), "en-US", "")
	tts.BaseURL = srv.URL
	tts.Player = player
	return tts
}

func TestTTS_FetchesCachesAndPlays(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		assert.Equal(t, "tw-ob", r.URL.Query().Get("client"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("ID3-" + r.URL.Query().Get("q")))
	}))
	defer srv.Close()

	played := filepath.Join(t.TempDir(), "played.mp3")
	tts := newTestTTS(t, srv, []string{"sh", "-c", `cp "$0" "` + played + `"`})
	require.NoError(t, tts.Available())

	require.NoError(t, tts.Speak(context.Background(), "Tell me about yourself."))
	data, err := os.ReadFile(played)
	require.NoError(t, err)
	assert.Equal(t, "ID3-Tell me about yourself.", string(data))

	// Second time comes from the cache.
	require.NoError(t, tts.Speak(context.Background(), "Tell me about yourself."))
	assert.Equal(t, int32(1), hits.Load())

	entries, err := os.ReadDir(tts.CacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTTS_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tts := newTestTTS(t, srv, []string{"true"})
	err := tts.Speak(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	entries, _ := os.ReadDir(tts.CacheDir)
	assert.Empty(t, entries)
}

func TestTTS_CancelStopsPlayback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ID3"))
	}))
	defer srv.Close()

	tts := newTestTTS(t, srv, []string{"sh", "-c", "sleep 5"})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := tts.Speak(ctx, "a question")
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestTTS_MissingPlayer(t *testing.T) {
	tts := NewTTS(nil, t.TempDir(), "en-US", "no-such-player-xyz")
	assert.Error(t, tts.Available())
}
