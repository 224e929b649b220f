package narration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vistafly/interviewme/internal/logger"
)

const (
	// DefaultTTSURL is Google Translate's speech endpoint.
	DefaultTTSURL = "https://translate.google.com/translate_tts"

	ttsRequestTimeout = 10 * time.Second

	// maxChunkLen is the longest text the endpoint accepts per request.
	maxChunkLen = 200
)

// DefaultPlayer plays an mp3 file passed as the final argument.
var DefaultPlayer = []string{"mpg123", "-q"}

// TTS fetches spoken audio over HTTP, caches it on disk and plays it with
// an external player.
type TTS struct {
	BaseURL  string
	Language string
	CacheDir string
	Player   []string

	client *http.Client
	log    *logger.Logger
}

// NewTTS creates a TTS narrator. An empty playerLine selects DefaultPlayer.
func NewTTS(log *logger.Logger, cacheDir, language, playerLine string) *TTS {
	if log == nil {
		log = logger.Nop()
	}
	player := strings.Fields(playerLine)
	if len(player) == 0 {
		player = DefaultPlayer
	}
	return &TTS{
		BaseURL:  DefaultTTSURL,
		Language: language,
		CacheDir: cacheDir,
		Player:   player,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		log:      log.With("service", "narration.TTS"),
	}
}

// Available reports whether the player can be found.
func (t *TTS) Available() error {
	if len(t.Player) == 0 {
		return errors.New("no audio player configured")
	}
	if _, err := exec.LookPath(t.Player[0]); err != nil {
		return fmt.Errorf("audio player: %w", err)
	}
	return nil
}

func (t *TTS) Speak(ctx context.Context, text string) error {
	for _, chunk := range splitText(text, maxChunkLen) {
		path, err := t.audioFile(ctx, chunk)
		if err != nil {
			return err
		}
		if err := t.play(ctx, path); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// audioFile returns the cached mp3 for text, fetching it if needed.
func (t *TTS) audioFile(ctx context.Context, text string) (string, error) {
	lang := t.lang()
	sum := sha256.Sum256([]byte(lang + "\x00" + text))
	path := filepath.Join(t.CacheDir, "tts_"+hex.EncodeToString(sum[:12])+".mp3")

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(t.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache: %w", err)
	}
	if err := t.fetch(ctx, text, lang, path); err != nil {
		return "", err
	}
	t.log.Debug("cached narration audio", "path", path, "chars", len(text))
	return path, nil
}

func (t *TTS) fetch(ctx context.Context, text, lang, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file so a cancelled download never leaves a partial
	// file in the cache.
	tmp, err := os.CreateTemp(t.CacheDir, "tts-*.part")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}

func (t *TTS) play(ctx context.Context, path string) error {
	args := append(append([]string(nil), t.Player[1:]...), path)
	cmd := exec.CommandContext(ctx, t.Player[0], args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play narration: %w", err)
	}
	return nil
}

func (t *TTS) lang() string {
	lang, _, _ := strings.Cut(t.Language, "-")
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}

// splitText breaks text into pieces of at most n bytes on word boundaries.
// A single word longer than n becomes its own piece.
func splitText(text string, n int) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, w := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > n {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
