package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vistafly/interviewme/internal/logger"
)

// chunkMillis is how much audio goes into each streaming request.
const chunkMillis = 100

// SpeechConfig configures streaming recognition.
type SpeechConfig struct {
	LanguageCode    string
	SampleRateHertz int
}

// StreamOpener opens a bidirectional recognition stream.
type StreamOpener func(ctx context.Context) (speechpb.Speech_StreamingRecognizeClient, error)

// Speech streams microphone audio to Google Cloud Speech-to-Text and
// reports interim transcripts.
type Speech struct {
	log    *logger.Logger
	cfg    SpeechConfig
	source AudioSource
	open   StreamOpener
	client *speech.Client

	mu      sync.Mutex
	final   []string
	interim string
	ch      chan Update
	cancel  context.CancelFunc
	audio   io.ReadCloser
	wg      sync.WaitGroup
	running bool
}

var _ Recognizer = (*Speech)(nil)

// NewSpeech connects to the Speech-to-Text API using credentials from the
// environment. A connection failure is reported as ErrUnavailable.
func NewSpeech(ctx context.Context, log *logger.Logger, source AudioSource, cfg SpeechConfig) (*Speech, error) {
	c, err := speech.NewClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("%w: speech client: %v", ErrUnavailable, err)
	}
	s := NewSpeechWithOpener(log, source, cfg, func(ctx context.Context) (speechpb.Speech_StreamingRecognizeClient, error) {
		return c.StreamingRecognize(ctx)
	})
	s.client = c
	return s, nil
}

// NewSpeechWithOpener builds a Speech recognizer over an existing stream
// factory.
func NewSpeechWithOpener(log *logger.Logger, source AudioSource, cfg SpeechConfig, open StreamOpener) *Speech {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en-US"
	}
	if cfg.SampleRateHertz <= 0 {
		cfg.SampleRateHertz = 16000
	}
	return &Speech{
		log:    log.With("service", "capture.Speech"),
		cfg:    cfg,
		source: source,
		open:   open,
	}
}

// ClientOptionsFromEnv reads Google credentials from
// GOOGLE_APPLICATION_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (s *Speech) Mode() Mode { return ModeSpeech }

// Close releases the API connection.
func (s *Speech) Close() error {
	s.Stop()
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Speech) Start(ctx context.Context) (<-chan Update, error) {
	s.Stop()

	ctx, cancel := context.WithCancel(ctx)
	audio, err := s.source.Open(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	stream, err := s.open(ctx)
	if err != nil {
		cancel()
		audio.Close()
		return nil, fmt.Errorf("%w: open stream: %v", ErrUnavailable, err)
	}

	err = stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config: &speechpb.RecognitionConfig{
					Encoding:                   speechpb.RecognitionConfig_LINEAR16,
					SampleRateHertz:            int32(s.cfg.SampleRateHertz),
					LanguageCode:               s.cfg.LanguageCode,
					EnableAutomaticPunctuation: true,
				},
				InterimResults: true,
			},
		},
	})
	if err != nil {
		cancel()
		audio.Close()
		return nil, classify(err)
	}

	s.mu.Lock()
	s.final = nil
	s.interim = ""
	s.ch = make(chan Update, 16)
	s.cancel = cancel
	s.audio = audio
	s.running = true
	ch := s.ch
	s.mu.Unlock()

	s.wg.Add(2)
	go s.pump(ctx, audio, stream, ch)
	go s.receive(ctx, stream, ch)

	s.log.Debug("speech capture started", "language", s.cfg.LanguageCode, "sample_rate", s.cfg.SampleRateHertz)
	return ch, nil
}

// pump forwards audio to the stream and reports input levels.
func (s *Speech) pump(ctx context.Context, audio io.Reader, stream speechpb.Speech_StreamingRecognizeClient, ch chan Update) {
	defer s.wg.Done()
	defer stream.CloseSend()

	buf := make([]byte, s.cfg.SampleRateHertz*2*chunkMillis/1000)
	for {
		n, err := io.ReadFull(audio, buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			s.emit(ch, Update{Text: s.text(), Level: Amplitude(chunk)})
			if serr := stream.Send(&speechpb.StreamingRecognizeRequest{
				StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{AudioContent: chunk},
			}); serr != nil {
				if ctx.Err() == nil && !errors.Is(serr, io.EOF) {
					s.log.Warn("speech send failed", "error", serr)
				}
				return
			}
		}
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Warn("audio read failed", "error", err)
				s.emit(ch, Update{Text: s.text(), Err: fmt.Errorf("%w: audio: %v", ErrUnavailable, err)})
			}
			return
		}
	}
}

// receive collects transcripts until the stream ends.
func (s *Speech) receive(ctx context.Context, stream speechpb.Speech_StreamingRecognizeClient, ch chan Update) {
	defer s.wg.Done()

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			if ctx.Err() == nil && status.Code(err) != codes.Canceled {
				s.log.Warn("speech stream failed", "error", err)
				s.emit(ch, Update{Text: s.text(), Err: classify(err)})
			}
			return
		}

		s.mu.Lock()
		var interim []string
		for _, r := range resp.GetResults() {
			alts := r.GetAlternatives()
			if len(alts) == 0 {
				continue
			}
			t := strings.TrimSpace(alts[0].GetTranscript())
			if t == "" {
				continue
			}
			if r.GetIsFinal() {
				s.final = append(s.final, t)
			} else {
				interim = append(interim, t)
			}
		}
		s.interim = strings.Join(interim, " ")
		text := s.textLocked()
		s.mu.Unlock()

		s.emit(ch, Update{Text: text})
	}
}

func (s *Speech) Stop() string {
	s.mu.Lock()
	if !s.running {
		text := s.textLocked()
		s.mu.Unlock()
		return text
	}
	s.running = false
	cancel, audio, ch := s.cancel, s.audio, s.ch
	s.mu.Unlock()

	cancel()
	audio.Close()
	s.wg.Wait()

	s.mu.Lock()
	close(ch)
	text := s.textLocked()
	s.mu.Unlock()

	s.log.Debug("speech capture stopped", "words", len(strings.Fields(text)))
	return text
}

func (s *Speech) emit(ch chan Update, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer(ch, u)
}

func (s *Speech) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textLocked()
}

func (s *Speech) textLocked() string {
	parts := append([]string(nil), s.final...)
	if s.interim != "" {
		parts = append(parts, s.interim)
	}
	return strings.Join(parts, " ")
}

// classify maps permission and connectivity failures to ErrUnavailable.
func classify(err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated, codes.Unavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("speech stream: %w", err)
	}
}
