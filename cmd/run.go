package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/app"
	"github.com/vistafly/interviewme/internal/capture"
	"github.com/vistafly/interviewme/internal/config"
	"github.com/vistafly/interviewme/internal/logger"
	"github.com/vistafly/interviewme/internal/narration"
	"github.com/vistafly/interviewme/internal/screen"
	"github.com/vistafly/interviewme/internal/screens/home"
	"github.com/vistafly/interviewme/internal/screens/interview"
	"github.com/vistafly/interviewme/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// startNow skips the menus and opens an interview immediately.
func runApp(cmd *cobra.Command, startNow bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	bank, err := loadBank(cfg)
	if err != nil {
		return err
	}

	inputMode, err := capture.ParseMode(cfg.InputMode)
	if err != nil {
		return err
	}
	speech := buildSpeech(ctx, cfg, log, inputMode)
	if speech != nil {
		defer speech.Close()
	} else {
		inputMode = capture.ModeTyped
	}

	narrator, err := buildNarrator(cfg, log)
	if err != nil {
		return err
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.AnswerBudget = cfg.AnswerBudget

	log.Info("starting",
		"questions", len(bank.Questions),
		"input", inputMode,
		"narration", cfg.NarrationMode,
		"db", cfg.DBPath)

	newInterview := func() screen.Screen {
		deps := interview.Deps{
			Bank:      bank,
			Config:    sessionCfg,
			Narrator:  narrator,
			InputMode: inputMode,
			Sessions:  st.SessionRepo(),
			Events:    st.EventRepo(),
			Log:       log,
			UserID:    cfg.UserID,
			Company:   cfg.Company,
			JobTitle:  cfg.JobTitle,
		}
		if speech != nil {
			deps.Speech = speech
		}
		return interview.New(deps)
	}
	homeFactory := func() screen.Screen {
		return home.New(newInterview, st.SessionRepo(), cfg.UserID)
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Home:           homeFactory,
		NewInterview:   newInterview,
		SkipWelcome:    noSplash,
		StartInterview: startNow,
		Log:            log,
	})
}

// buildNarrator picks the question reader. A TTS narrator without a usable
// audio player falls back to paced silence.
func buildNarrator(cfg *config.Config, log *logger.Logger) (narration.Narrator, error) {
	mode, err := narration.ParseMode(cfg.NarrationMode)
	if err != nil {
		return nil, err
	}
	switch mode {
	case narration.ModeNone:
		return narration.None{}, nil
	case narration.ModeTTS:
		tts := narration.NewTTS(log, cfg.AudioCacheDir, cfg.Language, cfg.PlayerCommand)
		if err := tts.Available(); err != nil {
			log.Warn("tts unavailable, using paced narration", "error", err)
			fmt.Fprintln(os.Stderr, "Spoken questions unavailable:", err)
			break
		}
		return tts, nil
	}
	return narration.NewPaced(cfg.WordsPerMinute), nil
}

// buildSpeech connects the speech recognizer when speech input is wanted.
// It returns nil when speech is off or cannot be set up; answers are then
// typed.
func buildSpeech(ctx context.Context, cfg *config.Config, log *logger.Logger, mode capture.Mode) *capture.Speech {
	if mode != capture.ModeSpeech {
		return nil
	}
	src := capture.NewCommandSource(cfg.AudioCommand, cfg.SampleRate)
	sp, err := capture.NewSpeech(ctx, log, src, capture.SpeechConfig{
		LanguageCode:    cfg.Language,
		SampleRateHertz: cfg.SampleRate,
	})
	if err != nil {
		log.Warn("speech input unavailable", "error", err)
		fmt.Fprintln(os.Stderr, "Speech input unavailable:", err)
		fmt.Fprintln(os.Stderr, "Answers will be typed.")
		return nil
	}
	return sp
}
