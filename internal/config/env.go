package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func (c *Config) applyEnv() error {
	setString(&c.DBPath, "INTERVIEWME_DB")
	setString(&c.LogFile, "INTERVIEWME_LOG_FILE")
	setString(&c.LogMode, "INTERVIEWME_LOG_MODE")
	setString(&c.QuestionsFile, "INTERVIEWME_QUESTIONS")
	setString(&c.UserID, "INTERVIEWME_USER")
	setString(&c.Company, "INTERVIEWME_COMPANY")
	setString(&c.JobTitle, "INTERVIEWME_JOB_TITLE")
	setString(&c.InputMode, "INTERVIEWME_INPUT")
	setString(&c.Language, "INTERVIEWME_LANGUAGE")
	setString(&c.AudioCommand, "INTERVIEWME_AUDIO_COMMAND")
	setString(&c.NarrationMode, "INTERVIEWME_NARRATION")
	setString(&c.PlayerCommand, "INTERVIEWME_PLAYER")
	setString(&c.AudioCacheDir, "INTERVIEWME_AUDIO_CACHE")

	return errors.Join(
		setDuration(&c.AnswerBudget, "INTERVIEWME_ANSWER_BUDGET"),
		setInt(&c.SampleRate, "INTERVIEWME_SAMPLE_RATE"),
		setInt(&c.WordsPerMinute, "INTERVIEWME_WPM"),
	)
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
