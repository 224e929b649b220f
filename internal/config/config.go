package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all user-adjustable settings.
type Config struct {
	DBPath        string `yaml:"db_path"`
	LogFile       string `yaml:"log_file"`
	LogMode       string `yaml:"log_mode"`
	QuestionsFile string `yaml:"questions_file"`

	UserID   string `yaml:"user_id"`
	Company  string `yaml:"company"`
	JobTitle string `yaml:"job_title"`

	AnswerBudget time.Duration `yaml:"answer_budget"`

	InputMode    string `yaml:"input_mode"`
	Language     string `yaml:"language"`
	AudioCommand string `yaml:"audio_command"`
	SampleRate   int    `yaml:"sample_rate"`

	NarrationMode  string `yaml:"narration_mode"`
	PlayerCommand  string `yaml:"player_command"`
	WordsPerMinute int    `yaml:"words_per_minute"`
	AudioCacheDir  string `yaml:"audio_cache_dir"`
}

// Default returns the built-in settings. Paths are left empty and resolved
// against the data directory by Resolve.
func Default() *Config {
	return &Config{
		LogMode:        "dev",
		AnswerBudget:   120 * time.Second,
		InputMode:      "typed",
		Language:       "en-US",
		SampleRate:     16000,
		NarrationMode:  "paced",
		WordsPerMinute: 160,
	}
}

// Load builds the configuration from defaults, the YAML file at path, a
// .env file in the working directory and INTERVIEWME_* variables, in that
// order. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.AnswerBudget < time.Second {
		errs = append(errs, fmt.Errorf("answer_budget must be at least 1s, got %s", c.AnswerBudget))
	}
	switch c.InputMode {
	case "typed", "speech":
	default:
		errs = append(errs, fmt.Errorf("input_mode must be typed or speech, got %q", c.InputMode))
	}
	switch c.NarrationMode {
	case "paced", "tts", "none":
	default:
		errs = append(errs, fmt.Errorf("narration_mode must be paced, tts or none, got %q", c.NarrationMode))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate))
	}
	if c.WordsPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("words_per_minute must be positive, got %d", c.WordsPerMinute))
	}
	return errors.Join(errs...)
}

// Resolve fills empty paths with locations under dataDir.
func (c *Config) Resolve(dataDir string) {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "interviewme.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "interviewme.log")
	}
	if c.AudioCacheDir == "" {
		c.AudioCacheDir = filepath.Join(dataDir, "audio")
	}
}

// DataDir resolves the data directory in priority order:
// 1. INTERVIEWME_HOME environment variable
// 2. $XDG_DATA_HOME/interviewme
// 3. ~/.local/share/interviewme
func DataDir() (string, error) {
	if p := os.Getenv("INTERVIEWME_HOME"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "interviewme")
	return p, os.MkdirAll(p, 0o755)
}

// DefaultPath returns the config file location:
// $XDG_CONFIG_HOME/interviewme/config.yaml or ~/.config/interviewme/config.yaml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "interviewme", "config.yaml")
}
