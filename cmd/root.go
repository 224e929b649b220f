package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/config"
	"github.com/vistafly/interviewme/internal/question"
	"github.com/vistafly/interviewme/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interviewme",
	Short: "Mock interview practice in the terminal",
	Long: `InterviewMe reads interview questions aloud, listens to (or reads) your
answer against a countdown, and grades it by the key points it covers.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/interviewme/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides INTERVIEWME_DB env var)")
	pf.String("questions", "", "Question bank file (.yaml or .json)")
	pf.String("user", "", "User ID that sessions are recorded under")
	pf.String("company", "", "Company name shown on reports")
	pf.String("job-title", "", "Job title shown on reports")
	pf.Bool("typed", false, "Type answers instead of speaking them")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings builds the configuration from the config file, environment
// and command-line flags (highest priority), with paths resolved against
// the data directory.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"db", &cfg.DBPath},
		{"questions", &cfg.QuestionsFile},
		{"user", &cfg.UserID},
		{"company", &cfg.Company},
		{"job-title", &cfg.JobTitle},
	}
	for _, o := range overrides {
		if v, _ := cmd.Flags().GetString(o.flag); v != "" {
			*o.dst = v
		}
	}
	if typed, _ := cmd.Flags().GetBool("typed"); typed {
		cfg.InputMode = "typed"
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.Resolve(dataDir)
	return cfg, nil
}

// openStore loads settings and opens the session database.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}

// loadBank returns the configured question bank, or the built-in one when
// no file is set.
func loadBank(cfg *config.Config) (*question.Bank, error) {
	if cfg.QuestionsFile == "" {
		return question.DefaultBank(), nil
	}
	bank, err := question.LoadFile(cfg.QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return bank, nil
}
