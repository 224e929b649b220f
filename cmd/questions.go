package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/question"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect question banks",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of the configured bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		bank, err := loadBank(cfg)
		if err != nil {
			return err
		}

		source := cfg.QuestionsFile
		if source == "" {
			source = "built-in"
		}
		fmt.Printf("Bank: %s\n\n", source)

		fmt.Printf("%3s  %-60s  %4s  %s\n", "#", "Question", "Keys", "Tip")
		fmt.Println(strings.Repeat("─", 80))

		for i, q := range bank.Questions {
			text := q.Text
			if len([]rune(text)) > 60 {
				text = string([]rune(text)[:57]) + "..."
			}
			tip := ""
			if q.Tip != "" {
				tip = "yes"
			}
			fmt.Printf("%3d  %-60s  %4d  %s\n", i+1, text, len(q.KeyPhrases), tip)
		}

		fmt.Printf("\n%d questions\n", len(bank.Questions))
		return nil
	},
}

var questionsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a question bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := question.LoadFile(args[0])
		if err != nil {
			return err
		}
		keys := 0
		for _, q := range bank.Questions {
			keys += len(q.KeyPhrases)
		}
		fmt.Printf("%s: ok, %d questions, %d key phrases\n", args[0], len(bank.Questions), keys)
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsCheckCmd)
}
