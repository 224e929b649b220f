package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/question"
	"github.com/vistafly/interviewme/internal/report"
	"github.com/vistafly/interviewme/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer questions on the command line (no database, no audio)",
	Long: `Type answers to the configured questions and see how each one grades.

This is a stateless tool for trying out a question bank: nothing is saved,
no questions are read aloud and there is no countdown. A blank line counts
as an empty answer and grades F, as it would in an interview.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 0, "Number of questions to ask (0 = all)")
	previewCmd.Flags().Bool("keys", false, "Show the key phrases after each answer")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	showKeys, _ := cmd.Flags().GetBool("keys")

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	bank, err := loadBank(cfg)
	if err != nil {
		return err
	}

	questions := bank.Questions
	if count > 0 && count < len(questions) {
		questions = questions[:count]
	}
	return preview(os.Stdin, cmd.OutOrStdout(), questions, showKeys)
}

// preview asks each question on out, grades the line read from in and
// prints a session report at the end. A blank line is graded as an empty
// answer.
func preview(in io.Reader, out io.Writer, questions []question.Question, showKeys bool) error {
	grader := grading.NewGrader(grading.DefaultScale)
	scanner := bufio.NewScanner(in)

	var records []session.Record
	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Text)
		if q.Tip != "" {
			fmt.Fprintf(out, "Tip: %s\n", q.Tip)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(no answer)")
		}

		g, err := grader.Grade(answer, q.KeyPhrases)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "%s  %d%%  (%d of %d key points)\n", g.Letter, g.Percentage, g.HitCount, g.TotalKeys)
		if showKeys {
			fmt.Fprintf(out, "Keys: %s\n", strings.Join(q.KeyPhrases, ", "))
		}
		fmt.Fprintln(out)

		records = append(records, session.Record{
			Question: q,
			Answer: session.AnswerAttempt{
				QuestionIndex: i,
				RawText:       answer,
				WordCount:     grading.WordCount(answer),
			},
			Grade: g,
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read answers: %w", err)
	}

	sum := report.Summarize(records, grading.DefaultScale)
	fmt.Fprintf(out, "── Summary: %s %d%%, %d of %d answered ──\n",
		sum.OverallGrade, sum.OverallPercentage, sum.Answered, len(questions))
	return nil
}
