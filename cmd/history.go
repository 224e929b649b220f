package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/report"
	"github.com/vistafly/interviewme/internal/screens/summary"
	"github.com/vistafly/interviewme/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		if !all {
			opts.UserID = cfg.UserID
		}
		sessions, err := st.SessionRepo().ListSessions(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No interviews saved yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-5s  %5s  %-8s  %s\n",
			"Session", "Date", "Grade", "Score", "Answered", "Role")
		fmt.Println(strings.Repeat("─", 100))

		for _, s := range sessions {
			fmt.Printf("%-36s  %-16s  %-5s  %4d%%  %8s  %s\n",
				s.SessionID,
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Grade,
				s.Percentage,
				fmt.Sprintf("%d/%d", s.Answered, s.Total),
				truncate(summary.RoleLine(s.JobTitle, s.Company), 30),
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <session-id>",
	Short: "Show every answer of a saved interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		s, err := st.SessionRepo().GetSession(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if s == nil {
			return fmt.Errorf("session %s not found", args[0])
		}

		var saved report.Saved
		if err := json.Unmarshal(s.Data, &saved); err != nil {
			return fmt.Errorf("decode session %s: %w", s.SessionID, err)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("Session:   %s\n", s.SessionID)
		fmt.Printf("Time:      %s\n", s.Timestamp.Local().Format("2006-01-02 15:04:05"))
		if role := summary.RoleLine(s.JobTitle, s.Company); role != "" {
			fmt.Printf("Role:      %s\n", role)
		}
		if s.UserID != "" {
			fmt.Printf("User:      %s\n", s.UserID)
		}
		fmt.Printf("Grade:     %s (%d%%)\n", s.Grade, s.Percentage)
		fmt.Printf("Answered:  %d of %d\n", s.Answered, s.Total)

		for i, q := range saved.Questions {
			fmt.Println()
			fmt.Println(sep)
			fmt.Printf("%d. %s\n", i+1, q.Question)
			fmt.Println(sep)
			fmt.Printf("Grade: %s (%d%%, %d of %d key points, %s)\n",
				q.Grade, q.Percentage, q.Hits, q.TotalKeys, report.FormatClock(q.TimeUsed))
			if q.Answer != "" {
				fmt.Println(q.Answer)
			} else {
				fmt.Println("(no answer)")
			}
		}

		attempts, err := st.EventRepo().AnswerEvents(ctx, s.SessionID)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(attempts) > len(saved.Questions) {
			fmt.Printf("\n%d attempts recorded including retries.\n", len(attempts))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of interviews to show")
	historyCmd.Flags().Bool("all", false, "Include every user, not just the configured one")

	historyCmd.AddCommand(historyViewCmd)
}
