package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vistafly/interviewme/internal/grading"
	"github.com/vistafly/interviewme/internal/screens/home"
	"github.com/vistafly/interviewme/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show interview statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.SessionRepo().ListSessions(context.Background(), store.QueryOpts{UserID: cfg.UserID})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No interviews saved yet.")
			return nil
		}

		s := home.ComputeStats(sessions)
		fmt.Printf("Interviews:  %d\n", s.Sessions)
		fmt.Printf("Best score:  %d%%\n", s.BestPct)
		fmt.Printf("Last:        %s (%d%%)\n", s.LastGrade, s.LastPct)
		fmt.Printf("Average:     %d%%\n", averagePct(sessions))

		fmt.Println()
		fmt.Println("Grades")
		fmt.Println(strings.Repeat("─", 32))
		counts := gradeCounts(sessions)
		letters := make([]string, 0, len(grading.DefaultScale)+1)
		for _, t := range grading.DefaultScale {
			letters = append(letters, t.Letter)
		}
		letters = append(letters, grading.FailingLetter)
		for _, l := range letters {
			fmt.Printf("%-3s  %4d  %s\n", l, counts[l], strings.Repeat("█", counts[l]))
		}
		return nil
	},
}

// averagePct is the mean session percentage, rounded to the nearest integer.
func averagePct(sessions []store.SavedSession) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.Percentage
	}
	return grading.Percentage(total, len(sessions)*100)
}

func gradeCounts(sessions []store.SavedSession) map[string]int {
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.Grade]++
	}
	return counts
}
