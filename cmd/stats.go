package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/guessr/internal/session"
	"github.com/abhisek/guessr/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics from the game log",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if stats.Games == 0 {
			fmt.Fprintln(out, "No games recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "Games:         %d\n", stats.Games)
		for _, o := range []session.Outcome{session.OutcomeCorrect, session.OutcomeExhausted, session.OutcomeGaveUp, session.OutcomeAbandoned} {
			fmt.Fprintf(out, "  %-11s  %d\n", o, stats.ByOutcome[o])
		}
		fmt.Fprintf(out, "Win rate:      %.0f%%\n", stats.WinRate()*100)
		fmt.Fprintf(out, "Mean rounds:   %.1f\n", stats.MeanRounds)
		fmt.Fprintf(out, "Mean guesses:  %.1f\n", stats.MeanGuesses)
		fmt.Fprintf(out, "Answers:       %d\n", stats.Answers)

		printCounts(cmd, "Most often guessed", stats.TopGuessed)
		printCounts(cmd, "Most often missed", stats.TopMissed)
		return nil
	},
}

func printCounts(cmd *cobra.Command, title string, counts []store.CandidateCount) {
	if len(counts) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", title)
	for _, c := range counts {
		fmt.Fprintf(out, "  %-24s  %d\n", c.CandidateID, c.Count)
	}
}
