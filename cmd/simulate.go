package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/guessr/internal/autoplay"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play every candidate against itself and report how well the engine guesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		policy, err := resolvePolicy(cmd)
		if err != nil {
			return err
		}
		noise, _ := cmd.Flags().GetFloat64("noise")
		if noise < 0 || noise > 1 {
			return fmt.Errorf("--noise must be between 0 and 1, got %v", noise)
		}
		workers, _ := cmd.Flags().GetInt("workers")
		details, _ := cmd.Flags().GetBool("details")

		rep, err := autoplay.Run(cmd.Context(), bank, autoplay.Config{
			Noise:   noise,
			Seed:    resolveSeed(cmd),
			Workers: workers,
			Policy:  policy,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}

		out := cmd.OutOrStdout()
		if details {
			fmt.Fprintf(out, "%-20s  %-10s  %-20s  %6s  %7s\n", "Secret", "Outcome", "Guess", "Rounds", "Guesses")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, r := range rep.Results {
				mark := " "
				if r.Correct {
					mark = "✓"
				}
				fmt.Fprintf(out, "%-20s  %-10s  %-20s  %6d  %7d %s\n",
					r.Secret, r.Outcome, r.Guess, r.Rounds, r.Guesses, mark)
			}
			fmt.Fprintln(out)
		}

		fmt.Fprintf(out, "Games:         %d\n", rep.Games())
		fmt.Fprintf(out, "Guessed:       %d (%.0f%%)\n", rep.Correct, rep.SuccessRate()*100)
		fmt.Fprintf(out, "Exhausted:     %d\n", rep.Exhausted)
		fmt.Fprintf(out, "Mean rounds:   %.1f\n", rep.MeanRounds)
		fmt.Fprintf(out, "Mean guesses:  %.1f\n", rep.MeanGuesses)
		fmt.Fprintf(out, "Seed:          %d\n", rep.Seed)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64("noise", 0, "Chance (0-1) that the simulated player hedges an answer")
	simulateCmd.Flags().Int("workers", 0, "Games to play in parallel (default GOMAXPROCS)")
	simulateCmd.Flags().Bool("details", false, "Print one line per game")
}
