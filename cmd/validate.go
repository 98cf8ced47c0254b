package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/guessr/internal/catalog"
	"github.com/abhisek/guessr/internal/questionbank"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a catalog file without playing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		bank, err := questionbank.Build(c)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%q, %d candidates, %d questions)\n",
			args[0], bank.Name(), bank.Len(), bank.TotalQuestions())
		return nil
	},
}
