package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the candidates and questions of the catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every candidate",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-20s  %-32s  %9s\n", "ID", "Name", "Questions")
		fmt.Fprintln(out, strings.Repeat("─", 65))

		for _, c := range bank.Candidates() {
			name := c.Name
			if len(name) > 32 {
				name = name[:29] + "..."
			}
			fmt.Fprintf(out, "%-20s  %-32s  %9d\n", c.ID, name, len(bank.Questions(c.ID)))
		}

		fmt.Fprintf(out, "\n%d candidates, %d distinct questions (%s)\n",
			bank.Len(), bank.TotalQuestions(), bank.Name())
		return nil
	},
}

var catalogQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List questions, for one candidate or across the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		id, _ := cmd.Flags().GetString("candidate")
		if id == "" {
			// Every text with how many candidates share it.
			shared := make(map[string]int)
			for _, cid := range bank.CandidateIDs() {
				for _, text := range bank.QuestionTexts(cid) {
					shared[text]++
				}
			}
			fmt.Fprintf(out, "%-60s  %s\n", "Question", "Candidates")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, text := range bank.Texts() {
				fmt.Fprintf(out, "%-60s  %d\n", text, shared[text])
			}
			fmt.Fprintf(out, "\n%d questions\n", bank.TotalQuestions())
			return nil
		}

		c, err := bank.Candidate(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n\n", c.Name, c.ID)
		fmt.Fprintf(out, "%5s  %-10s  %-52s  %s\n", "Order", "Group", "Question", "Depends on")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, q := range bank.Questions(id) {
			var deps []string
			for _, text := range slices.Sorted(maps.Keys(q.Dependencies)) {
				deps = append(deps, fmt.Sprintf("%s=%s", text, q.Dependencies[text]))
			}
			fmt.Fprintf(out, "%5d  %-10s  %-52s  %s\n", q.Order, q.Group, q.Text, strings.Join(deps, ", "))
		}
		return nil
	},
}

var catalogGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List questions by display group",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		groups := bank.Groups()
		names := slices.Sorted(maps.Keys(groups))
		for _, name := range names {
			fmt.Fprintf(out, "%s (%d)\n", name, len(groups[name]))
			for _, text := range groups[name] {
				fmt.Fprintf(out, "  %s\n", text)
			}
		}
		return nil
	},
}

func init() {
	catalogQuestionsCmd.Flags().String("candidate", "", "Show the questions of one candidate, by ID")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogQuestionsCmd)
	catalogCmd.AddCommand(catalogGroupsCmd)
}
