// ABOUTME: CLI command for rendering a pet's full feeding plan.
// ABOUTME: Prints the markdown report or writes it to a file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/report"
	"github.com/spf13/cobra"
)

var planOutput string

var planCmd = &cobra.Command{
	Use:   "plan <pet>",
	Short: "Render a pet's full feeding plan",
	Long: `Render a pet's full feeding plan as markdown.

The plan recomputes the energy breakdown from the current profile and
includes every meal slot with its foods, portions, and per-item cost,
plus a daily/weekly/monthly cost summary. Costs derived from serving
weights rather than package data are marked as estimates.

EXAMPLES:

  petfeed plan Biscuit
  petfeed plan Biscuit --output biscuit-plan.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		data, err := report.Build(repo, pet, cfg.GetCurrency())
		if err != nil {
			return err
		}
		rendered := report.FeedingPlan(data)

		if planOutput != "" {
			if err := os.WriteFile(planOutput, []byte(rendered), 0o644); err != nil {
				return fmt.Errorf("failed to write plan: %w", err)
			}
			color.Green("✓ Wrote feeding plan to %s", planOutput)
			return nil
		}

		fmt.Print(rendered)
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "write the plan to a file instead of stdout")
	rootCmd.AddCommand(planCmd)
}
