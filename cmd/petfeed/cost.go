// ABOUTME: CLI command for estimating feeding costs.
// ABOUTME: Sums per-item daily cost and projects weekly/monthly totals.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/spf13/cobra"
)

var costCmd = &cobra.Command{
	Use:   "cost <pet>",
	Short: "Estimate daily/weekly/monthly feeding cost",
	Long: `Estimate what a pet's current meal plan costs to feed.

Each meal item's cost comes from its food's package price and size.
Foods without package data are skipped. When a dry or wet food's
package is sized in cups or cans, the per-gram price leans on typical
serving weights, so the total is marked as an estimate.

EXAMPLES:

  petfeed cost Biscuit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		meals, err := repo.ListMeals(pet.ID)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}
		if len(meals) == 0 {
			fmt.Printf("No meal plan for %s. Create one with 'petfeed meal plan %s'.\n", pet.Name, pet.Name)
			return nil
		}

		currency := cfg.GetCurrency()
		faint := color.New(color.Faint)
		var daily float64
		var isEstimate bool
		var skipped int

		for _, m := range meals {
			items, err := repo.ListMealItems(m.ID)
			if err != nil {
				return fmt.Errorf("failed to list meal items: %w", err)
			}
			for _, mi := range items {
				food, err := repo.GetFood(mi.FoodID.String())
				if err != nil {
					return fmt.Errorf("failed to resolve food: %w", err)
				}
				cost := food.DailyCost(mi.PortionQuantity, mi.PortionUnit)
				if cost == nil {
					skipped++
					continue
				}
				daily += cost.Cost
				if cost.IsEstimate {
					isEstimate = true
				}
				marker := ""
				if cost.IsEstimate {
					marker = " *"
				}
				fmt.Printf("  %s %s/day%s\n",
					faint.Sprint(padRight(food.Brand+" "+food.Name, 30)),
					formatMoney(currency, cost.Cost), marker)
			}
		}

		fmt.Println()
		fmt.Printf("  Daily:   %s\n", formatMoney(currency, daily))
		fmt.Printf("  Weekly:  %s\n", formatMoney(currency, calc.PeriodCost(daily, calc.PeriodWeekly)))
		fmt.Printf("  Monthly: %s\n", formatMoney(currency, calc.PeriodCost(daily, calc.PeriodMonthly)))

		if warning := calc.EstimateWarning(isEstimate); warning != "" {
			fmt.Println()
			fmt.Println(faint.Sprint("  * " + warning))
		}
		if skipped > 0 {
			fmt.Println(faint.Sprintf("  %d item(s) skipped (no package pricing)", skipped))
		}
		return nil
	},
}

// formatMoney renders an amount with the configured currency symbol.
// calc.FormatCost embeds a dollar sign, so it never combines with a
// symbol prefix.
func formatMoney(symbol string, v float64) string {
	if symbol == "" {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, v)
}

func init() {
	rootCmd.AddCommand(costCmd)
}
