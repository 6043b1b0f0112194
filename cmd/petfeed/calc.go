// ABOUTME: CLI command for calculating a pet's daily energy requirement.
// ABOUTME: Prints the RER and the six-factor MER breakdown.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/breeds"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/conditions"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/spf13/cobra"
)

var calcSave bool

var calcCmd = &cobra.Command{
	Use:     "calc <pet>",
	Aliases: []string{"c"},
	Short:   "Calculate daily calorie target",
	Long: `Calculate a pet's daily calorie target from its stored profile.

The resting energy requirement (RER) comes from body weight alone.
The maintenance energy requirement (MER) scales RER by six factors:
baseline (species/neuter status), activity, life stage, environment,
body condition, and health conditions.

Use --save to store the result as the pet's daily calorie target,
which meal planning uses.

EXAMPLES:

  petfeed calc Biscuit           # Show the breakdown
  petfeed calc Biscuit --save    # Also save as the daily target
  petfeed calc a1b2c3d4          # Pets resolve by ID prefix too`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}
		if pet.Weight <= 0 {
			return fmt.Errorf("%s has no weight recorded; set one with 'petfeed pet update %s --weight <value>'", pet.Name, pet.Name)
		}

		result := calculateEnergy(pet)

		weightKg := calc.ConvertWeight(pet.Weight, pet.WeightUnit, calc.Kilogram)
		fmt.Printf("%s  %.1f %s (%.1f kg)\n\n", color.New(color.Bold).Sprint(pet.Name), pet.Weight, pet.WeightUnit, weightKg)

		faint := color.New(color.Faint)
		for _, f := range result.Breakdown.Factors() {
			fmt.Printf("  %s %.2f\n", faint.Sprint(padRight(f.Label, 22)), f.Value)
		}
		fmt.Println()
		fmt.Printf("  RER: %d kcal/day  ×%.2f\n", result.RER, result.Multiplier)
		color.Green("  Daily target: %d kcal", result.MER)

		if calcSave {
			pet.DailyCalories = result.MER
			if err := repo.UpdatePet(pet); err != nil {
				return fmt.Errorf("failed to save daily calories: %w", err)
			}
			fmt.Println()
			color.Green("✓ Saved as %s's daily target", pet.Name)
		}
		return nil
	},
}

// calculateEnergy runs the MER calculator with the breed and condition
// lookups wired in.
func calculateEnergy(pet *models.Pet) calc.Result {
	return calc.CalculateMER(pet.CalcInput(), calc.Options{
		LongHaired: breeds.IsLongHaired(pet.Species, pet.Breed),
		Conditions: conditions.Table(),
	})
}

func init() {
	calcCmd.Flags().BoolVar(&calcSave, "save", false, "save the result as the pet's daily calorie target")
	rootCmd.AddCommand(calcCmd)
}
