// ABOUTME: CLI commands for meal planning.
// ABOUTME: Supports plan, show, add-food, remove-food, set-portion, unlock, and redistribute.
package main

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/spf13/cobra"
)

var (
	mealPlanCount int
	mealPortion   string
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Manage meal plans",
	Long: `Manage a pet's daily meal plan.

A plan splits the daily calorie target into named meal slots (plus a
treats allocation). Foods are assigned to slots; portions are computed
automatically to hit each slot's target.

Setting a portion by hand locks that line item: redistribution leaves
it alone and rebalances the remaining automatic items around it.
Use 'meal unlock' to hand a locked item back to redistribution.

EXAMPLES:

  petfeed meal plan Biscuit                    # Create the slots
  petfeed meal show Biscuit                    # See the plan
  petfeed meal add-food a1b2c3d4 e5f6a7b8     # Assign food to a meal
  petfeed meal set-portion c3d4e5f6 "3/4"     # Hand-set (and lock) a portion
  petfeed meal redistribute a1b2c3d4          # Rebalance automatic items`,
}

var mealPlanCmd = &cobra.Command{
	Use:   "plan <pet>",
	Short: "Create meal slots for a pet",
	Long: `Create meal slots for a pet, splitting its daily calorie target.

Splits by meal count (10%% always goes to treats):

  1 meal    Meal 90%%
  2 meals   Breakfast 45%%, Dinner 45%%
  3 meals   Breakfast 30%%, Lunch 35%%, Dinner 30%% (treats 5%%)

If the pet has no saved daily target, one is calculated and saved
first. Any existing plan for the pet is replaced.

EXAMPLES:

  petfeed meal plan Biscuit
  petfeed meal plan Biscuit --meals 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pet, err := resolvePetArg(args[0])
		if err != nil {
			return err
		}

		daily := pet.DailyCalories
		if daily <= 0 {
			if pet.Weight <= 0 {
				return fmt.Errorf("%s has no weight recorded; cannot calculate calories", pet.Name)
			}
			result := calculateEnergy(pet)
			daily = result.MER
			pet.DailyCalories = daily
			if err := repo.UpdatePet(pet); err != nil {
				return fmt.Errorf("failed to save daily calories: %w", err)
			}
		}

		count := mealPlanCount
		if count <= 0 {
			count = cfg.GetMealsPerDay()
		}

		if err := repo.DeleteMealsForPet(pet.ID); err != nil {
			return fmt.Errorf("failed to clear existing meals: %w", err)
		}

		color.Green("✓ Planned meals for %s (%d kcal/day)", pet.Name, daily)
		faint := color.New(color.Faint)
		for _, slot := range calc.DefaultMealConfig(count) {
			targetCalories := int(math.Round(float64(daily) * slot.Percent / 100))
			meal := models.NewMeal(pet.ID, slot.Name, slot.Percent, targetCalories, slot.SortOrder)
			if err := repo.CreateMeal(meal); err != nil {
				return fmt.Errorf("failed to create meal %s: %w", slot.Name, err)
			}
			fmt.Printf("  %s %s %.0f%%  %d kcal\n",
				faint.Sprint(meal.ID.String()[:8]),
				padRight(meal.Name, 10), meal.TargetPercent, meal.TargetCalories)
		}
		return nil
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <pet>",
	Short: "Show a pet's meal plan",
	Args:  cobra.ExactArgs(1),
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

		faint := color.New(color.Faint)
		for _, m := range meals {
			fmt.Printf("%s %s  %.0f%%  %d kcal\n",
				faint.Sprint(m.ID.String()[:8]),
				color.New(color.Bold).Sprint(m.Name), m.TargetPercent, m.TargetCalories)

			items, err := repo.ListMealItems(m.ID)
			if err != nil {
				return fmt.Errorf("failed to list meal items: %w", err)
			}
			if len(items) == 0 {
				fmt.Println(faint.Sprint("    (no foods assigned)"))
				continue
			}
			for _, mi := range items {
				food, err := repo.GetFood(mi.FoodID.String())
				if err != nil {
					return fmt.Errorf("failed to resolve food: %w", err)
				}
				portion := calc.FormatPortion(mi.PortionQuantity, mi.PortionUnit)
				if mi.PortionGrams != nil {
					if w := calc.FormatWeight(*mi.PortionGrams, mi.PortionUnit); w != "" {
						portion += " " + w
					}
				}
				lock := ""
				if mi.ManuallyAdjusted {
					lock = faint.Sprint(" [locked]")
				}
				fmt.Printf("    %s %s %s  %d kcal%s\n",
					faint.Sprint(mi.ID.String()[:8]),
					padRight(food.Brand+" "+food.Name, 28),
					padRight(portion, 16),
					mi.CalculatedCalories, lock)
			}
		}
		return nil
	},
}

var mealAddFoodCmd = &cobra.Command{
	Use:   "add-food <meal-id> <food-id>",
	Short: "Assign a food to a meal",
	Long: `Assign a food to a meal slot.

Without --portion, the portion is computed automatically: the meal's
automatic items are redistributed so the slot hits its calorie target.

With --portion, the portion is set by hand and the item is locked;
other automatic items in the meal rebalance around it. Portions accept
fractions like "3/4" and "1 1/2".

EXAMPLES:

  petfeed meal add-food a1b2c3d4 e5f6a7b8
  petfeed meal add-food a1b2c3d4 e5f6a7b8 --portion "1/2"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := repo.GetMeal(args[0])
		if err != nil {
			return err
		}
		food, err := repo.GetFood(args[1])
		if err != nil {
			return err
		}

		item := models.NewMealItem(meal.ID, food.ID, 0, food.ServingUnit, 0)

		if mealPortion != "" {
			quantity := calc.ParseFraction(mealPortion)
			if quantity <= 0 {
				return fmt.Errorf("invalid portion: %s", mealPortion)
			}
			item.PortionQuantity = quantity
			item.CalculatedCalories = calc.CaloriesForPortion(quantity, food.ServingUnit, food.Spec())
			item.ManuallyAdjusted = true
			if grams := calc.PortionGrams(quantity, food.ServingUnit, food.Spec()); grams > 0 {
				item.WithGrams(grams)
			}
		}

		if err := repo.AddMealItem(item); err != nil {
			return fmt.Errorf("failed to add meal item: %w", err)
		}

		if err := redistributeMealItems(meal); err != nil {
			return err
		}

		color.Green("✓ Added %s %s to %s", food.Brand, food.Name, meal.Name)
		updated, err := repo.GetMealItem(item.ID.String())
		if err == nil {
			fmt.Printf("  %s %s  %d kcal\n",
				color.New(color.Faint).Sprint(updated.ID.String()[:8]),
				calc.FormatPortion(updated.PortionQuantity, updated.PortionUnit),
				updated.CalculatedCalories)
		}
		return nil
	},
}

var mealRemoveFoodCmd = &cobra.Command{
	Use:   "remove-food <item-id>",
	Short: "Remove a food from a meal",
	Long: `Remove a line item from a meal.

The meal's remaining automatic items are redistributed afterward.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := repo.GetMealItem(args[0])
		if err != nil {
			return err
		}
		meal, err := repo.GetMeal(item.MealID.String())
		if err != nil {
			return err
		}

		if err := repo.DeleteMealItem(item.ID.String()); err != nil {
			return fmt.Errorf("failed to remove meal item: %w", err)
		}

		if err := redistributeMealItems(meal); err != nil {
			return err
		}

		color.Green("✓ Removed food from %s", meal.Name)
		return nil
	},
}

var mealSetPortionCmd = &cobra.Command{
	Use:   "set-portion <item-id> <quantity>",
	Short: "Hand-set a portion (locks the item)",
	Long: `Set a line item's portion by hand.

This locks the item: redistribution will never rewrite it again.
Other automatic items in the meal rebalance around it immediately.
Quantities accept fractions like "3/4" and "1 1/2".

EXAMPLES:

  petfeed meal set-portion c3d4e5f6 "3/4"
  petfeed meal set-portion c3d4e5f6 1.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := repo.GetMealItem(args[0])
		if err != nil {
			return err
		}
		quantity := calc.ParseFraction(args[1])
		if quantity <= 0 {
			return fmt.Errorf("invalid portion: %s", args[1])
		}

		food, err := repo.GetFood(item.FoodID.String())
		if err != nil {
			return err
		}
		meal, err := repo.GetMeal(item.MealID.String())
		if err != nil {
			return err
		}

		item.PortionQuantity = quantity
		item.CalculatedCalories = calc.CaloriesForPortion(quantity, item.PortionUnit, food.Spec())
		item.ManuallyAdjusted = true
		if grams := calc.PortionGrams(quantity, item.PortionUnit, food.Spec()); grams > 0 {
			item.PortionGrams = &grams
		}

		if err := repo.UpdateMealItem(item); err != nil {
			return fmt.Errorf("failed to update meal item: %w", err)
		}

		if err := redistributeMealItems(meal); err != nil {
			return err
		}

		color.Green("✓ Set portion to %s (%d kcal, locked)",
			calc.FormatPortion(item.PortionQuantity, item.PortionUnit), item.CalculatedCalories)
		return nil
	},
}

var mealUnlockCmd = &cobra.Command{
	Use:   "unlock <item-id>",
	Short: "Return a locked item to automatic portions",
	Long: `Clear a line item's manual lock.

The item goes back to automatic portioning and the meal is
redistributed immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := repo.GetMealItem(args[0])
		if err != nil {
			return err
		}
		meal, err := repo.GetMeal(item.MealID.String())
		if err != nil {
			return err
		}

		item.ManuallyAdjusted = false
		if err := repo.UpdateMealItem(item); err != nil {
			return fmt.Errorf("failed to update meal item: %w", err)
		}

		if err := redistributeMealItems(meal); err != nil {
			return err
		}

		color.Green("✓ Unlocked item; portions rebalanced")
		return nil
	},
}

var mealRedistributeCmd = &cobra.Command{
	Use:   "redistribute <meal-id>",
	Short: "Rebalance a meal's automatic portions",
	Long: `Rebalance a meal's automatic portions to hit its calorie target.

Locked items keep their calories; whatever they leave is split equally
among the automatic items. Running it twice changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := repo.GetMeal(args[0])
		if err != nil {
			return err
		}

		if err := redistributeMealItems(meal); err != nil {
			return err
		}

		color.Green("✓ Redistributed %s to %d kcal", meal.Name, meal.TargetCalories)
		return nil
	},
}

// redistributeMealItems rebalances a meal's automatic items and persists
// any changed portions.
func redistributeMealItems(meal *models.Meal) error {
	items, err := repo.ListMealItems(meal.ID)
	if err != nil {
		return fmt.Errorf("failed to list meal items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	foodsByItem := make(map[string]*models.Food, len(items))
	calcItems := make([]calc.MealItem, 0, len(items))
	for _, mi := range items {
		food, err := repo.GetFood(mi.FoodID.String())
		if err != nil {
			return fmt.Errorf("failed to resolve food: %w", err)
		}
		foodsByItem[mi.ID.String()] = food
		calcItems = append(calcItems, mi.CalcItem(food))
	}

	updated := calc.Redistribute(float64(meal.TargetCalories), calcItems)
	for i, mi := range items {
		u := updated[i]
		if u.ManuallyAdjusted || (u.PortionQuantity == mi.PortionQuantity && u.CalculatedCalories == mi.CalculatedCalories) {
			continue
		}
		mi.PortionQuantity = u.PortionQuantity
		mi.CalculatedCalories = u.CalculatedCalories
		food := foodsByItem[mi.ID.String()]
		if grams := calc.PortionGrams(mi.PortionQuantity, mi.PortionUnit, food.Spec()); grams > 0 {
			mi.PortionGrams = &grams
		}
		if err := repo.UpdateMealItem(mi); err != nil {
			return fmt.Errorf("failed to update meal item: %w", err)
		}
	}
	return nil
}

func init() {
	mealPlanCmd.Flags().IntVar(&mealPlanCount, "meals", 0, "meals per day (default from config, usually 2)")
	mealAddFoodCmd.Flags().StringVar(&mealPortion, "portion", "", "hand-set portion (locks the item)")

	mealCmd.AddCommand(mealPlanCmd)
	mealCmd.AddCommand(mealShowCmd)
	mealCmd.AddCommand(mealAddFoodCmd)
	mealCmd.AddCommand(mealRemoveFoodCmd)
	mealCmd.AddCommand(mealSetPortionCmd)
	mealCmd.AddCommand(mealUnlockCmd)
	mealCmd.AddCommand(mealRedistributeCmd)
	rootCmd.AddCommand(mealCmd)
}
