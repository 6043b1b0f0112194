// ABOUTME: CLI commands for the food database.
// ABOUTME: Supports add, list, show, delete, and label scanning subcommands.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/feedingfriend/petfeed/internal/scan"
	"github.com/spf13/cobra"
)

var (
	foodServingGrams float64
	foodProtein      float64
	foodFat          float64
	foodFiber        float64
	foodPrice        float64
	foodPackageSize  float64
	foodPackageUnit  string
	foodListCategory string
	scanAdd          bool
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Manage the food database",
	Long: `Manage the food database.

Every food records calories per one serving unit (cup, can, oz, g,
piece, scoop, or pump). Optional extras: exact grams per serving,
guaranteed-analysis macros, and package price/size for cost analytics.

EXAMPLES:

  petfeed food add Acme "Chicken & Rice" dry 380 cup
  petfeed food add Acme "Salmon Pate" wet 185 can --price 36 --size 24 --package-unit cans
  petfeed food list
  petfeed food list --category dry
  petfeed food scan label.txt --add`,
}

var foodAddCmd = &cobra.Command{
	Use:   "add <brand> <name> <category> <calories> <serving-unit>",
	Short: "Add a food",
	Long: `Add a food to the database.

Category is one of: dry, wet, raw, treat, supplement.
Calories are per exactly one serving unit.
Serving unit is one of: cup, can, oz, g, piece, scoop, pump.

OPTIONS:

  --grams          Exact grams per serving unit (avoids density estimates)
  --protein        Crude protein %
  --fat            Crude fat %
  --fiber          Crude fiber %
  --price          Package price
  --size           Package size (with --package-unit)
  --package-unit   lb, kg, g, oz, cups, or cans

EXAMPLES:

  petfeed food add Acme "Chicken & Rice" dry 380 cup --grams 105
  petfeed food add Acme "Salmon Pate" wet 185 can --price 36 --size 24 --package-unit cans
  petfeed food add Yum "Training Bits" treat 3 piece`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		brand, name, category := args[0], args[1], args[2]

		if !models.IsValidFoodCategory(category) {
			return fmt.Errorf("unknown food category: %s (use dry, wet, raw, treat, or supplement)", category)
		}
		calories, err := strconv.ParseFloat(args[3], 64)
		if err != nil || calories <= 0 {
			return fmt.Errorf("invalid calories: %s", args[3])
		}
		if !models.IsValidServingUnit(args[4]) {
			return fmt.Errorf("unknown serving unit: %s (use cup, can, oz, g, piece, scoop, or pump)", args[4])
		}

		food := models.NewFood(brand, name, calc.FoodCategory(category), calories, calc.ServingUnit(args[4]))
		applyFoodFlags(cmd, food)

		if err := repo.CreateFood(food); err != nil {
			return fmt.Errorf("failed to create food: %w", err)
		}

		color.Green("✓ Added %s %s", food.Brand, food.Name)
		fmt.Printf("  %s %.0f kcal/%s\n",
			color.New(color.Faint).Sprint(food.ID.String()[:8]),
			food.CaloriesPerUnit, food.ServingUnit)
		return nil
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List foods",
	Long: `List foods in the database.

Each line shows: ID  BRAND  NAME  CATEGORY  CALORIES

Use --category to filter: dry, wet, raw, treat, supplement.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var category *calc.FoodCategory
		if foodListCategory != "" {
			if !models.IsValidFoodCategory(foodListCategory) {
				return fmt.Errorf("unknown food category: %s", foodListCategory)
			}
			c := calc.FoodCategory(foodListCategory)
			category = &c
		}

		foods, err := repo.ListFoods(category)
		if err != nil {
			return fmt.Errorf("failed to list foods: %w", err)
		}

		if len(foods) == 0 {
			fmt.Println("No foods found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, f := range foods {
			priced := ""
			if f.HasPackageData() {
				priced = faint.Sprintf(" ($%.2f/%.0f %s)", *f.PackagePrice, *f.PackageSize, *f.PackageUnit)
			}
			fmt.Printf("%s %s %s %s %.0f kcal/%s%s\n",
				faint.Sprint(f.ID.String()[:8]),
				padRight(f.Brand, 12),
				padRight(f.Name, 24),
				padRight(string(f.Category), 10),
				f.CaloriesPerUnit, f.ServingUnit,
				priced)
		}
		return nil
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <food-id>",
	Short: "Show a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		food, err := repo.GetFood(args[0])
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s  %s\n", color.New(color.Bold).Sprint(food.Brand), food.Name, faint.Sprint(food.ID.String()))
		fmt.Printf("  Category:  %s\n", food.Category)
		fmt.Printf("  Calories:  %.0f kcal/%s", food.CaloriesPerUnit, food.ServingUnit)
		if kcal100 := calc.CaloriesPer100g(food.Spec()); kcal100 > 0 {
			fmt.Printf(" (%d kcal/100g)", kcal100)
		}
		fmt.Println()
		if food.ServingGrams != nil {
			fmt.Printf("  Serving:   %.0f g per %s\n", *food.ServingGrams, food.ServingUnit)
		}
		if food.ProteinPct != nil {
			fmt.Printf("  Analysis:  %.1f%% protein, %.1f%% fat, %.1f%% fiber\n",
				*food.ProteinPct, *food.FatPct, *food.FiberPct)
		}
		if food.HasPackageData() {
			cpg := calc.CostPerGram(*food.PackagePrice, *food.PackageSize, *food.PackageUnit, food.Category)
			note := ""
			if cpg.IsEstimate {
				note = faint.Sprint(" (estimated)")
			}
			fmt.Printf("  Package:   $%.2f per %.0f %s ($%.4f/g)%s\n",
				*food.PackagePrice, *food.PackageSize, *food.PackageUnit, cpg.Cost, note)
		}
		return nil
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:     "delete <food-id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a food",
	Long: `Delete a food from the database.

Meal line items referencing the food are deleted with it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		food, err := repo.GetFood(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteFood(food.ID.String()); err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}

		color.Green("✓ Deleted %s %s", food.Brand, food.Name)
		return nil
	},
}

var foodScanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Parse a nutrition label",
	Long: `Parse nutrition facts out of label text.

Feed it a text file of label content (for example, OCR output from a
photo of the bag), or "-" to read from stdin. It pulls out calories,
guaranteed-analysis percentages, and serving size, and guesses brand
and product name from the first two lines.

With --add, the parsed food is saved to the database (requires at
least calories and a serving size on the label). Without it, the
parse is only displayed so you can add the food manually.

EXAMPLES:

  petfeed food scan label.txt          # Show what was recognized
  petfeed food scan label.txt --add    # Save it as a dry food`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text []byte
		var err error
		if args[0] == "-" {
			text, err = io.ReadAll(os.Stdin)
		} else {
			text, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read label text: %w", err)
		}

		result := scan.Parse(string(text))

		faint := color.New(color.Faint)
		fmt.Printf("Confidence: %s\n\n", result.Confidence)
		if result.Brand != "" {
			fmt.Printf("  Brand:     %s\n", result.Brand)
		}
		if result.ProductName != "" {
			fmt.Printf("  Product:   %s\n", result.ProductName)
		}
		if result.Calories != nil {
			fmt.Printf("  Calories:  %d kcal\n", *result.Calories)
		}
		if result.Protein != nil {
			fmt.Printf("  Protein:   %.1f%%\n", *result.Protein)
		}
		if result.Fat != nil {
			fmt.Printf("  Fat:       %.1f%%\n", *result.Fat)
		}
		if result.Fiber != nil {
			fmt.Printf("  Fiber:     %.1f%%\n", *result.Fiber)
		}
		if result.Moisture != nil {
			fmt.Printf("  Moisture:  %.1f%%\n", *result.Moisture)
		}
		if result.ServingSize != nil {
			fmt.Printf("  Serving:   %.1f %s\n", *result.ServingSize, result.ServingUnit)
		}

		if !scanAdd {
			fmt.Println()
			fmt.Println(faint.Sprint("Re-run with --add to save this food."))
			return nil
		}

		if result.Calories == nil || result.ServingSize == nil {
			return fmt.Errorf("label is missing calories or serving size; add the food manually with 'petfeed food add'")
		}
		if !models.IsValidServingUnit(result.ServingUnit) {
			return fmt.Errorf("unsupported serving unit %q; add the food manually with 'petfeed food add'", result.ServingUnit)
		}

		brand := result.Brand
		if brand == "" {
			brand = "Unknown"
		}
		name := result.ProductName
		if name == "" {
			name = "Scanned Food"
		}

		// Moisture above 60% marks a wet food; labels rarely say outright.
		category := calc.CategoryDry
		if result.Moisture != nil && *result.Moisture > 60 {
			category = calc.CategoryWet
		}

		food := models.NewFood(brand, name, category, float64(*result.Calories), calc.ServingUnit(result.ServingUnit))
		if result.Protein != nil && result.Fat != nil && result.Fiber != nil {
			food.WithMacros(*result.Protein, *result.Fat, *result.Fiber)
		}

		if err := repo.CreateFood(food); err != nil {
			return fmt.Errorf("failed to create food: %w", err)
		}

		fmt.Println()
		color.Green("✓ Added %s %s", food.Brand, food.Name)
		fmt.Printf("  %s %.0f kcal/%s (%s)\n",
			faint.Sprint(food.ID.String()[:8]),
			food.CaloriesPerUnit, food.ServingUnit, food.Category)
		return nil
	},
}

func applyFoodFlags(cmd *cobra.Command, food *models.Food) {
	flags := cmd.Flags()
	if flags.Changed("grams") && foodServingGrams > 0 {
		food.WithServingGrams(foodServingGrams)
	}
	if flags.Changed("protein") || flags.Changed("fat") || flags.Changed("fiber") {
		food.WithMacros(foodProtein, foodFat, foodFiber)
	}
	if flags.Changed("price") && foodPrice > 0 && foodPackageSize > 0 && foodPackageUnit != "" {
		food.WithPackage(foodPrice, foodPackageSize, foodPackageUnit)
	}
}

func init() {
	foodAddCmd.Flags().Float64Var(&foodServingGrams, "grams", 0, "exact grams per serving unit")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "crude protein %")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "crude fat %")
	foodAddCmd.Flags().Float64Var(&foodFiber, "fiber", 0, "crude fiber %")
	foodAddCmd.Flags().Float64Var(&foodPrice, "price", 0, "package price")
	foodAddCmd.Flags().Float64Var(&foodPackageSize, "size", 0, "package size")
	foodAddCmd.Flags().StringVar(&foodPackageUnit, "package-unit", "", "package size unit (lb, kg, g, oz, cups, cans)")

	foodListCmd.Flags().StringVarP(&foodListCategory, "category", "c", "", "filter by food category")

	foodScanCmd.Flags().BoolVar(&scanAdd, "add", false, "save the parsed food to the database")

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodShowCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	foodCmd.AddCommand(foodScanCmd)
	rootCmd.AddCommand(foodCmd)
}
