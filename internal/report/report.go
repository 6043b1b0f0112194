// ABOUTME: Feeding plan report rendering: energy breakdown, meal schedule,
// ABOUTME: and cost summary as a markdown document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/feedingfriend/petfeed/internal/breeds"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/conditions"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/feedingfriend/petfeed/internal/storage"
)

// ItemLine pairs a meal line item with its food.
type ItemLine struct {
	Item *models.MealItem
	Food *models.Food
}

// MealSection is one meal slot with its resolved line items.
type MealSection struct {
	Meal  *models.Meal
	Items []ItemLine
}

// PlanData holds everything a feeding plan report needs.
type PlanData struct {
	Pet      *models.Pet
	Result   calc.Result
	Meals    []MealSection
	Currency string
}

// Build assembles plan data for a pet from storage, recomputing the
// energy result from the current profile.
func Build(repo storage.Repository, pet *models.Pet, currency string) (*PlanData, error) {
	result := calc.CalculateMER(pet.CalcInput(), calc.Options{
		LongHaired: breeds.IsLongHaired(pet.Species, pet.Breed),
		Conditions: conditions.Table(),
	})

	meals, err := repo.ListMeals(pet.ID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	data := &PlanData{Pet: pet, Result: result, Currency: currency}
	for _, m := range meals {
		section := MealSection{Meal: m}
		items, err := repo.ListMealItems(m.ID)
		if err != nil {
			return nil, fmt.Errorf("list meal items: %w", err)
		}
		for _, mi := range items {
			food, err := repo.GetFood(mi.FoodID.String())
			if err != nil {
				return nil, fmt.Errorf("resolve food for meal item: %w", err)
			}
			section.Items = append(section.Items, ItemLine{Item: mi, Food: food})
		}
		data.Meals = append(data.Meals, section)
	}
	return data, nil
}

// FeedingPlan renders plan data as a markdown document.
func FeedingPlan(data *PlanData) string {
	var sb strings.Builder
	pet := data.Pet

	sb.WriteString(fmt.Sprintf("# Feeding Plan: %s\n\n", pet.Name))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02")))

	sb.WriteString(profileLine(pet))

	sb.WriteString("## Energy Requirements\n\n")
	sb.WriteString("| Factor | Multiplier |\n")
	sb.WriteString("|--------|------------|\n")
	for _, f := range data.Result.Breakdown.Factors() {
		sb.WriteString(fmt.Sprintf("| %s | %.2f |\n", f.Label, f.Value))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("- RER: %d kcal/day\n", data.Result.RER))
	sb.WriteString(fmt.Sprintf("- Total multiplier: %.2f\n", data.Result.Multiplier))
	sb.WriteString(fmt.Sprintf("- **Daily target: %d kcal**\n\n", data.Result.MER))

	anyEstimate := false
	var dailyTotal float64
	haveCosts := false

	if len(data.Meals) > 0 {
		sb.WriteString("## Meal Schedule\n\n")
	}
	for _, section := range data.Meals {
		m := section.Meal
		sb.WriteString(fmt.Sprintf("### %s (%.0f%%, %d kcal)\n\n", m.Name, m.TargetPercent, m.TargetCalories))
		if len(section.Items) == 0 {
			sb.WriteString("_No foods assigned._\n\n")
			continue
		}
		sb.WriteString("| Food | Portion | Calories | Daily Cost |\n")
		sb.WriteString("|------|---------|----------|------------|\n")
		for _, line := range section.Items {
			portion := calc.FormatPortion(line.Item.PortionQuantity, line.Item.PortionUnit)
			if line.Item.PortionGrams != nil {
				if w := calc.FormatWeight(*line.Item.PortionGrams, line.Item.PortionUnit); w != "" {
					portion += " " + w
				}
			}
			costCell := "-"
			if dc := line.Food.DailyCost(line.Item.PortionQuantity, line.Item.PortionUnit); dc != nil {
				costCell = formatCurrency(data.Currency, dc.Cost)
				if dc.IsEstimate {
					costCell += " *"
					anyEstimate = true
				}
				dailyTotal += dc.Cost
				haveCosts = true
			}
			sb.WriteString(fmt.Sprintf("| %s %s | %s | %d kcal | %s |\n",
				line.Food.Brand, line.Food.Name, portion,
				line.Item.CalculatedCalories, costCell))
		}
		sb.WriteString("\n")
	}

	if haveCosts {
		sb.WriteString("## Cost Summary\n\n")
		sb.WriteString(fmt.Sprintf("- Daily: %s\n", formatCurrency(data.Currency, calc.PeriodCost(dailyTotal, calc.PeriodDaily))))
		sb.WriteString(fmt.Sprintf("- Weekly: %s\n", formatCurrency(data.Currency, calc.PeriodCost(dailyTotal, calc.PeriodWeekly))))
		sb.WriteString(fmt.Sprintf("- Monthly: %s\n", formatCurrency(data.Currency, calc.PeriodCost(dailyTotal, calc.PeriodMonthly))))
		sb.WriteString("\n")
	}

	if anyEstimate {
		sb.WriteString(fmt.Sprintf("\\* %s\n", calc.EstimateWarning(true)))
	}

	return sb.String()
}

func profileLine(pet *models.Pet) string {
	var sb strings.Builder
	neutered := "intact"
	if pet.Neutered {
		neutered = "neutered"
	}
	sb.WriteString(fmt.Sprintf("%.1f %s %s %s, %s", pet.Weight, pet.WeightUnit, neutered, pet.Species, pet.LifeStage))
	if pet.Breed != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", pet.Breed))
	}
	if len(pet.HealthConditions) > 0 {
		var names []string
		for _, id := range pet.HealthConditions {
			if c, ok := conditions.Lookup(id); ok {
				names = append(names, c.Name)
			} else {
				names = append(names, id)
			}
		}
		sb.WriteString(". Conditions: " + strings.Join(names, ", "))
	}
	sb.WriteString("\n\n")
	return sb.String()
}

func formatCurrency(symbol string, v float64) string {
	if symbol == "" {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, v)
}
