// ABOUTME: Export and import functionality for pet nutrition data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/feedingfriend/petfeed/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for pet nutrition data.
// Meal items are flat and keyed by MealID so imports can restore the
// foreign-key chain in order.
type ExportData struct {
	Version    string             `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Tool       string             `json:"tool" yaml:"tool"`
	Pets       []*models.Pet      `json:"pets" yaml:"pets"`
	Foods      []*models.Food     `json:"foods" yaml:"foods"`
	Meals      []*models.Meal     `json:"meals" yaml:"meals"`
	MealItems  []*models.MealItem `json:"meal_items" yaml:"meal_items"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	pets, err := d.ListPets()
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	foods, err := d.ListFoods(nil)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	var meals []*models.Meal
	var items []*models.MealItem
	for _, p := range pets {
		petMeals, err := d.ListMeals(p.ID)
		if err != nil {
			return nil, fmt.Errorf("list meals: %w", err)
		}
		for _, m := range petMeals {
			meals = append(meals, m)
			mealItems, err := d.ListMealItems(m.ID)
			if err != nil {
				return nil, fmt.Errorf("list meal items: %w", err)
			}
			items = append(items, mealItems...)
		}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "petfeed",
		Pets:       pets,
		Foods:      foods,
		Meals:      meals,
		MealItems:  items,
	}, nil
}

// ImportData imports data from an export file. Pets and foods go first
// so the meal foreign keys resolve.
func (d *DB) ImportData(data *ExportData) error {
	for _, p := range data.Pets {
		if err := d.CreatePet(p); err != nil {
			return fmt.Errorf("import pet: %w", err)
		}
	}
	for _, f := range data.Foods {
		if err := d.CreateFood(f); err != nil {
			return fmt.Errorf("import food: %w", err)
		}
	}
	for _, m := range data.Meals {
		if err := d.CreateMeal(m); err != nil {
			return fmt.Errorf("import meal: %w", err)
		}
	}
	for _, mi := range data.MealItems {
		if err := d.AddMealItem(mi); err != nil {
			return fmt.Errorf("import meal item: %w", err)
		}
	}
	return nil
}

// ExportJSON renders export data as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML renders export data as a YAML summary with foods grouped by
// category and meals grouped under their pet.
func ExportYAML(data *ExportData) ([]byte, error) {
	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Pets       []yamlPet             `yaml:"pets"`
		Foods      map[string][]yamlFood `yaml:"foods"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Foods:      make(map[string][]yamlFood),
	}

	foodNames := make(map[string]string)
	for _, f := range data.Foods {
		foodNames[f.ID.String()] = f.Brand + " " + f.Name
		yf := yamlFood{
			ID:              f.ID.String()[:8],
			Brand:           f.Brand,
			Name:            f.Name,
			CaloriesPerUnit: f.CaloriesPerUnit,
			ServingUnit:     string(f.ServingUnit),
		}
		yamlData.Foods[string(f.Category)] = append(yamlData.Foods[string(f.Category)], yf)
	}

	itemsByMeal := make(map[string][]yamlMealItem)
	for _, mi := range data.MealItems {
		itemsByMeal[mi.MealID.String()] = append(itemsByMeal[mi.MealID.String()], yamlMealItem{
			Food:             foodNames[mi.FoodID.String()],
			Quantity:         mi.PortionQuantity,
			Unit:             string(mi.PortionUnit),
			Calories:         mi.CalculatedCalories,
			ManuallyAdjusted: mi.ManuallyAdjusted,
		})
	}

	mealsByPet := make(map[string][]yamlMeal)
	for _, m := range data.Meals {
		mealsByPet[m.PetID.String()] = append(mealsByPet[m.PetID.String()], yamlMeal{
			Name:           m.Name,
			TargetPercent:  m.TargetPercent,
			TargetCalories: m.TargetCalories,
			Items:          itemsByMeal[m.ID.String()],
		})
	}

	for _, p := range data.Pets {
		yp := yamlPet{
			ID:            p.ID.String()[:8],
			Name:          p.Name,
			Species:       string(p.Species),
			Weight:        p.Weight,
			WeightUnit:    string(p.WeightUnit),
			DailyCalories: p.DailyCalories,
			Meals:         mealsByPet[p.ID.String()],
		}
		if p.Notes != nil {
			yp.Notes = *p.Notes
		}
		yamlData.Pets = append(yamlData.Pets, yp)
	}

	return yaml.Marshal(yamlData)
}

type yamlPet struct {
	ID            string     `yaml:"id"`
	Name          string     `yaml:"name"`
	Species       string     `yaml:"species"`
	Weight        float64    `yaml:"weight"`
	WeightUnit    string     `yaml:"weight_unit"`
	DailyCalories int        `yaml:"daily_calories,omitempty"`
	Notes         string     `yaml:"notes,omitempty"`
	Meals         []yamlMeal `yaml:"meals,omitempty"`
}

type yamlFood struct {
	ID              string  `yaml:"id"`
	Brand           string  `yaml:"brand"`
	Name            string  `yaml:"name"`
	CaloriesPerUnit float64 `yaml:"calories_per_unit"`
	ServingUnit     string  `yaml:"serving_unit"`
}

type yamlMeal struct {
	Name           string         `yaml:"name"`
	TargetPercent  float64        `yaml:"target_percent"`
	TargetCalories int            `yaml:"target_calories"`
	Items          []yamlMealItem `yaml:"items,omitempty"`
}

type yamlMealItem struct {
	Food             string  `yaml:"food"`
	Quantity         float64 `yaml:"quantity"`
	Unit             string  `yaml:"unit"`
	Calories         int     `yaml:"calories"`
	ManuallyAdjusted bool    `yaml:"manually_adjusted,omitempty"`
}

// ExportMarkdown renders export data as Markdown tables.
func ExportMarkdown(data *ExportData) string {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# PetFeed Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(data.Pets) > 0 {
		sb.WriteString("## Pets\n\n")
		sb.WriteString("| Name | Species | Weight | Daily Calories |\n")
		sb.WriteString("|------|---------|--------|----------------|\n")
		for _, p := range data.Pets {
			daily := ""
			if p.DailyCalories > 0 {
				daily = fmt.Sprintf("%d kcal", p.DailyCalories)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %.1f %s | %s |\n",
				p.Name, p.Species, p.Weight, p.WeightUnit, daily))
		}
		sb.WriteString("\n")
	}

	if len(data.Foods) > 0 {
		sb.WriteString("## Foods\n\n")
		sb.WriteString("| Brand | Name | Category | Calories |\n")
		sb.WriteString("|-------|------|----------|----------|\n")
		for _, f := range data.Foods {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.0f kcal/%s |\n",
				f.Brand, f.Name, f.Category, f.CaloriesPerUnit, f.ServingUnit))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ImportJSON imports data from JSON bytes into any repository.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&exportData)
}
