// ABOUTME: MCP tool implementations for pet nutrition planning.
// ABOUTME: Provides energy calculation, food, meal plan, and cost tools.
package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/feedingfriend/petfeed/internal/breeds"
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/conditions"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool input types

type calculateEnergyInput struct {
	Pet  string `json:"pet" jsonschema:"Pet name or ID prefix"`
	Save bool   `json:"save,omitempty" jsonschema:"Save the result as the pet's daily calorie target"`
}

type listPetsInput struct{}

type addFoodInput struct {
	Brand           string  `json:"brand" jsonschema:"Food brand name"`
	Name            string  `json:"name" jsonschema:"Product name"`
	Category        string  `json:"category" jsonschema:"Food category (dry/wet/raw/treat/supplement)"`
	CaloriesPerUnit float64 `json:"calories_per_unit" jsonschema:"Calories per one serving unit"`
	ServingUnit     string  `json:"serving_unit" jsonschema:"Serving unit (cup/can/oz/g/piece/scoop/pump)"`
	ServingGrams    float64 `json:"serving_grams,omitempty" jsonschema:"Exact grams per serving unit when known"`
	PackagePrice    float64 `json:"package_price,omitempty" jsonschema:"Package price for cost analytics"`
	PackageSize     float64 `json:"package_size,omitempty" jsonschema:"Package size for cost analytics"`
	PackageUnit     string  `json:"package_unit,omitempty" jsonschema:"Package size unit (lb/kg/g/oz/cups/cans)"`
}

type listFoodsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by food category (dry/wet/raw/treat/supplement)"`
}

type planMealsInput struct {
	Pet       string `json:"pet" jsonschema:"Pet name or ID prefix"`
	MealCount int    `json:"meal_count,omitempty" jsonschema:"Meals per day (1-3; default 2)"`
}

type redistributeMealInput struct {
	MealID string `json:"meal_id" jsonschema:"Meal ID or ID prefix"`
}

type estimateCostInput struct {
	Pet string `json:"pet" jsonschema:"Pet name or ID prefix"`
}

// Tool output types

type factorOutput struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type calculateEnergyOutput struct {
	Pet        string         `json:"pet"`
	WeightKg   float64        `json:"weight_kg"`
	RER        int            `json:"rer"`
	Multiplier float64        `json:"multiplier"`
	MER        int            `json:"mer"`
	Factors    []factorOutput `json:"factors"`
	Message    string         `json:"message"`
}

type addFoodOutput struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type mealOutput struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TargetPercent  float64 `json:"target_percent"`
	TargetCalories int     `json:"target_calories"`
}

type planMealsOutput struct {
	Pet           string       `json:"pet"`
	DailyCalories int          `json:"daily_calories"`
	Meals         []mealOutput `json:"meals"`
	Message       string       `json:"message"`
}

type redistributedItemOutput struct {
	ID                 string  `json:"id"`
	Food               string  `json:"food"`
	Portion            string  `json:"portion"`
	PortionQuantity    float64 `json:"portion_quantity"`
	CalculatedCalories int     `json:"calculated_calories"`
	ManuallyAdjusted   bool    `json:"manually_adjusted"`
}

type redistributeMealOutput struct {
	Meal           string                    `json:"meal"`
	TargetCalories int                       `json:"target_calories"`
	Items          []redistributedItemOutput `json:"items"`
	Message        string                    `json:"message"`
}

type estimateCostOutput struct {
	Pet         string  `json:"pet"`
	DailyCost   float64 `json:"daily_cost"`
	WeeklyCost  float64 `json:"weekly_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	IsEstimate  bool    `json:"is_estimate"`
	Skipped     int     `json:"skipped_items"`
	Message     string  `json:"message"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_energy",
		Description: "Calculate a pet's daily calorie target (RER and MER) from its stored profile",
	}, s.handleCalculateEnergy)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_pets",
		Description: "List all pet profiles with their daily calorie targets",
	}, s.handleListPets)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_food",
		Description: "Add a food to the food database",
	}, s.handleAddFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_foods",
		Description: "List foods in the database, optionally filtered by category",
	}, s.handleListFoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "plan_meals",
		Description: "Create a daily meal plan for a pet, splitting its calorie target across meals and treats",
	}, s.handlePlanMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "redistribute_meal",
		Description: "Rebalance a meal's automatic portions to hit its calorie target, leaving manually adjusted items untouched",
	}, s.handleRedistributeMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "estimate_cost",
		Description: "Estimate daily, weekly, and monthly feeding cost for a pet's current plan",
	}, s.handleEstimateCost)
}

// resolvePet finds a pet by ID prefix first, then by name.
func (s *Server) resolvePet(ref string) (*models.Pet, error) {
	if pet, err := s.repo.GetPet(ref); err == nil {
		return pet, nil
	}
	pet, err := s.repo.GetPetByName(ref)
	if err != nil {
		return nil, fmt.Errorf("no pet matching %q", ref)
	}
	return pet, nil
}

func (s *Server) calculate(pet *models.Pet) calc.Result {
	return calc.CalculateMER(pet.CalcInput(), calc.Options{
		LongHaired: breeds.IsLongHaired(pet.Species, pet.Breed),
		Conditions: conditions.Table(),
	})
}

// Tool handlers

func (s *Server) handleCalculateEnergy(ctx context.Context, req *mcp.CallToolRequest, input calculateEnergyInput) (*mcp.CallToolResult, calculateEnergyOutput, error) {
	pet, err := s.resolvePet(input.Pet)
	if err != nil {
		return nil, calculateEnergyOutput{}, err
	}
	if pet.Weight <= 0 {
		return nil, calculateEnergyOutput{}, fmt.Errorf("pet %s has no weight recorded", pet.Name)
	}

	result := s.calculate(pet)

	if input.Save {
		pet.DailyCalories = result.MER
		if err := s.repo.UpdatePet(pet); err != nil {
			return nil, calculateEnergyOutput{}, fmt.Errorf("failed to save daily calories: %w", err)
		}
	}

	output := calculateEnergyOutput{
		Pet:        pet.Name,
		WeightKg:   math.Round(calc.ConvertWeight(pet.Weight, pet.WeightUnit, calc.Kilogram)*100) / 100,
		RER:        result.RER,
		Multiplier: result.Multiplier,
		MER:        result.MER,
		Message:    fmt.Sprintf("%s needs %d kcal/day", pet.Name, result.MER),
	}
	for _, f := range result.Breakdown.Factors() {
		output.Factors = append(output.Factors, factorOutput{Label: f.Label, Value: f.Value})
	}
	return nil, output, nil
}

func (s *Server) handleListPets(ctx context.Context, req *mcp.CallToolRequest, input listPetsInput) (*mcp.CallToolResult, any, error) {
	pets, err := s.repo.ListPets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pets: %w", err)
	}

	if len(pets) == 0 {
		return nil, map[string]interface{}{"message": "No pets found."}, nil
	}

	results := make([]map[string]interface{}, 0, len(pets))
	for _, p := range pets {
		entry := map[string]interface{}{
			"id":          p.ID.String(),
			"name":        p.Name,
			"species":     string(p.Species),
			"weight":      p.Weight,
			"weight_unit": string(p.WeightUnit),
			"life_stage":  string(p.LifeStage),
		}
		if p.Breed != "" {
			entry["breed"] = p.Breed
		}
		if p.DailyCalories > 0 {
			entry["daily_calories"] = p.DailyCalories
		}
		if len(p.HealthConditions) > 0 {
			entry["health_conditions"] = p.HealthConditions
		}
		results = append(results, entry)
	}
	return nil, results, nil
}

func (s *Server) handleAddFood(ctx context.Context, req *mcp.CallToolRequest, input addFoodInput) (*mcp.CallToolResult, addFoodOutput, error) {
	if !models.IsValidFoodCategory(input.Category) {
		return nil, addFoodOutput{}, fmt.Errorf("unknown food category: %s (valid: %s)",
			input.Category, joinCategories())
	}
	if !models.IsValidServingUnit(input.ServingUnit) {
		return nil, addFoodOutput{}, fmt.Errorf("unknown serving unit: %s", input.ServingUnit)
	}
	if input.CaloriesPerUnit <= 0 {
		return nil, addFoodOutput{}, fmt.Errorf("calories_per_unit must be positive")
	}

	food := models.NewFood(input.Brand, input.Name,
		calc.FoodCategory(input.Category), input.CaloriesPerUnit, calc.ServingUnit(input.ServingUnit))
	if input.ServingGrams > 0 {
		food.WithServingGrams(input.ServingGrams)
	}
	if input.PackagePrice > 0 && input.PackageSize > 0 && input.PackageUnit != "" {
		food.WithPackage(input.PackagePrice, input.PackageSize, input.PackageUnit)
	}

	if err := s.repo.CreateFood(food); err != nil {
		return nil, addFoodOutput{}, fmt.Errorf("failed to create food: %w", err)
	}

	return nil, addFoodOutput{
		ID:      food.ID.String(),
		Brand:   food.Brand,
		Name:    food.Name,
		Message: fmt.Sprintf("Added %s %s (%.0f kcal/%s)", food.Brand, food.Name, food.CaloriesPerUnit, food.ServingUnit),
	}, nil
}

func (s *Server) handleListFoods(ctx context.Context, req *mcp.CallToolRequest, input listFoodsInput) (*mcp.CallToolResult, any, error) {
	var category *calc.FoodCategory
	if input.Category != "" {
		if !models.IsValidFoodCategory(input.Category) {
			return nil, nil, fmt.Errorf("unknown food category: %s", input.Category)
		}
		c := calc.FoodCategory(input.Category)
		category = &c
	}

	foods, err := s.repo.ListFoods(category)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list foods: %w", err)
	}

	if len(foods) == 0 {
		return nil, map[string]interface{}{"message": "No foods found."}, nil
	}

	results := make([]map[string]interface{}, 0, len(foods))
	for _, f := range foods {
		entry := map[string]interface{}{
			"id":                f.ID.String(),
			"brand":             f.Brand,
			"name":              f.Name,
			"category":          string(f.Category),
			"calories_per_unit": f.CaloriesPerUnit,
			"serving_unit":      string(f.ServingUnit),
		}
		if f.ServingGrams != nil {
			entry["serving_grams"] = *f.ServingGrams
		}
		if f.HasPackageData() {
			entry["package_price"] = *f.PackagePrice
			entry["package_size"] = *f.PackageSize
			entry["package_unit"] = *f.PackageUnit
		}
		results = append(results, entry)
	}
	return nil, results, nil
}

func (s *Server) handlePlanMeals(ctx context.Context, req *mcp.CallToolRequest, input planMealsInput) (*mcp.CallToolResult, planMealsOutput, error) {
	pet, err := s.resolvePet(input.Pet)
	if err != nil {
		return nil, planMealsOutput{}, err
	}

	daily := pet.DailyCalories
	if daily <= 0 {
		if pet.Weight <= 0 {
			return nil, planMealsOutput{}, fmt.Errorf("pet %s has no weight recorded; cannot calculate calories", pet.Name)
		}
		result := s.calculate(pet)
		daily = result.MER
		pet.DailyCalories = daily
		if err := s.repo.UpdatePet(pet); err != nil {
			return nil, planMealsOutput{}, fmt.Errorf("failed to save daily calories: %w", err)
		}
	}

	mealCount := input.MealCount
	if mealCount <= 0 {
		mealCount = 2
	}

	// Replace any existing plan for this pet.
	if err := s.repo.DeleteMealsForPet(pet.ID); err != nil {
		return nil, planMealsOutput{}, fmt.Errorf("failed to clear existing meals: %w", err)
	}

	output := planMealsOutput{Pet: pet.Name, DailyCalories: daily}
	for _, slot := range calc.DefaultMealConfig(mealCount) {
		targetCalories := int(math.Round(float64(daily) * slot.Percent / 100))
		meal := models.NewMeal(pet.ID, slot.Name, slot.Percent, targetCalories, slot.SortOrder)
		if err := s.repo.CreateMeal(meal); err != nil {
			return nil, planMealsOutput{}, fmt.Errorf("failed to create meal %s: %w", slot.Name, err)
		}
		output.Meals = append(output.Meals, mealOutput{
			ID:             meal.ID.String(),
			Name:           meal.Name,
			TargetPercent:  meal.TargetPercent,
			TargetCalories: meal.TargetCalories,
		})
	}
	output.Message = fmt.Sprintf("Planned %d meal slots for %s (%d kcal/day)", len(output.Meals), pet.Name, daily)
	return nil, output, nil
}

func (s *Server) handleRedistributeMeal(ctx context.Context, req *mcp.CallToolRequest, input redistributeMealInput) (*mcp.CallToolResult, redistributeMealOutput, error) {
	meal, err := s.repo.GetMeal(input.MealID)
	if err != nil {
		return nil, redistributeMealOutput{}, err
	}

	items, err := s.repo.ListMealItems(meal.ID)
	if err != nil {
		return nil, redistributeMealOutput{}, fmt.Errorf("failed to list meal items: %w", err)
	}
	if len(items) == 0 {
		return nil, redistributeMealOutput{
			Meal:           meal.Name,
			TargetCalories: meal.TargetCalories,
			Message:        "Meal has no foods to redistribute.",
		}, nil
	}

	foodsByID := make(map[string]*models.Food, len(items))
	calcItems := make([]calc.MealItem, 0, len(items))
	for _, mi := range items {
		food, err := s.repo.GetFood(mi.FoodID.String())
		if err != nil {
			return nil, redistributeMealOutput{}, fmt.Errorf("failed to resolve food: %w", err)
		}
		foodsByID[mi.ID.String()] = food
		calcItems = append(calcItems, mi.CalcItem(food))
	}

	updated := calc.Redistribute(float64(meal.TargetCalories), calcItems)

	output := redistributeMealOutput{Meal: meal.Name, TargetCalories: meal.TargetCalories}
	for i, mi := range items {
		u := updated[i]
		food := foodsByID[mi.ID.String()]
		if !u.ManuallyAdjusted && (u.PortionQuantity != mi.PortionQuantity || u.CalculatedCalories != mi.CalculatedCalories) {
			mi.PortionQuantity = u.PortionQuantity
			mi.CalculatedCalories = u.CalculatedCalories
			grams := calc.PortionGrams(mi.PortionQuantity, mi.PortionUnit, food.Spec())
			if grams > 0 {
				mi.PortionGrams = &grams
			}
			if err := s.repo.UpdateMealItem(mi); err != nil {
				return nil, redistributeMealOutput{}, fmt.Errorf("failed to update meal item: %w", err)
			}
		}
		output.Items = append(output.Items, redistributedItemOutput{
			ID:                 mi.ID.String(),
			Food:               fmt.Sprintf("%s %s", food.Brand, food.Name),
			Portion:            calc.FormatPortion(mi.PortionQuantity, mi.PortionUnit),
			PortionQuantity:    mi.PortionQuantity,
			CalculatedCalories: mi.CalculatedCalories,
			ManuallyAdjusted:   mi.ManuallyAdjusted,
		})
	}
	output.Message = fmt.Sprintf("Redistributed %s to %d kcal", meal.Name, meal.TargetCalories)
	return nil, output, nil
}

func (s *Server) handleEstimateCost(ctx context.Context, req *mcp.CallToolRequest, input estimateCostInput) (*mcp.CallToolResult, estimateCostOutput, error) {
	pet, err := s.resolvePet(input.Pet)
	if err != nil {
		return nil, estimateCostOutput{}, err
	}

	meals, err := s.repo.ListMeals(pet.ID)
	if err != nil {
		return nil, estimateCostOutput{}, fmt.Errorf("failed to list meals: %w", err)
	}

	var dailyTotal float64
	isEstimate := false
	skipped := 0
	counted := 0
	for _, m := range meals {
		items, err := s.repo.ListMealItems(m.ID)
		if err != nil {
			return nil, estimateCostOutput{}, fmt.Errorf("failed to list meal items: %w", err)
		}
		for _, mi := range items {
			food, err := s.repo.GetFood(mi.FoodID.String())
			if err != nil {
				return nil, estimateCostOutput{}, fmt.Errorf("failed to resolve food: %w", err)
			}
			dc := food.DailyCost(mi.PortionQuantity, mi.PortionUnit)
			if dc == nil {
				skipped++
				continue
			}
			dailyTotal += dc.Cost
			isEstimate = isEstimate || dc.IsEstimate
			counted++
		}
	}

	if counted == 0 {
		return nil, estimateCostOutput{
			Pet:     pet.Name,
			Skipped: skipped,
			Message: "No priced foods in the plan; add package data to foods to enable cost estimates.",
		}, nil
	}

	output := estimateCostOutput{
		Pet:         pet.Name,
		DailyCost:   math.Round(dailyTotal*100) / 100,
		WeeklyCost:  math.Round(calc.PeriodCost(dailyTotal, calc.PeriodWeekly)*100) / 100,
		MonthlyCost: math.Round(calc.PeriodCost(dailyTotal, calc.PeriodMonthly)*100) / 100,
		IsEstimate:  isEstimate,
		Skipped:     skipped,
		Message:     fmt.Sprintf("Feeding %s costs about %s/day", pet.Name, calc.FormatCost(dailyTotal, true)),
	}
	if isEstimate {
		output.Message += " (" + calc.EstimateWarning(true) + ")"
	}
	return nil, output, nil
}

func joinCategories() string {
	names := make([]string, 0, len(models.AllFoodCategories))
	for _, c := range models.AllFoodCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
