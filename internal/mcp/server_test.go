// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/feedingfriend/petfeed/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "petfeed-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "petfeed.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// seedPet creates a 22 lb neutered adult dog, which works out to 630 kcal/day.
func seedPet(t *testing.T, db *storage.DB) *models.Pet {
	t.Helper()
	pet := models.NewPet("Biscuit", calc.SpeciesDog).WithWeight(22, calc.Pound)
	if err := db.CreatePet(pet); err != nil {
		t.Fatalf("Failed to create pet: %v", err)
	}
	return pet
}

func seedFood(t *testing.T, db *storage.DB) *models.Food {
	t.Helper()
	food := models.NewFood("Acme", "Chicken & Rice", calc.CategoryDry, 380, calc.UnitCup).
		WithPackage(20.00, 10, "lb")
	if err := db.CreateFood(food); err != nil {
		t.Fatalf("Failed to create food: %v", err)
	}
	return food
}

func TestNewServer(t *testing.T) {
	db := setupTestDB(t)

	server, err := NewServer(db)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server == nil {
		t.Fatal("Expected non-nil server")
	}
	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
}

func TestHandleCalculateEnergy(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)

	tests := []struct {
		name    string
		input   calculateEnergyInput
		wantMER int
		wantErr bool
	}{
		{
			name:    "resolve by name",
			input:   calculateEnergyInput{Pet: "Biscuit"},
			wantMER: 630,
		},
		{
			name:    "resolve by ID prefix",
			input:   calculateEnergyInput{Pet: pet.ID.String()[:8]},
			wantMER: 630,
		},
		{
			name:    "unknown pet",
			input:   calculateEnergyInput{Pet: "nonexistent"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleCalculateEnergy(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if output.MER != tt.wantMER {
				t.Errorf("MER = %d, want %d", output.MER, tt.wantMER)
			}
			if output.RER != 394 {
				t.Errorf("RER = %d, want 394", output.RER)
			}
			if len(output.Factors) != 6 {
				t.Errorf("Factors count = %d, want 6", len(output.Factors))
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
		})
	}
}

func TestHandleCalculateEnergySave(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)

	_, output, err := server.handleCalculateEnergy(ctx, &mcp.CallToolRequest{}, calculateEnergyInput{
		Pet:  "Biscuit",
		Save: true,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, err := db.GetPet(pet.ID.String())
	if err != nil {
		t.Fatalf("Failed to reload pet: %v", err)
	}
	if stored.DailyCalories != output.MER {
		t.Errorf("DailyCalories = %d, want %d", stored.DailyCalories, output.MER)
	}
}

func TestHandleCalculateEnergyNoWeight(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	pet := models.NewPet("Ghost", calc.SpeciesCat)
	if err := db.CreatePet(pet); err != nil {
		t.Fatal(err)
	}

	_, _, err := server.handleCalculateEnergy(ctx, &mcp.CallToolRequest{}, calculateEnergyInput{Pet: "Ghost"})
	if err == nil {
		t.Error("Expected error for pet without weight")
	}
}

func TestHandleListPets(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	seedPet(t, db)

	_, output, err := server.handleListPets(ctx, &mcp.CallToolRequest{}, listPetsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	pets, ok := output.([]map[string]interface{})
	if !ok {
		t.Fatal("Expected pet list output")
	}
	if len(pets) != 1 {
		t.Errorf("Expected 1 pet, got %d", len(pets))
	}
	if pets[0]["name"] != "Biscuit" {
		t.Errorf("name = %v, want Biscuit", pets[0]["name"])
	}
}

func TestHandleListPetsEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	_, output, err := server.handleListPets(ctx, &mcp.CallToolRequest{}, listPetsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Should return a message map for empty results
	if _, ok := output.(map[string]interface{}); !ok {
		t.Error("Expected message map for empty results")
	}
}

func TestHandleAddFood(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addFoodInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid dry food",
			input: addFoodInput{
				Brand:           "Acme",
				Name:            "Chicken & Rice",
				Category:        "dry",
				CaloriesPerUnit: 380,
				ServingUnit:     "cup",
			},
		},
		{
			name: "food with package data",
			input: addFoodInput{
				Brand:           "Acme",
				Name:            "Salmon Pate",
				Category:        "wet",
				CaloriesPerUnit: 185,
				ServingUnit:     "can",
				PackagePrice:    36.00,
				PackageSize:     24,
				PackageUnit:     "cans",
			},
		},
		{
			name: "invalid category",
			input: addFoodInput{
				Brand:           "Acme",
				Name:            "Mystery",
				Category:        "frozen",
				CaloriesPerUnit: 100,
				ServingUnit:     "cup",
			},
			wantErr:   true,
			errSubstr: "unknown food category",
		},
		{
			name: "invalid serving unit",
			input: addFoodInput{
				Brand:           "Acme",
				Name:            "Mystery",
				Category:        "dry",
				CaloriesPerUnit: 100,
				ServingUnit:     "bucket",
			},
			wantErr:   true,
			errSubstr: "unknown serving unit",
		},
		{
			name: "zero calories",
			input: addFoodInput{
				Brand:           "Acme",
				Name:            "Air",
				Category:        "dry",
				CaloriesPerUnit: 0,
				ServingUnit:     "cup",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddFood(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}

			stored, err := db.GetFood(output.ID)
			if err != nil {
				t.Fatalf("Food not persisted: %v", err)
			}
			if stored.Name != tt.input.Name {
				t.Errorf("Name = %s, want %s", stored.Name, tt.input.Name)
			}
		})
	}
}

func TestHandleListFoods(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	seedFood(t, db)

	wet := models.NewFood("Acme", "Salmon Pate", calc.CategoryWet, 185, calc.UnitCan)
	if err := db.CreateFood(wet); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		input     listFoodsInput
		wantCount int
		wantErr   bool
	}{
		{name: "all foods", input: listFoodsInput{}, wantCount: 2},
		{name: "filter dry", input: listFoodsInput{Category: "dry"}, wantCount: 1},
		{name: "invalid category", input: listFoodsInput{Category: "frozen"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListFoods(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			foods, ok := output.([]map[string]interface{})
			if !ok {
				t.Fatal("Expected food list output")
			}
			if len(foods) != tt.wantCount {
				t.Errorf("Expected %d foods, got %d", tt.wantCount, len(foods))
			}
		})
	}
}

func TestHandleListFoodsEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	_, output, err := server.handleListFoods(ctx, &mcp.CallToolRequest{}, listFoodsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := output.(map[string]interface{}); !ok {
		t.Error("Expected message map for empty results")
	}
}

func TestHandlePlanMeals(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	pet.DailyCalories = 630
	if err := db.UpdatePet(pet); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handlePlanMeals(ctx, &mcp.CallToolRequest{}, planMealsInput{Pet: "Biscuit"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Default split: Breakfast 45%, Dinner 45%, Treats 10%
	if len(output.Meals) != 3 {
		t.Fatalf("Expected 3 meal slots, got %d", len(output.Meals))
	}
	if output.Meals[0].Name != "Breakfast" || output.Meals[0].TargetCalories != 284 {
		t.Errorf("Breakfast = %+v, want 284 kcal", output.Meals[0])
	}
	if output.Meals[2].Name != "Treats" || output.Meals[2].TargetCalories != 63 {
		t.Errorf("Treats = %+v, want 63 kcal", output.Meals[2])
	}

	meals, err := db.ListMeals(pet.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 3 {
		t.Errorf("Expected 3 persisted meals, got %d", len(meals))
	}
}

func TestHandlePlanMealsThreeMeals(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	pet.DailyCalories = 630
	if err := db.UpdatePet(pet); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handlePlanMeals(ctx, &mcp.CallToolRequest{}, planMealsInput{
		Pet:       "Biscuit",
		MealCount: 3,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(output.Meals) != 4 {
		t.Errorf("Expected 4 meal slots for 3 meals/day, got %d", len(output.Meals))
	}
}

func TestHandlePlanMealsCalculatesWhenUnset(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)

	// No DailyCalories saved; plan_meals should calculate and persist it.
	_, output, err := server.handlePlanMeals(ctx, &mcp.CallToolRequest{}, planMealsInput{Pet: "Biscuit"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.DailyCalories != 630 {
		t.Errorf("DailyCalories = %d, want 630", output.DailyCalories)
	}

	stored, err := db.GetPet(pet.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if stored.DailyCalories != 630 {
		t.Errorf("Persisted DailyCalories = %d, want 630", stored.DailyCalories)
	}
}

func TestHandlePlanMealsReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	pet.DailyCalories = 630
	if err := db.UpdatePet(pet); err != nil {
		t.Fatal(err)
	}

	stale := models.NewMeal(pet.ID, "Old Breakfast", 50, 315, 1)
	if err := db.CreateMeal(stale); err != nil {
		t.Fatal(err)
	}

	_, _, err := server.handlePlanMeals(ctx, &mcp.CallToolRequest{}, planMealsInput{Pet: "Biscuit"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	meals, err := db.ListMeals(pet.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range meals {
		if m.Name == "Old Breakfast" {
			t.Error("Expected stale meal to be replaced")
		}
	}
}

func TestHandleRedistributeMeal(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	food := seedFood(t, db)

	meal := models.NewMeal(pet.ID, "Breakfast", 45, 300, 1)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}

	// Locked item holds 120 kcal; automatic item should absorb the other 180.
	locked := models.NewMealItem(meal.ID, food.ID, 0.32, calc.UnitCup, 120)
	locked.ManuallyAdjusted = true
	if err := db.AddMealItem(locked); err != nil {
		t.Fatal(err)
	}
	auto := models.NewMealItem(meal.ID, food.ID, 1.0, calc.UnitCup, 380)
	if err := db.AddMealItem(auto); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handleRedistributeMeal(ctx, &mcp.CallToolRequest{}, redistributeMealInput{
		MealID: meal.ID.String()[:8],
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(output.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(output.Items))
	}

	total := 0
	for _, item := range output.Items {
		total += item.CalculatedCalories
		if item.ID == locked.ID.String() {
			if item.CalculatedCalories != 120 {
				t.Errorf("Locked item calories = %d, want 120", item.CalculatedCalories)
			}
			if !item.ManuallyAdjusted {
				t.Error("Locked item should stay manually adjusted")
			}
		}
	}
	if total < 295 || total > 305 {
		t.Errorf("Total calories = %d, want ~300", total)
	}

	// The automatic item's new portion must be persisted.
	stored, err := db.GetMealItem(auto.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if stored.PortionQuantity >= 1.0 {
		t.Errorf("Automatic portion = %f, expected shrink below 1.0", stored.PortionQuantity)
	}
}

func TestHandleRedistributeMealEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)

	meal := models.NewMeal(pet.ID, "Dinner", 45, 284, 2)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handleRedistributeMeal(ctx, &mcp.CallToolRequest{}, redistributeMealInput{
		MealID: meal.ID.String(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}
}

func TestHandleRedistributeMealNotFound(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	_, _, err := server.handleRedistributeMeal(ctx, &mcp.CallToolRequest{}, redistributeMealInput{
		MealID: "nonexistent",
	})
	if err == nil {
		t.Error("Expected error for nonexistent meal")
	}
}

func TestHandleEstimateCost(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	food := seedFood(t, db)

	meal := models.NewMeal(pet.ID, "Breakfast", 45, 284, 1)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}
	item := models.NewMealItem(meal.ID, food.ID, 0.75, calc.UnitCup, 285)
	if err := db.AddMealItem(item); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handleEstimateCost(ctx, &mcp.CallToolRequest{}, estimateCostInput{Pet: "Biscuit"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if output.DailyCost <= 0 {
		t.Errorf("DailyCost = %f, want positive", output.DailyCost)
	}
	if output.WeeklyCost <= output.DailyCost {
		t.Error("WeeklyCost should exceed DailyCost")
	}
	if output.MonthlyCost <= output.WeeklyCost {
		t.Error("MonthlyCost should exceed WeeklyCost")
	}
	// Cup portion of a by-weight package uses a category default density.
	if !output.IsEstimate {
		t.Error("Expected IsEstimate for cup portion of by-weight package")
	}
}

func TestHandleEstimateCostNoPricedFoods(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)

	// Food without package data cannot be priced.
	food := models.NewFood("Acme", "Mystery Bites", calc.CategoryDry, 380, calc.UnitCup)
	if err := db.CreateFood(food); err != nil {
		t.Fatal(err)
	}
	meal := models.NewMeal(pet.ID, "Breakfast", 45, 284, 1)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}
	if err := db.AddMealItem(models.NewMealItem(meal.ID, food.ID, 0.75, calc.UnitCup, 285)); err != nil {
		t.Fatal(err)
	}

	_, output, err := server.handleEstimateCost(ctx, &mcp.CallToolRequest{}, estimateCostInput{Pet: "Biscuit"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.DailyCost != 0 {
		t.Errorf("DailyCost = %f, want 0", output.DailyCost)
	}
	if output.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", output.Skipped)
	}
}

func TestHandlePetsResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	seedPet(t, db)

	result, err := server.handlePetsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "petfeed://pets" {
		t.Errorf("URI = %s, want petfeed://pets", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !contains(result.Contents[0].Text, "Biscuit") {
		t.Error("Expected pet name in resource text")
	}
}

func TestHandleFoodsResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	seedFood(t, db)

	result, err := server.handleFoodsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result.Contents[0].URI != "petfeed://foods" {
		t.Errorf("URI = %s, want petfeed://foods", result.Contents[0].URI)
	}
	if !contains(result.Contents[0].Text, "dry") {
		t.Error("Expected category grouping in resource text")
	}
}

func TestHandlePlansResource(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()
	pet := seedPet(t, db)
	food := seedFood(t, db)

	meal := models.NewMeal(pet.ID, "Breakfast", 45, 284, 1)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}
	if err := db.AddMealItem(models.NewMealItem(meal.ID, food.ID, 0.75, calc.UnitCup, 285)); err != nil {
		t.Fatal(err)
	}

	result, err := server.handlePlansResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result.Contents[0].URI != "petfeed://plans" {
		t.Errorf("URI = %s, want petfeed://plans", result.Contents[0].URI)
	}
	text := result.Contents[0].Text
	if !contains(text, "Breakfast") {
		t.Error("Expected meal name in plans resource")
	}
	if !contains(text, "Chicken & Rice") {
		t.Error("Expected food name in plans resource")
	}
}

func TestHandlePlansResourceEmpty(t *testing.T) {
	db := setupTestDB(t)
	server, _ := NewServer(db)
	ctx := context.Background()

	result, err := server.handlePlansResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
}

// Helper function.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsImpl(s, substr))
}

func containsImpl(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
