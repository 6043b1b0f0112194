// ABOUTME: Tests for feeding plan report rendering.
// ABOUTME: Verifies breakdown tables, meal schedule, and cost summary.
package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/feedingfriend/petfeed/internal/storage"
)

func seedPlan(t *testing.T) (storage.Repository, *models.Pet) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	pet := models.NewPet("Biscuit", calc.SpeciesDog).WithWeight(22, calc.Pound)
	pet.DailyCalories = 630
	if err := db.CreatePet(pet); err != nil {
		t.Fatal(err)
	}

	food := models.NewFood("Acme", "Chicken & Rice", calc.CategoryDry, 380, calc.UnitCup).
		WithPackage(20.00, 10, "lb")
	if err := db.CreateFood(food); err != nil {
		t.Fatal(err)
	}

	meal := models.NewMeal(pet.ID, "Breakfast", 45, 284, 0)
	if err := db.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}
	item := models.NewMealItem(meal.ID, food.ID, 0.75, calc.UnitCup, 285)
	if err := db.AddMealItem(item); err != nil {
		t.Fatal(err)
	}

	return db, pet
}

func TestBuildAndRenderFeedingPlan(t *testing.T) {
	repo, pet := seedPlan(t)

	data, err := Build(repo, pet, "$")
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	if data.Result.MER != 630 {
		t.Errorf("MER = %d, want 630", data.Result.MER)
	}
	if len(data.Meals) != 1 || len(data.Meals[0].Items) != 1 {
		t.Fatalf("plan shape: %+v", data.Meals)
	}

	out := FeedingPlan(data)
	for _, want := range []string{
		"# Feeding Plan: Biscuit",
		"22.0 lb neutered dog, adult",
		"## Energy Requirements",
		"| Neutered Dog | 1.60 |",
		"- RER: 394 kcal/day",
		"- **Daily target: 630 kcal**",
		"### Breakfast (45%, 284 kcal)",
		"3/4 cup",
		"285 kcal",
		"## Cost Summary",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan missing %q\n%s", want, out)
		}
	}

	// cup portion from a by-weight package is an estimate
	if !strings.Contains(out, "*") || !strings.Contains(out, "estimated due to unit conversions") {
		t.Error("estimate warning missing")
	}
}

func TestFeedingPlanNoMeals(t *testing.T) {
	repo, pet := seedPlan(t)
	if err := repo.DeleteMealsForPet(pet.ID); err != nil {
		t.Fatal(err)
	}

	data, err := Build(repo, pet, "$")
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	out := FeedingPlan(data)

	if strings.Contains(out, "## Meal Schedule") {
		t.Error("no meal schedule expected without meals")
	}
	if strings.Contains(out, "## Cost Summary") {
		t.Error("no cost summary expected without items")
	}
	if !strings.Contains(out, "## Energy Requirements") {
		t.Error("energy section should always render")
	}
}

func TestFeedingPlanEmptyMeal(t *testing.T) {
	repo, pet := seedPlan(t)
	meal := models.NewMeal(pet.ID, "Dinner", 45, 284, 1)
	if err := repo.CreateMeal(meal); err != nil {
		t.Fatal(err)
	}

	data, err := Build(repo, pet, "$")
	if err != nil {
		t.Fatal(err)
	}
	out := FeedingPlan(data)
	if !strings.Contains(out, "_No foods assigned._") {
		t.Error("empty meal placeholder missing")
	}
}
