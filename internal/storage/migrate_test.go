// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-markdown, markdown-to-sqlite, and round-trip migration.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
)

// seedRepo populates a repository with one pet, one food, and a meal
// with a single item. Returns the pet for later comparisons.
func seedRepo(t *testing.T, repo Repository) *models.Pet {
	t.Helper()

	pet := models.NewPet("Biscuit", calc.SpeciesDog).WithWeight(22, calc.Pound)
	pet.DailyCalories = 630
	if err := repo.CreatePet(pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}

	food := models.NewFood("Acme", "Chicken & Rice", calc.CategoryDry, 380, calc.UnitCup)
	if err := repo.CreateFood(food); err != nil {
		t.Fatalf("create food: %v", err)
	}

	meal := models.NewMeal(pet.ID, "Breakfast", 45, 284, 0)
	if err := repo.CreateMeal(meal); err != nil {
		t.Fatalf("create meal: %v", err)
	}
	item := models.NewMealItem(meal.ID, food.ID, 0.75, calc.UnitCup, 285)
	if err := repo.AddMealItem(item); err != nil {
		t.Fatalf("add meal item: %v", err)
	}

	return pet
}

func verifyMigrated(t *testing.T, dst Repository, pet *models.Pet, summary *MigrateSummary) {
	t.Helper()

	if summary.Pets != 1 || summary.Foods != 1 || summary.Meals != 1 || summary.MealItems != 1 {
		t.Errorf("summary = %+v", summary)
	}

	got, err := dst.GetPet(pet.ID.String())
	if err != nil {
		t.Fatalf("get migrated pet: %v", err)
	}
	if got.Name != "Biscuit" || got.DailyCalories != 630 {
		t.Errorf("migrated pet = %+v", got)
	}

	meals, err := dst.ListMeals(pet.ID)
	if err != nil || len(meals) != 1 {
		t.Fatalf("migrated meals = %v, err %v", meals, err)
	}
	items, err := dst.ListMealItems(meals[0].ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("migrated items = %v, err %v", items, err)
	}
	if items[0].PortionQuantity != 0.75 {
		t.Errorf("migrated item = %+v", items[0])
	}
}

func TestMigrateSQLiteToMarkdown(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	md, err := NewMarkdownStore(t.TempDir())
	if err != nil {
		t.Fatalf("open markdown: %v", err)
	}

	pet := seedRepo(t, db)
	summary, err := MigrateData(db, md)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	verifyMigrated(t, md, pet, summary)
}

func TestMigrateMarkdownToSQLite(t *testing.T) {
	md, err := NewMarkdownStore(t.TempDir())
	if err != nil {
		t.Fatalf("open markdown: %v", err)
	}
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	pet := seedRepo(t, md)
	summary, err := MigrateData(md, db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	verifyMigrated(t, db, pet, summary)
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(dir)
	if err != nil {
		t.Fatal(err)
	}
	if nonEmpty {
		t.Error("fresh temp dir should be empty")
	}

	nonEmpty, err = IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if nonEmpty {
		t.Error("missing dir should report empty")
	}

	md, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	seedRepo(t, md)

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !nonEmpty {
		t.Error("seeded dir should be non-empty")
	}
}
