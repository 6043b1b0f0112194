// ABOUTME: Meal and meal item CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for feeding plans.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/google/uuid"
)

const mealColumns = `id, pet_id, name, target_percent, target_calories, sort_order, created_at`

const mealItemColumns = `id, meal_id, food_id, portion_quantity, portion_unit,
	portion_grams, calculated_calories, manually_adjusted, created_at`

// CreateMeal stores a new meal slot in the database.
func (d *DB) CreateMeal(m *models.Meal) error {
	query := `INSERT INTO meals (` + mealColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		m.ID.String(),
		m.PetID.String(),
		m.Name,
		m.TargetPercent,
		m.TargetCalories,
		m.SortOrder,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

// GetMeal retrieves a meal by ID or ID prefix.
func (d *DB) GetMeal(idOrPrefix string) (*models.Meal, error) {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = ?`
	m, err := scanMeal(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return m, nil
}

// ListMeals retrieves a pet's meal slots in sort order.
func (d *DB) ListMeals(petID uuid.UUID) ([]*models.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE pet_id = ? ORDER BY sort_order`
	rows, err := d.db.Query(query, petID.String())
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// UpdateMeal rewrites a stored meal slot.
func (d *DB) UpdateMeal(m *models.Meal) error {
	query := `
		UPDATE meals SET name = ?, target_percent = ?, target_calories = ?, sort_order = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query, m.Name, m.TargetPercent, m.TargetCalories, m.SortOrder, m.ID.String())
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", m.ID)
	}
	return nil
}

// DeleteMeal removes a meal by ID or prefix. Items cascade.
func (d *DB) DeleteMeal(idOrPrefix string) error {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// DeleteMealsForPet removes all of a pet's meal slots, e.g. before
// regenerating a plan with a different meal count.
func (d *DB) DeleteMealsForPet(petID uuid.UUID) error {
	_, err := d.db.Exec("DELETE FROM meals WHERE pet_id = ?", petID.String())
	if err != nil {
		return fmt.Errorf("delete meals for pet: %w", err)
	}
	return nil
}

// AddMealItem stores a new meal line item.
func (d *DB) AddMealItem(mi *models.MealItem) error {
	query := `INSERT INTO meal_items (` + mealItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		mi.ID.String(),
		mi.MealID.String(),
		mi.FoodID.String(),
		mi.PortionQuantity,
		string(mi.PortionUnit),
		mi.PortionGrams,
		mi.CalculatedCalories,
		mi.ManuallyAdjusted,
		mi.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("add meal item: %w", err)
	}
	return nil
}

// GetMealItem retrieves a meal item by ID or ID prefix.
func (d *DB) GetMealItem(idOrPrefix string) (*models.MealItem, error) {
	id, err := d.resolveID("meal_items", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + mealItemColumns + ` FROM meal_items WHERE id = ?`
	mi, err := scanMealItem(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return mi, nil
}

// ListMealItems retrieves a meal's line items in insertion order.
func (d *DB) ListMealItems(mealID uuid.UUID) ([]*models.MealItem, error) {
	query := `SELECT ` + mealItemColumns + ` FROM meal_items WHERE meal_id = ? ORDER BY created_at`
	rows, err := d.db.Query(query, mealID.String())
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}
	defer rows.Close()

	var items []*models.MealItem
	for rows.Next() {
		mi, err := scanMealItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

// UpdateMealItem rewrites a stored meal item, including the manual lock.
func (d *DB) UpdateMealItem(mi *models.MealItem) error {
	query := `
		UPDATE meal_items SET portion_quantity = ?, portion_unit = ?, portion_grams = ?,
			calculated_calories = ?, manually_adjusted = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		mi.PortionQuantity,
		string(mi.PortionUnit),
		mi.PortionGrams,
		mi.CalculatedCalories,
		mi.ManuallyAdjusted,
		mi.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update meal item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", mi.ID)
	}
	return nil
}

// DeleteMealItem removes a meal item by ID or prefix.
func (d *DB) DeleteMealItem(idOrPrefix string) error {
	id, err := d.resolveID("meal_items", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal item: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM meal_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanMeal(row rowScanner) (*models.Meal, error) {
	var m models.Meal
	var idStr, petIDStr, createdAt string

	err := row.Scan(&idStr, &petIDStr, &m.Name, &m.TargetPercent, &m.TargetCalories,
		&m.SortOrder, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan meal: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.PetID, _ = uuid.Parse(petIDStr)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &m, nil
}

func scanMealItem(row rowScanner) (*models.MealItem, error) {
	var mi models.MealItem
	var idStr, mealIDStr, foodIDStr, portionUnit, createdAt string
	var portionGrams sql.NullFloat64

	err := row.Scan(&idStr, &mealIDStr, &foodIDStr, &mi.PortionQuantity, &portionUnit,
		&portionGrams, &mi.CalculatedCalories, &mi.ManuallyAdjusted, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan meal item: %w", err)
	}

	mi.ID, _ = uuid.Parse(idStr)
	mi.MealID, _ = uuid.Parse(mealIDStr)
	mi.FoodID, _ = uuid.Parse(foodIDStr)
	mi.PortionUnit = calc.ServingUnit(portionUnit)
	mi.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if portionGrams.Valid {
		mi.PortionGrams = &portionGrams.Float64
	}
	return &mi, nil
}
