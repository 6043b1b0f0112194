// ABOUTME: Food CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for the food database.
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

const foodColumns = `id, brand, name, category, calories_per_unit, serving_unit,
	serving_grams, protein_pct, fat_pct, fiber_pct,
	package_price, package_size, package_unit, created_at, updated_at`

// CreateFood stores a new food in the database.
func (d *DB) CreateFood(f *models.Food) error {
	query := `
		INSERT INTO foods (` + foodColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		f.ID.String(),
		f.Brand,
		f.Name,
		string(f.Category),
		f.CaloriesPerUnit,
		string(f.ServingUnit),
		f.ServingGrams,
		f.ProteinPct,
		f.FatPct,
		f.FiberPct,
		f.PackagePrice,
		f.PackageSize,
		f.PackageUnit,
		f.CreatedAt.Format(time.RFC3339),
		f.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	return nil
}

// GetFood retrieves a food by ID or ID prefix.
func (d *DB) GetFood(idOrPrefix string) (*models.Food, error) {
	id, err := d.resolveID("foods", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + foodColumns + ` FROM foods WHERE id = ?`
	f, err := scanFood(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return f, nil
}

// ListFoods retrieves foods with optional filtering by category.
// Results are sorted by brand then name.
func (d *DB) ListFoods(category *calc.FoodCategory) ([]*models.Food, error) {
	var query string
	var args []interface{}

	if category != nil {
		query = `SELECT ` + foodColumns + ` FROM foods WHERE category = ? ORDER BY brand, name`
		args = append(args, string(*category))
	} else {
		query = `SELECT ` + foodColumns + ` FROM foods ORDER BY brand, name`
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// UpdateFood rewrites a stored food. UpdatedAt is refreshed.
func (d *DB) UpdateFood(f *models.Food) error {
	f.UpdatedAt = time.Now()
	query := `
		UPDATE foods SET brand = ?, name = ?, category = ?, calories_per_unit = ?,
			serving_unit = ?, serving_grams = ?, protein_pct = ?, fat_pct = ?,
			fiber_pct = ?, package_price = ?, package_size = ?, package_unit = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		f.Brand,
		f.Name,
		string(f.Category),
		f.CaloriesPerUnit,
		string(f.ServingUnit),
		f.ServingGrams,
		f.ProteinPct,
		f.FatPct,
		f.FiberPct,
		f.PackagePrice,
		f.PackageSize,
		f.PackageUnit,
		f.UpdatedAt.Format(time.RFC3339),
		f.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", f.ID)
	}
	return nil
}

// DeleteFood removes a food by ID or prefix. Meal items referencing it
// cascade.
func (d *DB) DeleteFood(idOrPrefix string) error {
	id, err := d.resolveID("foods", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM foods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

func scanFood(row rowScanner) (*models.Food, error) {
	var f models.Food
	var idStr, category, servingUnit, createdAt, updatedAt string
	var servingGrams, proteinPct, fatPct, fiberPct, packagePrice, packageSize sql.NullFloat64
	var packageUnit sql.NullString

	err := row.Scan(&idStr, &f.Brand, &f.Name, &category, &f.CaloriesPerUnit, &servingUnit,
		&servingGrams, &proteinPct, &fatPct, &fiberPct,
		&packagePrice, &packageSize, &packageUnit, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan food: %w", err)
	}

	f.ID, _ = uuid.Parse(idStr)
	f.Category = calc.FoodCategory(category)
	f.ServingUnit = calc.ServingUnit(servingUnit)
	f.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	f.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if servingGrams.Valid {
		f.ServingGrams = &servingGrams.Float64
	}
	if proteinPct.Valid {
		f.ProteinPct = &proteinPct.Float64
	}
	if fatPct.Valid {
		f.FatPct = &fatPct.Float64
	}
	if fiberPct.Valid {
		f.FiberPct = &fiberPct.Float64
	}
	if packagePrice.Valid {
		f.PackagePrice = &packagePrice.Float64
	}
	if packageSize.Valid {
		f.PackageSize = &packageSize.Float64
	}
	if packageUnit.Valid {
		f.PackageUnit = &packageUnit.String
	}

	return &f, nil
}
