// ABOUTME: Pet CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for pet profiles.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/google/uuid"
)

const petColumns = `id, name, species, breed, weight, weight_unit, neutered,
	activity_method, activity_category, daily_steps, activity_minutes, activity_pace,
	life_stage, outdoor_exposure, climate, bcs, weight_goal, health_conditions,
	daily_calories, notes, created_at, updated_at`

// CreatePet stores a new pet in the database.
func (d *DB) CreatePet(p *models.Pet) error {
	conditions, err := encodeConditions(p.HealthConditions)
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}

	query := `
		INSERT INTO pets (` + petColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		p.ID.String(),
		p.Name,
		string(p.Species),
		p.Breed,
		p.Weight,
		string(p.WeightUnit),
		p.Neutered,
		string(p.ActivityMethod),
		string(p.ActivityCategory),
		p.DailySteps,
		p.ActivityMinutes,
		string(p.ActivityPace),
		string(p.LifeStage),
		string(p.OutdoorExposure),
		string(p.Climate),
		string(p.BCS),
		string(p.WeightGoal),
		conditions,
		p.DailyCalories,
		p.Notes,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

// GetPet retrieves a pet by ID or ID prefix.
func (d *DB) GetPet(idOrPrefix string) (*models.Pet, error) {
	id, err := d.resolveID("pets", idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + petColumns + ` FROM pets WHERE id = ?`
	p, err := scanPet(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil, err
	}
	return p, nil
}

// GetPetByName retrieves a pet by exact name (case-insensitive).
func (d *DB) GetPetByName(name string) (*models.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE name = ? COLLATE NOCASE`
	p, err := scanPet(d.db.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no pet named %q", name)
		}
		return nil, err
	}
	return p, nil
}

// ListPets retrieves all pets sorted by name.
func (d *DB) ListPets() ([]*models.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets ORDER BY name COLLATE NOCASE`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// UpdatePet rewrites a stored pet profile. UpdatedAt is refreshed.
func (d *DB) UpdatePet(p *models.Pet) error {
	conditions, err := encodeConditions(p.HealthConditions)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	p.UpdatedAt = time.Now()

	query := `
		UPDATE pets SET name = ?, species = ?, breed = ?, weight = ?, weight_unit = ?,
			neutered = ?, activity_method = ?, activity_category = ?, daily_steps = ?,
			activity_minutes = ?, activity_pace = ?, life_stage = ?, outdoor_exposure = ?,
			climate = ?, bcs = ?, weight_goal = ?, health_conditions = ?,
			daily_calories = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		p.Name,
		string(p.Species),
		p.Breed,
		p.Weight,
		string(p.WeightUnit),
		p.Neutered,
		string(p.ActivityMethod),
		string(p.ActivityCategory),
		p.DailySteps,
		p.ActivityMinutes,
		string(p.ActivityPace),
		string(p.LifeStage),
		string(p.OutdoorExposure),
		string(p.Climate),
		string(p.BCS),
		string(p.WeightGoal),
		conditions,
		p.DailyCalories,
		p.Notes,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", p.ID)
	}
	return nil
}

// DeletePet removes a pet by ID or prefix. Meals cascade.
func (d *DB) DeletePet(idOrPrefix string) error {
	id, err := d.resolveID("pets", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM pets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(row rowScanner) (*models.Pet, error) {
	var p models.Pet
	var idStr, species, weightUnit, method, lifeStage, exposure, climate, bcs, goal string
	var breed, category, pace, conditions, notes sql.NullString
	var steps sql.NullInt64
	var minutes sql.NullFloat64
	var createdAt, updatedAt string

	err := row.Scan(&idStr, &p.Name, &species, &breed, &p.Weight, &weightUnit, &p.Neutered,
		&method, &category, &steps, &minutes, &pace,
		&lifeStage, &exposure, &climate, &bcs, &goal, &conditions,
		&p.DailyCalories, &notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan pet: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.Species = calc.Species(species)
	p.WeightUnit = calc.WeightUnit(weightUnit)
	p.ActivityMethod = calc.ActivityMethod(method)
	p.LifeStage = calc.LifeStage(lifeStage)
	p.OutdoorExposure = calc.OutdoorExposure(exposure)
	p.Climate = calc.Climate(climate)
	p.BCS = calc.BCSBand(bcs)
	p.WeightGoal = calc.WeightGoal(goal)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if breed.Valid {
		p.Breed = breed.String
	}
	if category.Valid {
		p.ActivityCategory = calc.ActivityCategory(category.String)
	}
	if steps.Valid {
		p.DailySteps = int(steps.Int64)
	}
	if minutes.Valid {
		p.ActivityMinutes = minutes.Float64
	}
	if pace.Valid {
		p.ActivityPace = calc.ActivityPace(pace.String)
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	if conditions.Valid && conditions.String != "" {
		if err := json.Unmarshal([]byte(conditions.String), &p.HealthConditions); err != nil {
			return nil, fmt.Errorf("decode health conditions: %w", err)
		}
	}

	return &p, nil
}

// encodeConditions stores the condition id list as a JSON array, empty
// string for none.
func encodeConditions(conditions []string) (string, error) {
	if len(conditions) == 0 {
		return "", nil
	}
	b, err := json.Marshal(conditions)
	if err != nil {
		return "", fmt.Errorf("encode health conditions: %w", err)
	}
	return string(b), nil
}
