// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for pets, foods, meals, and meal_items.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		species TEXT NOT NULL,
		breed TEXT,
		weight REAL NOT NULL,
		weight_unit TEXT NOT NULL,
		neutered INTEGER NOT NULL DEFAULT 1,
		activity_method TEXT NOT NULL,
		activity_category TEXT,
		daily_steps INTEGER,
		activity_minutes REAL,
		activity_pace TEXT,
		life_stage TEXT NOT NULL,
		outdoor_exposure TEXT NOT NULL,
		climate TEXT NOT NULL,
		bcs TEXT NOT NULL,
		weight_goal TEXT NOT NULL,
		health_conditions TEXT,
		daily_calories INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS foods (
		id TEXT PRIMARY KEY,
		brand TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		calories_per_unit REAL NOT NULL,
		serving_unit TEXT NOT NULL,
		serving_grams REAL,
		protein_pct REAL,
		fat_pct REAL,
		fiber_pct REAL,
		package_price REAL,
		package_size REAL,
		package_unit TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meals (
		id TEXT PRIMARY KEY,
		pet_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_percent REAL NOT NULL,
		target_calories INTEGER NOT NULL,
		sort_order INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (pet_id) REFERENCES pets(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS meal_items (
		id TEXT PRIMARY KEY,
		meal_id TEXT NOT NULL,
		food_id TEXT NOT NULL,
		portion_quantity REAL NOT NULL,
		portion_unit TEXT NOT NULL,
		portion_grams REAL,
		calculated_calories INTEGER NOT NULL,
		manually_adjusted INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (meal_id) REFERENCES meals(id) ON DELETE CASCADE,
		FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_pets_name ON pets(name);
	CREATE INDEX IF NOT EXISTS idx_foods_category ON foods(category);
	CREATE INDEX IF NOT EXISTS idx_foods_brand_name ON foods(brand, name);
	CREATE INDEX IF NOT EXISTS idx_meals_pet ON meals(pet_id, sort_order);
	CREATE INDEX IF NOT EXISTS idx_meal_items_meal ON meal_items(meal_id);
	CREATE INDEX IF NOT EXISTS idx_meal_items_food ON meal_items(food_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
