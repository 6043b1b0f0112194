// ABOUTME: Repository interface for pet nutrition data storage.
// ABOUTME: Defines contract for pets, foods, meals, and meal item CRUD.
package storage

import (
	"github.com/feedingfriend/petfeed/internal/calc"
	"github.com/feedingfriend/petfeed/internal/models"
	"github.com/google/uuid"
)

// Repository defines the storage interface for pet nutrition data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Pet operations
	CreatePet(p *models.Pet) error
	GetPet(idOrPrefix string) (*models.Pet, error)
	GetPetByName(name string) (*models.Pet, error)
	ListPets() ([]*models.Pet, error)
	UpdatePet(p *models.Pet) error
	DeletePet(idOrPrefix string) error

	// Food operations
	CreateFood(f *models.Food) error
	GetFood(idOrPrefix string) (*models.Food, error)
	ListFoods(category *calc.FoodCategory) ([]*models.Food, error)
	UpdateFood(f *models.Food) error
	DeleteFood(idOrPrefix string) error

	// Meal operations
	CreateMeal(m *models.Meal) error
	GetMeal(idOrPrefix string) (*models.Meal, error)
	ListMeals(petID uuid.UUID) ([]*models.Meal, error)
	UpdateMeal(m *models.Meal) error
	DeleteMeal(idOrPrefix string) error
	DeleteMealsForPet(petID uuid.UUID) error

	// Meal item operations
	AddMealItem(mi *models.MealItem) error
	GetMealItem(idOrPrefix string) (*models.MealItem, error)
	ListMealItems(mealID uuid.UUID) ([]*models.MealItem, error)
	UpdateMealItem(mi *models.MealItem) error
	DeleteMealItem(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
