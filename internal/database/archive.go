package database

import (
	"time"

	"github.com/jinzhu/gorm"

	"smartchef/internal/models"
)

// RecipeArchive records every successfully generated recipe.
type RecipeArchive struct {
	db *gorm.DB
}

// NewRecipeArchive creates an archive over the given database.
func NewRecipeArchive(db *gorm.DB) *RecipeArchive {
	return &RecipeArchive{db: db}
}

// Save stores a generated recipe along with the ingredients the user
// had available when it was generated.
func (a *RecipeArchive) Save(recipe models.Recipe, sourceIngredients []string) (*models.ArchivedRecipe, error) {
	entry := models.ArchivedRecipe{
		Title:             recipe.Title,
		Cuisine:           recipe.Cuisine,
		PrepTime:          recipe.PrepTime,
		Servings:          recipe.Servings,
		Ingredients:       models.StringSlice(recipe.Ingredients),
		Instructions:      models.StringSlice(recipe.Instructions),
		Tips:              recipe.Tips,
		SourceIngredients: models.StringSlice(sourceIngredients),
		GeneratedAt:       time.Now(),
	}
	if err := a.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns archived recipes, newest first, up to limit. A
// non-positive limit returns everything.
func (a *RecipeArchive) List(limit int) ([]models.ArchivedRecipe, error) {
	var recipes []models.ArchivedRecipe
	query := a.db.Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get returns a single archived recipe by id.
func (a *RecipeArchive) Get(id uint) (*models.ArchivedRecipe, error) {
	var recipe models.ArchivedRecipe
	if err := a.db.First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes an archived recipe by id.
func (a *RecipeArchive) Delete(id uint) error {
	return a.db.Delete(&models.ArchivedRecipe{}, "id = ?", id).Error
}
