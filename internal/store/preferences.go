package store

import (
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"smartchef/internal/models"
)

// preferenceDocument is the on-disk shape of the preferences file.
type preferenceDocument struct {
	Version               int                          `json:"version"`
	DietaryPreferences    []string                     `json:"dietary_preferences"`
	LikedRecipes          []models.RecipeEntry         `json:"liked_recipes"`
	DislikedRecipes       []models.RecipeEntry         `json:"disliked_recipes"`
	IngredientPreferences models.IngredientPreferences `json:"ingredient_preferences"`
	MealHistory           []models.MealEntry           `json:"meal_history"`
	CuisinePreferences    []string                     `json:"cuisine_preferences"`
}

func newPreferenceDocument() *preferenceDocument {
	return &preferenceDocument{
		Version:            schemaVersion,
		DietaryPreferences: []string{},
		LikedRecipes:       []models.RecipeEntry{},
		DislikedRecipes:    []models.RecipeEntry{},
		IngredientPreferences: models.IngredientPreferences{
			Favorites: []string{},
			Dislikes:  []string{},
		},
		MealHistory:        []models.MealEntry{},
		CuisinePreferences: []string{},
	}
}

// PreferenceStore persists dietary preferences, ingredient likes and
// dislikes, recipe feedback, cuisine rankings, and meal history.
//
// The document is loaded once at construction and owned in memory for
// the lifetime of the store; every mutation rewrites the whole file
// before returning. Two stores pointed at the same file do not see each
// other's writes. The backing file is assumed single-writer.
type PreferenceStore struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	doc *preferenceDocument

	now func() time.Time
}

// NewPreferenceStore opens the preference document at path, creating it
// with the default empty shape if absent. A corrupt or unreadable file
// is logged and replaced with an empty document on the next save; it
// never fails construction.
func NewPreferenceStore(path string, logger *zap.Logger) *PreferenceStore {
	s := &PreferenceStore{
		path:   path,
		logger: logger,
		now:    time.Now,
	}

	doc := newPreferenceDocument()
	err := loadDocument(path, doc)
	switch {
	case err == nil:
		s.doc = doc
	case os.IsNotExist(err):
		s.doc = newPreferenceDocument()
		if saveErr := saveDocument(path, s.doc); saveErr != nil {
			logger.Warn("failed to create preferences file", zap.Error(saveErr))
		}
	default:
		logger.Warn("failed to load preferences, starting empty", zap.Error(err))
		s.doc = newPreferenceDocument()
	}

	return s
}

// SetDietaryPreferences replaces the dietary preference set wholesale.
// Duplicates are dropped, first occurrence wins.
func (s *PreferenceStore) SetDietaryPreferences(tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !containsString(deduped, tag) {
			deduped = append(deduped, tag)
		}
	}
	s.doc.DietaryPreferences = deduped
	return s.save()
}

// RecordLikedRecipe appends the recipe to the liked list and removes
// any entry with the same title from the disliked list.
func (s *PreferenceStore) RecordLikedRecipe(recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.LikedRecipes = append(s.doc.LikedRecipes, models.RecipeEntry{
		ID:          len(s.doc.LikedRecipes) + 1,
		Title:       recipe.Title,
		Ingredients: recipe.Ingredients,
		Timestamp:   s.now(),
	})
	s.doc.DislikedRecipes = dropTitle(s.doc.DislikedRecipes, recipe.Title)
	return s.save()
}

// RecordDislikedRecipe appends the recipe to the disliked list and
// removes any entry with the same title from the liked list.
func (s *PreferenceStore) RecordDislikedRecipe(recipe models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.DislikedRecipes = append(s.doc.DislikedRecipes, models.RecipeEntry{
		ID:          len(s.doc.DislikedRecipes) + 1,
		Title:       recipe.Title,
		Ingredients: recipe.Ingredients,
		Timestamp:   s.now(),
	})
	s.doc.LikedRecipes = dropTitle(s.doc.LikedRecipes, recipe.Title)
	return s.save()
}

// AddFavoriteIngredient adds the ingredient to the favorites set,
// removing it from dislikes if present. Names are lowercased. Adding an
// ingredient already in favorites is a no-op.
func (s *PreferenceStore) AddFavoriteIngredient(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalizeIngredient(name)
	prefs := &s.doc.IngredientPreferences
	if containsString(prefs.Favorites, name) {
		return nil
	}
	prefs.Favorites = append(prefs.Favorites, name)
	prefs.Dislikes = removeString(prefs.Dislikes, name)
	return s.save()
}

// AddDislikedIngredient adds the ingredient to the dislikes set,
// removing it from favorites if present.
func (s *PreferenceStore) AddDislikedIngredient(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalizeIngredient(name)
	prefs := &s.doc.IngredientPreferences
	if containsString(prefs.Dislikes, name) {
		return nil
	}
	prefs.Dislikes = append(prefs.Dislikes, name)
	prefs.Favorites = removeString(prefs.Favorites, name)
	return s.save()
}

// RecordMeal appends a timestamped entry to the meal history.
func (s *PreferenceStore) RecordMeal(recipeTitle, mealType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mealType == "" {
		mealType = "dinner"
	}
	s.doc.MealHistory = append(s.doc.MealHistory, models.MealEntry{
		Recipe:   recipeTitle,
		Date:     s.now(),
		MealType: mealType,
	})
	return s.save()
}

// SetCuisinePreferences replaces the cuisine list wholesale. Order is
// descending preference rank as supplied by the caller.
func (s *PreferenceStore) SetCuisinePreferences(cuisines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.CuisinePreferences = append([]string{}, cuisines...)
	return s.save()
}

// DietaryPreferences returns the current dietary preference tags.
func (s *PreferenceStore) DietaryPreferences() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.doc.DietaryPreferences...)
}

// FavoriteIngredients returns the favorite ingredient set.
func (s *PreferenceStore) FavoriteIngredients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.doc.IngredientPreferences.Favorites...)
}

// DislikedIngredients returns the disliked ingredient set.
func (s *PreferenceStore) DislikedIngredients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.doc.IngredientPreferences.Dislikes...)
}

// LikedRecipes returns the liked recipe list in insertion order.
func (s *PreferenceStore) LikedRecipes() []models.RecipeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RecipeEntry{}, s.doc.LikedRecipes...)
}

// DislikedRecipes returns the disliked recipe list in insertion order.
func (s *PreferenceStore) DislikedRecipes() []models.RecipeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RecipeEntry{}, s.doc.DislikedRecipes...)
}

// CuisinePreferences returns the cuisine list in descending rank order.
func (s *PreferenceStore) CuisinePreferences() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.doc.CuisinePreferences...)
}

// RecentMeals returns the limit most recent meal history entries,
// newest first. Entries with equal timestamps keep their insertion
// order.
func (s *PreferenceStore) RecentMeals(limit int) []models.MealEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	meals := append([]models.MealEntry{}, s.doc.MealHistory...)
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].Date.After(meals[j].Date)
	})
	if limit >= 0 && limit < len(meals) {
		meals = meals[:limit]
	}
	return meals
}

// Summary returns the personalization snapshot consumed by recipe
// generation.
func (s *PreferenceStore) Summary() models.PreferenceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.PreferenceSummary{
		DietaryPreferences:  append([]string{}, s.doc.DietaryPreferences...),
		FavoriteIngredients: append([]string{}, s.doc.IngredientPreferences.Favorites...),
		DislikedIngredients: append([]string{}, s.doc.IngredientPreferences.Dislikes...),
		CuisinePreferences:  append([]string{}, s.doc.CuisinePreferences...),
	}
}

// save persists the full document. The in-memory mutation is kept even
// when the write fails; the error is returned so callers can report it.
func (s *PreferenceStore) save() error {
	if err := saveDocument(s.path, s.doc); err != nil {
		s.logger.Error("failed to save preferences", zap.Error(err))
		return err
	}
	return nil
}

func normalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dropTitle filters out every entry with the given title.
func dropTitle(entries []models.RecipeEntry, title string) []models.RecipeEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.Title != title {
			kept = append(kept, e)
		}
	}
	return kept
}
