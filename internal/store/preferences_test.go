package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartchef/internal/models"
)

func newTestPreferenceStore(t *testing.T) *PreferenceStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	return NewPreferenceStore(path, zap.NewNop())
}

func TestNewPreferenceStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "user_preferences.json")
	store := NewPreferenceStore(path, zap.NewNop())

	require.NotNil(t, store)
	_, err := os.Stat(path)
	assert.NoError(t, err, "backing file should be created on first access")
	assert.Empty(t, store.DietaryPreferences())
	assert.Empty(t, store.LikedRecipes())
}

func TestCorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewPreferenceStore(path, zap.NewNop())
	assert.Empty(t, store.DietaryPreferences())

	// The corrupt file is discarded on the next save.
	require.NoError(t, store.SetDietaryPreferences([]string{"Vegan"}))
	reopened := NewPreferenceStore(path, zap.NewNop())
	assert.Equal(t, []string{"Vegan"}, reopened.DietaryPreferences())
}

func TestSetDietaryPreferencesReplacesWholesale(t *testing.T) {
	store := newTestPreferenceStore(t)

	require.NoError(t, store.SetDietaryPreferences([]string{"Vegetarian", "Keto", "Vegetarian"}))
	assert.Equal(t, []string{"Vegetarian", "Keto"}, store.DietaryPreferences())

	require.NoError(t, store.SetDietaryPreferences([]string{"Vegan"}))
	assert.Equal(t, []string{"Vegan"}, store.DietaryPreferences())
}

func TestIngredientSetsStayDisjoint(t *testing.T) {
	store := newTestPreferenceStore(t)

	require.NoError(t, store.AddDislikedIngredient("Basil"))
	assert.Equal(t, []string{"basil"}, store.DislikedIngredients())

	require.NoError(t, store.AddFavoriteIngredient("basil"))
	assert.Equal(t, []string{"basil"}, store.FavoriteIngredients())
	assert.Empty(t, store.DislikedIngredients())

	require.NoError(t, store.AddDislikedIngredient("basil"))
	assert.Empty(t, store.FavoriteIngredients())
	assert.Equal(t, []string{"basil"}, store.DislikedIngredients())
}

func TestAddFavoriteIngredientIdempotent(t *testing.T) {
	store := newTestPreferenceStore(t)

	require.NoError(t, store.AddFavoriteIngredient("garlic"))
	require.NoError(t, store.AddFavoriteIngredient("garlic"))
	assert.Equal(t, []string{"garlic"}, store.FavoriteIngredients())
}

func TestRecipeTitleExclusiveBetweenLists(t *testing.T) {
	store := newTestPreferenceStore(t)
	soup := models.Recipe{Title: "Soup", PrepTime: 20, Servings: 4, Ingredients: []string{"leek", "potato"}}

	require.NoError(t, store.RecordLikedRecipe(soup))
	require.NoError(t, store.RecordDislikedRecipe(soup))

	assert.Empty(t, store.LikedRecipes())
	disliked := store.DislikedRecipes()
	require.Len(t, disliked, 1)
	assert.Equal(t, "Soup", disliked[0].Title)
	assert.Equal(t, 1, disliked[0].ID)

	// Id sequences continue independently per list.
	require.NoError(t, store.RecordLikedRecipe(models.Recipe{Title: "Stew", PrepTime: 40, Servings: 2}))
	require.NoError(t, store.RecordDislikedRecipe(models.Recipe{Title: "Salad", PrepTime: 5, Servings: 1}))
	liked := store.LikedRecipes()
	require.Len(t, liked, 1)
	assert.Equal(t, 1, liked[0].ID)
	disliked = store.DislikedRecipes()
	require.Len(t, disliked, 2)
	assert.Equal(t, 2, disliked[1].ID)
}

func TestRecentMealsNewestFirst(t *testing.T) {
	store := newTestPreferenceStore(t)

	base := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tick := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return tick }
		require.NoError(t, store.RecordMeal("Meal "+string(rune('A'+i)), "dinner"))
	}

	recent := store.RecentMeals(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "Meal E", recent[0].Recipe)
	assert.Equal(t, "Meal D", recent[1].Recipe)
}

func TestRecordMealDefaultsToDinner(t *testing.T) {
	store := newTestPreferenceStore(t)

	require.NoError(t, store.RecordMeal("Pancakes", ""))
	meals := store.RecentMeals(10)
	require.Len(t, meals, 1)
	assert.Equal(t, "dinner", meals[0].MealType)
}

func TestCuisinePreferencesKeepOrder(t *testing.T) {
	store := newTestPreferenceStore(t)

	ranked := []string{"Thai", "Italian", "Mexican"}
	require.NoError(t, store.SetCuisinePreferences(ranked))
	assert.Equal(t, ranked, store.CuisinePreferences())
}

func TestSummarySnapshot(t *testing.T) {
	store := newTestPreferenceStore(t)

	require.NoError(t, store.SetDietaryPreferences([]string{"Vegan"}))
	require.NoError(t, store.AddFavoriteIngredient("tofu"))
	require.NoError(t, store.AddDislikedIngredient("cilantro"))
	require.NoError(t, store.SetCuisinePreferences([]string{"Japanese", "Thai"}))

	summary := store.Summary()
	assert.Equal(t, []string{"Vegan"}, summary.DietaryPreferences)
	assert.Equal(t, []string{"tofu"}, summary.FavoriteIngredients)
	assert.Equal(t, []string{"cilantro"}, summary.DislikedIngredients)
	assert.Equal(t, []string{"Japanese", "Thai"}, summary.CuisinePreferences)
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_preferences.json")
	store := NewPreferenceStore(path, zap.NewNop())

	require.NoError(t, store.AddFavoriteIngredient("thyme"))
	require.NoError(t, store.RecordLikedRecipe(models.Recipe{Title: "Roast", PrepTime: 90, Servings: 6}))

	reopened := NewPreferenceStore(path, zap.NewNop())
	assert.Equal(t, []string{"thyme"}, reopened.FavoriteIngredients())
	liked := reopened.LikedRecipes()
	require.Len(t, liked, 1)
	assert.Equal(t, "Roast", liked[0].Title)
}
