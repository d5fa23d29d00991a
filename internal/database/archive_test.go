package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartchef/internal/models"
)

func newTestArchive(t *testing.T) *RecipeArchive {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRecipeArchive(db)
}

func TestArchiveRoundTrip(t *testing.T) {
	archive := newTestArchive(t)

	recipe := models.Recipe{
		Title:        "Mushroom Risotto",
		PrepTime:     35,
		Servings:     2,
		Ingredients:  []string{"200g arborio rice", "300g mushrooms"},
		Instructions: []string{"Toast the rice.", "Add stock a ladle at a time."},
		Tips:         "Use the mushroom soaking liquid as stock.",
		Cuisine:      "Italian",
	}

	saved, err := archive.Save(recipe, []string{"rice", "mushrooms"})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	got, err := archive.Get(saved.ID)
	require.NoError(t, err)

	restored := got.ToRecipe()
	assert.Equal(t, recipe.Title, restored.Title)
	assert.Equal(t, recipe.Ingredients, restored.Ingredients)
	assert.Equal(t, recipe.Instructions, restored.Instructions)
	assert.Equal(t, []string{"rice", "mushrooms"}, []string(got.SourceIngredients))
}

func TestArchiveListLimit(t *testing.T) {
	archive := newTestArchive(t)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := archive.Save(models.Recipe{Title: title, PrepTime: 10, Servings: 1}, nil)
		require.NoError(t, err)
	}

	recipes, err := archive.List(2)
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	all, err := archive.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArchiveDelete(t *testing.T) {
	archive := newTestArchive(t)

	saved, err := archive.Save(models.Recipe{Title: "Gone", PrepTime: 5, Servings: 1}, nil)
	require.NoError(t, err)

	require.NoError(t, archive.Delete(saved.ID))
	_, err = archive.Get(saved.ID)
	assert.Error(t, err)
}
