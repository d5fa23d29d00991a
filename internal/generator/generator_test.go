package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartchef/internal/models"
)

// fakeProvider returns a canned response or error and records the last
// prompt it was given.
type fakeProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	for _, msg := range messages {
		if msg.Role == "user" {
			f.lastPrompt = msg.Content
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) SetTemperature(temp float32) {}
func (f *fakeProvider) SetMaxTokens(tokens int32)   {}

const recipeJSON = `{
  "title": "Leek and Potato Soup",
  "prep_time": 25,
  "servings": 4,
  "ingredients": ["2 leeks, sliced", "3 potatoes, cubed"],
  "instructions": ["Sweat the leeks.", "Add potatoes and stock.", "Simmer and blend."],
  "tips": "Keeps for three days refrigerated.",
  "cuisine": "French"
}`

func TestGenerateRecipeParsesResponse(t *testing.T) {
	provider := &fakeProvider{response: recipeJSON}
	gen := New(provider, 0, zap.NewNop())

	recipe := gen.GenerateRecipe(context.Background(), []string{"leek", "potato"}, []string{"Vegetarian"}, nil)

	assert.False(t, recipe.Failed())
	assert.Equal(t, "Leek and Potato Soup", recipe.Title)
	assert.Equal(t, 25, recipe.PrepTime)
	assert.Equal(t, 4, recipe.Servings)
	assert.Len(t, recipe.Instructions, 3)
	assert.Equal(t, "French", recipe.Cuisine)

	assert.Contains(t, provider.lastPrompt, "leek, potato")
	assert.Contains(t, provider.lastPrompt, "Vegetarian")
}

func TestGenerateRecipeHandlesFencedJSON(t *testing.T) {
	provider := &fakeProvider{response: "Here you go:\n```json\n" + recipeJSON + "\n```"}
	gen := New(provider, 0, zap.NewNop())

	recipe := gen.GenerateRecipe(context.Background(), []string{"leek"}, nil, nil)
	assert.False(t, recipe.Failed())
	assert.Equal(t, "Leek and Potato Soup", recipe.Title)
}

func TestGenerateRecipeDegradesOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	gen := New(provider, 0, zap.NewNop())

	recipe := gen.GenerateRecipe(context.Background(), []string{"leek"}, nil, nil)

	assert.True(t, recipe.Failed())
	assert.Equal(t, 0, recipe.PrepTime)
	assert.Equal(t, 0, recipe.Servings)
	require.NotEmpty(t, recipe.Instructions)
	joined := strings.Join(recipe.Instructions, " ")
	assert.Contains(t, joined, "connection refused")
}

func TestGenerateRecipeDegradesOnBadJSON(t *testing.T) {
	provider := &fakeProvider{response: "I'm sorry, I can't help with that."}
	gen := New(provider, 0, zap.NewNop())

	recipe := gen.GenerateRecipe(context.Background(), []string{"leek"}, nil, nil)
	assert.True(t, recipe.Failed())
}

func TestGenerateRecipeIncludesPersonalization(t *testing.T) {
	provider := &fakeProvider{response: recipeJSON}
	gen := New(provider, 0, zap.NewNop())

	personalization := &Personalization{
		FavoriteIngredients: []string{"garlic"},
		DislikedIngredients: []string{"cilantro"},
		CuisinePreferences:  []string{"Thai", "Italian"},
	}
	gen.GenerateRecipe(context.Background(), []string{"leek"}, nil, personalization)

	assert.Contains(t, provider.lastPrompt, "garlic")
	assert.Contains(t, provider.lastPrompt, "Avoid these ingredients")
	assert.Contains(t, provider.lastPrompt, "cilantro")
	assert.Contains(t, provider.lastPrompt, "Thai")
}

func TestWasteReductionTips(t *testing.T) {
	provider := &fakeProvider{response: `{"tips": ["Freeze leftover herbs in oil.", "Use stems in stock."]}`}
	gen := New(provider, 0, zap.NewNop())

	tips := gen.WasteReductionTips(context.Background(), []string{"parsley"})
	require.Len(t, tips, 2)
	assert.False(t, IsServiceMessage(tips[0]))
}

func TestWasteReductionTipsSentinelOnFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("401 unauthorized")}
	gen := New(provider, 0, zap.NewNop())

	tips := gen.WasteReductionTips(context.Background(), []string{"parsley"})
	require.Len(t, tips, 1)
	assert.True(t, IsServiceMessage(tips[0]))
}

func TestSubstitutions(t *testing.T) {
	provider := &fakeProvider{response: `{"butter": ["olive oil", "coconut oil"]}`}
	gen := New(provider, 0, zap.NewNop())

	subs := gen.Substitutions(context.Background(), []string{"butter"})
	assert.Equal(t, []string{"olive oil", "coconut oil"}, subs["butter"])
}

func TestSubstitutionsSentinelOnFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	gen := New(provider, 0, zap.NewNop())

	subs := gen.Substitutions(context.Background(), []string{"butter", "eggs"})
	require.Len(t, subs, 2)
	assert.True(t, IsServiceMessage(subs["butter"][0]))
	assert.True(t, IsServiceMessage(subs["eggs"][0]))
}

func TestBuildPersonalizationTopThreeCuisines(t *testing.T) {
	summary := models.PreferenceSummary{
		DietaryPreferences:  []string{"Vegan"},
		FavoriteIngredients: []string{"tofu"},
		CuisinePreferences:  []string{"Thai", "Japanese", "Mexican", "French", "Greek"},
	}

	p := BuildPersonalization(summary, []string{"rice"})
	assert.Equal(t, []string{"Thai", "Japanese", "Mexican"}, p.CuisinePreferences)
	assert.Equal(t, []string{"rice"}, p.AvailableIngredients)
	assert.Equal(t, []string{"Vegan"}, p.DietaryRestrictions)
}

func TestIsServiceMessage(t *testing.T) {
	assert.True(t, IsServiceMessage("Recipe service is unavailable"))
	assert.True(t, IsServiceMessage("Please check your API key"))
	assert.True(t, IsServiceMessage("billing issue detected"))
	assert.False(t, IsServiceMessage("Add a pinch of salt"))
}
