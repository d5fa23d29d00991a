package generator

import "smartchef/internal/models"

// Personalization is the snapshot of stored preferences handed to
// recipe generation to bias its output.
type Personalization struct {
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	FavoriteIngredients  []string `json:"favorite_ingredients"`
	DislikedIngredients  []string `json:"disliked_ingredients"`
	CuisinePreferences   []string `json:"cuisine_preferences"`
	AvailableIngredients []string `json:"available_ingredients,omitempty"`
}

// BuildPersonalization assembles the personalization snapshot from a
// preference summary and the caller's available ingredients. Only the
// top three cuisines are carried over.
func BuildPersonalization(summary models.PreferenceSummary, available []string) *Personalization {
	cuisines := summary.CuisinePreferences
	if len(cuisines) > 3 {
		cuisines = cuisines[:3]
	}

	return &Personalization{
		DietaryRestrictions:  summary.DietaryPreferences,
		FavoriteIngredients:  summary.FavoriteIngredients,
		DislikedIngredients:  summary.DislikedIngredients,
		CuisinePreferences:   cuisines,
		AvailableIngredients: available,
	}
}
