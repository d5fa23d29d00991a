package models

import "time"

// DietaryTag represents a dietary preference tag
type DietaryTag string

const (
	// Dietary preference tags
	TagVegetarian  DietaryTag = "Vegetarian"
	TagVegan       DietaryTag = "Vegan"
	TagGlutenFree  DietaryTag = "Gluten-Free"
	TagDairyFree   DietaryTag = "Dairy-Free"
	TagLowCarb     DietaryTag = "Low-Carb"
	TagKeto        DietaryTag = "Keto"
	TagPaleo       DietaryTag = "Paleo"
	TagPescatarian DietaryTag = "Pescatarian"
	TagNutFree     DietaryTag = "Nut-Free"
)

// RecipeEntry is a liked or disliked recipe as stored in the preference
// document. IDs are assigned per list, starting at 1.
type RecipeEntry struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Ingredients []string  `json:"ingredients"`
	Timestamp   time.Time `json:"timestamp"`
}

// MealEntry is a single meal in the append-only meal history
type MealEntry struct {
	Recipe   string    `json:"recipe"`
	Date     time.Time `json:"date"`
	MealType string    `json:"meal_type"`
}

// IngredientPreferences holds the mutually exclusive favorite and
// disliked ingredient sets. Names are stored lowercased.
type IngredientPreferences struct {
	Favorites []string `json:"favorites"`
	Dislikes  []string `json:"dislikes"`
}

// PreferenceSummary is a read-only snapshot of stored preferences used
// to personalize recipe generation.
type PreferenceSummary struct {
	DietaryPreferences  []string `json:"dietary_preferences"`
	FavoriteIngredients []string `json:"favorite_ingredients"`
	DislikedIngredients []string `json:"disliked_ingredients"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
}
