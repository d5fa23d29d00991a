package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/jinzhu/gorm"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Recipe is a generated recipe as returned by the recipe generator.
// A failed generation is reported as a degenerate recipe: PrepTime and
// Servings are both zero and Instructions carry human-readable error lines.
type Recipe struct {
	Title        string   `json:"title"`
	PrepTime     int      `json:"prep_time"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Tips         string   `json:"tips"`
	Cuisine      string   `json:"cuisine,omitempty"`
}

// Failed reports whether the recipe is the degenerate error form.
func (r Recipe) Failed() bool {
	return r.PrepTime == 0 && r.Servings == 0
}

// ArchivedRecipe is a generated recipe persisted to the recipe archive
type ArchivedRecipe struct {
	gorm.Model
	Title             string
	Cuisine           string
	PrepTime          int
	Servings          int
	Ingredients       StringSlice `gorm:"type:text"`
	Instructions      StringSlice `gorm:"type:text"`
	Tips              string
	SourceIngredients StringSlice `gorm:"type:text"`
	GeneratedAt       time.Time
}

// TableName sets the table name for ArchivedRecipe
func (ArchivedRecipe) TableName() string {
	return "recipes"
}

// ToRecipe converts an archived row back to the generated recipe shape
func (a ArchivedRecipe) ToRecipe() Recipe {
	return Recipe{
		Title:        a.Title,
		PrepTime:     a.PrepTime,
		Servings:     a.Servings,
		Ingredients:  a.Ingredients,
		Instructions: a.Instructions,
		Tips:         a.Tips,
		Cuisine:      a.Cuisine,
	}
}
