package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartchef/internal/models"
)

type tagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

type cuisinesRequest struct {
	Cuisines []string `json:"cuisines" binding:"required"`
}

type ingredientRequest struct {
	Name string `json:"name" binding:"required"`
}

type mealRequest struct {
	Recipe   string `json:"recipe" binding:"required"`
	MealType string `json:"meal_type"`
}

// GetDietaryPreferences returns the stored dietary tags.
func (s *Server) GetDietaryPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": s.prefs.DietaryPreferences()})
}

// SetDietaryPreferences replaces the dietary tags wholesale.
func (s *Server) SetDietaryPreferences(c *gin.Context) {
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.prefs.SetDietaryPreferences(req.Tags); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": s.prefs.DietaryPreferences()})
}

// GetCuisinePreferences returns the stored cuisine list in order.
func (s *Server) GetCuisinePreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cuisines": s.prefs.CuisinePreferences()})
}

// SetCuisinePreferences replaces the cuisine list wholesale.
func (s *Server) SetCuisinePreferences(c *gin.Context) {
	var req cuisinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.prefs.SetCuisinePreferences(req.Cuisines); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cuisines": s.prefs.CuisinePreferences()})
}

// GetIngredientPreferences returns the favorite and disliked
// ingredient lists together.
func (s *Server) GetIngredientPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, models.IngredientPreferences{
		Favorites: s.prefs.FavoriteIngredients(),
		Dislikes:  s.prefs.DislikedIngredients(),
	})
}

// AddFavoriteIngredient marks one ingredient as a favorite.
func (s *Server) AddFavoriteIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.prefs.AddFavoriteIngredient(req.Name); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.prefs.FavoriteIngredients()})
}

// AddDislikedIngredient marks one ingredient as disliked.
func (s *Server) AddDislikedIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.prefs.AddDislikedIngredient(req.Name); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dislikes": s.prefs.DislikedIngredients()})
}

// GetLikedRecipes returns the liked recipe entries.
func (s *Server) GetLikedRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": s.prefs.LikedRecipes()})
}

// GetDislikedRecipes returns the disliked recipe entries.
func (s *Server) GetDislikedRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": s.prefs.DislikedRecipes()})
}

// RecordLikedRecipe stores a thumbs-up for a recipe.
func (s *Server) RecordLikedRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe title is required"})
		return
	}
	if err := s.prefs.RecordLikedRecipe(recipe); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

// RecordDislikedRecipe stores a thumbs-down for a recipe.
func (s *Server) RecordDislikedRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe title is required"})
		return
	}
	if err := s.prefs.RecordDislikedRecipe(recipe); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

// RecordMeal appends a meal to the history.
func (s *Server) RecordMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.prefs.RecordMeal(req.Recipe, req.MealType); err != nil {
		s.metrics.RecordStoreSaveError("preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusCreated)
}

// RecentMeals returns the newest meals up to the requested limit.
func (s *Server) RecentMeals(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"meals": s.prefs.RecentMeals(limit)})
}

// GetPreferenceSummary returns the condensed profile used for prompt
// personalization.
func (s *Server) GetPreferenceSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.prefs.Summary())
}
