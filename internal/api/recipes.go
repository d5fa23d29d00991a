package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartchef/internal/generator"
)

// GenerateRequest carries the inputs for recipe generation. When
// UsePreferences is set the stored profile is folded into the prompt.
type GenerateRequest struct {
	Ingredients    []string `json:"ingredients" binding:"required"`
	Dietary        []string `json:"dietary"`
	UsePreferences bool     `json:"use_preferences"`
}

// IngredientsRequest is shared by the tips and substitution endpoints.
type IngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// GenerateRecipe produces a recipe from the submitted ingredients.
// Generation failures still return 200 with a degraded recipe so the
// client always has something to render.
func (s *Server) GenerateRecipe(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one ingredient is required"})
		return
	}

	var personalization *generator.Personalization
	dietary := req.Dietary
	if req.UsePreferences {
		summary := s.prefs.Summary()
		personalization = generator.BuildPersonalization(summary, req.Ingredients)
		if len(dietary) == 0 {
			dietary = summary.DietaryPreferences
		}
	}

	start := time.Now()
	recipe := s.gen.GenerateRecipe(c.Request.Context(), req.Ingredients, dietary, personalization)

	if recipe.Failed() {
		s.metrics.RecordGeneration("degraded", time.Since(start))
	} else {
		s.metrics.RecordGeneration("ok", time.Since(start))
		s.monitor.IncrCounter("recipes_generated")
		if s.archive != nil {
			if _, err := s.archive.Save(recipe, req.Ingredients); err != nil {
				s.logger.Error("failed to archive recipe",
					zap.String("title", recipe.Title),
					zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, recipe)
}

// WasteReductionTips returns storage and usage tips for the given
// ingredients.
func (s *Server) WasteReductionTips(c *gin.Context) {
	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	tips := s.gen.WasteReductionTips(c.Request.Context(), req.Ingredients)
	s.metrics.RecordLLMRequest("waste_tips", time.Since(start))

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// Substitutions returns alternatives for each submitted ingredient.
func (s *Server) Substitutions(c *gin.Context) {
	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	subs := s.gen.Substitutions(c.Request.Context(), req.Ingredients)
	s.metrics.RecordLLMRequest("substitutions", time.Since(start))

	c.JSON(http.StatusOK, gin.H{"substitutions": subs})
}

// ListArchivedRecipes returns previously generated recipes, newest
// first.
func (s *Server) ListArchivedRecipes(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe history is not enabled"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	recipes, err := s.archive.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetArchivedRecipe fetches one archived recipe by id.
func (s *Server) GetArchivedRecipe(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe history is not enabled"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := s.archive.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteArchivedRecipe removes one archived recipe by id.
func (s *Server) DeleteArchivedRecipe(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe history is not enabled"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := s.archive.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
