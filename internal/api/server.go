// Package api exposes the recipe generator and the document stores
// over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartchef/internal/database"
	"smartchef/internal/generator"
	"smartchef/internal/models"
	"smartchef/internal/monitoring"
	"smartchef/internal/store"
)

// RecipeGenerator is the slice of the generator the API consumes.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients, dietary []string, personalization *generator.Personalization) models.Recipe
	WasteReductionTips(ctx context.Context, ingredients []string) []string
	Substitutions(ctx context.Context, ingredients []string) map[string][]string
}

// Server wires the HTTP routes to the stores and the generator.
type Server struct {
	router  *gin.Engine
	prefs   *store.PreferenceStore
	pantry  *store.ExpirationStore
	gen     RecipeGenerator
	archive *database.RecipeArchive
	monitor *monitoring.Monitor
	metrics *monitoring.MetricsCollector
	hub     *AlertHub
	logger  *zap.Logger
}

// NewServer creates the API server. The archive may be nil, in which
// case generated recipes are not persisted and history endpoints
// report 503.
func NewServer(
	prefs *store.PreferenceStore,
	pantry *store.ExpirationStore,
	gen RecipeGenerator,
	archive *database.RecipeArchive,
	monitor *monitoring.Monitor,
	metrics *monitoring.MetricsCollector,
	hub *AlertHub,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:  gin.Default(),
		prefs:   prefs,
		pantry:  pantry,
		gen:     gen,
		archive: archive,
		monitor: monitor,
		metrics: metrics,
		hub:     hub,
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "SmartChef API is running"})
	})

	if s.hub != nil {
		s.router.GET("/ws", s.hub.HandleWebSocket)
	}

	v1 := s.router.Group("/api/v1")
	{
		// Recipe generation and companions
		v1.POST("/recipes/generate", s.GenerateRecipe)
		v1.POST("/recipes/tips", s.WasteReductionTips)
		v1.POST("/recipes/substitutions", s.Substitutions)

		// Recipe history (archive)
		v1.GET("/recipes", s.ListArchivedRecipes)
		v1.GET("/recipes/:id", s.GetArchivedRecipe)
		v1.DELETE("/recipes/:id", s.DeleteArchivedRecipe)

		// User preferences
		v1.GET("/preferences/dietary", s.GetDietaryPreferences)
		v1.PUT("/preferences/dietary", s.SetDietaryPreferences)
		v1.GET("/preferences/cuisines", s.GetCuisinePreferences)
		v1.PUT("/preferences/cuisines", s.SetCuisinePreferences)
		v1.GET("/preferences/ingredients", s.GetIngredientPreferences)
		v1.POST("/preferences/ingredients/favorites", s.AddFavoriteIngredient)
		v1.POST("/preferences/ingredients/dislikes", s.AddDislikedIngredient)
		v1.GET("/preferences/recipes/liked", s.GetLikedRecipes)
		v1.GET("/preferences/recipes/disliked", s.GetDislikedRecipes)
		v1.POST("/preferences/recipes/liked", s.RecordLikedRecipe)
		v1.POST("/preferences/recipes/disliked", s.RecordDislikedRecipe)
		v1.GET("/preferences/meals", s.RecentMeals)
		v1.POST("/preferences/meals", s.RecordMeal)
		v1.GET("/preferences/summary", s.GetPreferenceSummary)

		// Pantry / expiration tracking
		v1.GET("/pantry/items", s.ListPantryItems)
		v1.POST("/pantry/items", s.AddPantryItem)
		v1.PATCH("/pantry/items/:id", s.UpdatePantryItem)
		v1.DELETE("/pantry/items/:id", s.RemovePantryItem)
		v1.GET("/pantry/expiring", s.ExpiringItems)
		v1.GET("/pantry/expired", s.ExpiredItems)

		// Runtime status
		v1.GET("/status", s.Status)
	}
}

// Router returns the gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Status reports runtime counters from the monitor.
func (s *Server) Status(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
