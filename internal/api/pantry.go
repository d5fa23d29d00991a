package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartchef/internal/models"
	"smartchef/internal/store"
)

type addItemRequest struct {
	Name       string `json:"name" binding:"required"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	Quantity   string `json:"quantity"`
	Category   string `json:"category"`
}

// AddPantryItem registers a new pantry item with its expiry date.
func (s *Server) AddPantryItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.pantry.AddItem(req.Name, req.ExpiryDate, req.Quantity, req.Category)
	if err != nil {
		if errors.Is(err, store.ErrEmptyName) || errors.Is(err, store.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.metrics.RecordStoreSaveError("expiration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishExpiryGauge()
	c.JSON(http.StatusCreated, item)
}

// ListPantryItems returns every tracked pantry item.
func (s *Server) ListPantryItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.pantry.ListItems()})
}

// UpdatePantryItem applies a partial update to one pantry item. Only
// the fields present in the body are changed.
func (s *Server) UpdatePantryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var upd models.ItemUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.pantry.UpdateItem(id, upd); err != nil {
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrEmptyName), errors.Is(err, store.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.metrics.RecordStoreSaveError("expiration")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	s.publishExpiryGauge()
	c.Status(http.StatusNoContent)
}

// RemovePantryItem deletes one pantry item. Removing an unknown id is
// not an error.
func (s *Server) RemovePantryItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := s.pantry.RemoveItem(id); err != nil {
		s.metrics.RecordStoreSaveError("expiration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.publishExpiryGauge()
	c.Status(http.StatusNoContent)
}

// ExpiringItems returns items expiring within the requested window,
// soonest first. The window defaults to seven days.
func (s *Server) ExpiringItems(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = n
	}
	c.JSON(http.StatusOK, gin.H{"items": s.pantry.ExpiringWithin(days)})
}

// ExpiredItems returns items already past their expiry date, most
// overdue first.
func (s *Server) ExpiredItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.pantry.Expired()})
}

func (s *Server) publishExpiryGauge() {
	s.metrics.SetPantryExpiring(len(s.pantry.ExpiringWithin(7)))
}
