package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/middleware"
)

// SetCityRequest represents the city picker
type SetCityRequest struct {
	City string `json:"city" binding:"required,max=100"`
}

// LocationHandler handles the shopper's city preference
type LocationHandler struct {
	sessions *session.Registry
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(sessions *session.Registry) *LocationHandler {
	return &LocationHandler{sessions: sessions}
}

// GetCity handles GET /location/city
func (h *LocationHandler) GetCity(c *gin.Context) {
	city, found, err := h.sessions.City(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to retrieve city",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "City retrieved successfully",
		"data": gin.H{
			"city":     city,
			"selected": found,
		},
	})
}

// SetCity handles PUT /location/city
func (h *LocationHandler) SetCity(c *gin.Context) {
	var req SetCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "City is required",
		})
		return
	}

	if err := h.sessions.SetCity(c.Request.Context(), middleware.SessionID(c), city); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to save city",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "City updated successfully",
		"data":    gin.H{"city": city},
	})
}
