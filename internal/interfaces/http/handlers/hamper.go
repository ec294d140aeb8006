package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/domain/hamper"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/middleware"
)

// AddHamperItemRequest represents add to hamper request
type AddHamperItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// HamperDetailsRequest represents hamper name and note
type HamperDetailsRequest struct {
	Name string `json:"name" binding:"max=100"`
	Note string `json:"note" binding:"max=500"`
}

// HamperResponse represents the draft with its running total
type HamperResponse struct {
	hamper.Draft
	Total int64 `json:"total"`
}

// HamperHandler handles hamper builder endpoints
type HamperHandler struct {
	products ProductSource
	sessions *session.Registry
}

// NewHamperHandler creates a new hamper handler
func NewHamperHandler(products ProductSource, sessions *session.Registry) *HamperHandler {
	return &HamperHandler{
		products: products,
		sessions: sessions,
	}
}

// GetHamper handles GET /hamper
func (h *HamperHandler) GetHamper(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hamper retrieved successfully",
		"data":    h.withComposer(c, func(*hamper.Composer) {}),
	})
}

// AddItem handles POST /hamper/items
func (h *HamperHandler) AddItem(c *gin.Context) {
	var req AddHamperItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, ok := lookupApprovedProduct(c, h.products, req.ProductID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to hamper successfully",
		"data": h.withComposer(c, func(composer *hamper.Composer) {
			composer.AddItem(p)
		}),
	})
}

// SetQuantity handles PUT /hamper/items/:productId
func (h *HamperHandler) SetQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	productID := c.Param("productId")
	c.JSON(http.StatusOK, gin.H{
		"message": "Hamper item updated successfully",
		"data": h.withComposer(c, func(composer *hamper.Composer) {
			composer.SetQuantity(productID, *req.Quantity)
		}),
	})
}

// RemoveItem handles DELETE /hamper/items/:productId
func (h *HamperHandler) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")
	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from hamper successfully",
		"data": h.withComposer(c, func(composer *hamper.Composer) {
			composer.RemoveItem(productID)
		}),
	})
}

// SetDetails handles PUT /hamper/details
func (h *HamperHandler) SetDetails(c *gin.Context) {
	var req HamperDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hamper details updated successfully",
		"data": h.withComposer(c, func(composer *hamper.Composer) {
			composer.SetDetails(req.Name, req.Note)
		}),
	})
}

// Cancel handles DELETE /hamper
func (h *HamperHandler) Cancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hamper discarded",
		"data":    h.withComposer(c, (*hamper.Composer).Reset),
	})
}

// Commit handles POST /hamper/commit
func (h *HamperHandler) Commit(c *gin.Context) {
	var lineIDs []string
	empty := false
	var itemCount int

	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		if s.Hamper.IsEmpty() {
			empty = true
			return nil
		}
		lineIDs = s.Hamper.Commit(s.Cart)
		itemCount = s.Cart.TotalItemCount()
		return nil
	})

	if empty {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Hamper is empty",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hamper added to cart successfully",
		"data": gin.H{
			"line_ids":        lineIDs,
			"cart_item_count": itemCount,
		},
	})
}

func (h *HamperHandler) withComposer(c *gin.Context, fn func(*hamper.Composer)) HamperResponse {
	var response HamperResponse
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		fn(s.Hamper)
		response = HamperResponse{Draft: s.Hamper.Draft(), Total: s.Hamper.DraftTotal()}
		return nil
	})
	return response
}
