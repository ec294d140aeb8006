// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
	"github.com/your-org/giftflare-backend/internal/domain/checkout"
	"github.com/your-org/giftflare-backend/internal/domain/pricing"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/middleware"
)

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	GiftPackaging bool   `json:"gift_packaging"`
}

// UpdateQuantityRequest represents set quantity request
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest represents the editable line fields
type UpdateCartItemRequest struct {
	GiftNote *string `json:"gift_note" binding:"omitempty,max=500"`
}

// VisibilityRequest represents cart panel visibility
type VisibilityRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// CartResponse represents the cart with its price breakdown
type CartResponse struct {
	Lines        []cart.Line    `json:"lines"`
	ItemCount    int            `json:"item_count"`
	Open         bool           `json:"open"`
	DeliveryTier pricing.Tier   `json:"delivery_tier"`
	Totals       checkout.Total `json:"totals"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	products ProductSource
	sessions *session.Registry
	checkout *checkout.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(products ProductSource, sessions *session.Registry, checkoutService *checkout.Service) *CartHandler {
	return &CartHandler{
		products: products,
		sessions: sessions,
		checkout: checkoutService,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	tier, ok := bindTier(c, c.Query("delivery"))
	if !ok {
		return
	}

	var response CartResponse
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		response = h.buildResponse(s.Cart.Snapshot(), tier)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    response,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	var count int
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		count = s.Cart.TotalItemCount()
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
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

	var lineID string
	var response CartResponse
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		lineID = s.Cart.Add(p, cart.Options{Quantity: req.Quantity, GiftPackaging: req.GiftPackaging})
		response = h.buildResponse(s.Cart.Snapshot(), pricing.TierStandard)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data": gin.H{
			"line_id": lineID,
			"cart":    response,
		},
	})
}

// UpdateQuantity handles PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.mutateLine(c, "Cart item updated successfully", func(s *session.Session, lineID string) {
		s.Cart.SetQuantity(lineID, *req.Quantity)
	})
}

// UpdateCartItem handles PATCH /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.mutateLine(c, "Cart item updated successfully", func(s *session.Session, lineID string) {
		s.Cart.Update(lineID, cart.LineUpdate{GiftNote: req.GiftNote})
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.mutateLine(c, "Item removed from cart successfully", func(s *session.Session, lineID string) {
		s.Cart.Remove(lineID)
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	var response CartResponse
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		s.Cart.Clear()
		response = h.buildResponse(s.Cart.Snapshot(), pricing.TierStandard)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    response,
	})
}

// SetVisibility handles PUT /cart/visibility
func (h *CartHandler) SetVisibility(c *gin.Context) {
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		s.Cart.SetOpen(*req.Open)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart visibility updated successfully",
		"data":    gin.H{"open": *req.Open},
	})
}

// mutateLine applies fn to an existing line, answering 404 for unknown ids
func (h *CartHandler) mutateLine(c *gin.Context, message string, fn func(s *session.Session, lineID string)) {
	lineID := c.Param("id")

	found := false
	var response CartResponse
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		if _, found = s.Cart.Line(lineID); !found {
			return nil
		}
		fn(s, lineID)
		response = h.buildResponse(s.Cart.Snapshot(), pricing.TierStandard)
		return nil
	})

	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    response,
	})
}

func (h *CartHandler) buildResponse(snapshot cart.Cart, tier pricing.Tier) CartResponse {
	return CartResponse{
		Lines:        snapshot.Lines,
		ItemCount:    snapshot.ItemCount(),
		Open:         snapshot.Open,
		DeliveryTier: tier,
		Totals:       h.checkout.ComputeTotal(snapshot, tier),
	}
}

// bindTier parses a delivery tier, answering 400 when it is unknown
func bindTier(c *gin.Context, value string) (pricing.Tier, bool) {
	tier, err := pricing.ParseTier(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return "", false
	}
	return tier, true
}
