// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
	"github.com/your-org/giftflare-backend/internal/domain/checkout"
	"github.com/your-org/giftflare-backend/internal/domain/pricing"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/middleware"
)

// PlaceOrderRequest represents the checkout form
type PlaceOrderRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required,min=10,max=15"`
	Address       string `json:"address" binding:"required,max=1000"`
	City          string `json:"city" binding:"required,max=100"`
	Pincode       string `json:"pincode" binding:"required,numeric,len=6"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	DeliveryTier  string `json:"delivery_tier"`
}

// DeliveryOption is a tier with what it would cost for the current cart
type DeliveryOption struct {
	Tier pricing.Tier `json:"tier"`
	Cost int64        `json:"cost"`
}

// CheckoutSummary represents the order review step
type CheckoutSummary struct {
	Items                 []checkout.ManifestEntry `json:"items"`
	DeliveryTier          pricing.Tier             `json:"delivery_tier"`
	Totals                checkout.Total           `json:"totals"`
	DeliveryOptions       []DeliveryOption         `json:"delivery_options"`
	PaymentMethods        []checkout.PaymentMethod `json:"payment_methods"`
	GiftPackagingCost     int64                    `json:"gift_packaging_cost"`
	FreeDeliveryThreshold int64                    `json:"free_delivery_threshold"`
}

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	sessions *session.Registry
	checkout *checkout.Service
	policy   *pricing.Policy
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *session.Registry, checkoutService *checkout.Service, policy *pricing.Policy) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		checkout: checkoutService,
		policy:   policy,
	}
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	tier, ok := bindTier(c, c.Query("delivery"))
	if !ok {
		return
	}

	var snapshot cart.Cart
	_ = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		snapshot = s.Cart.Snapshot()
		return nil
	})

	pricingConfig := h.policy.Config()
	summary := CheckoutSummary{
		Items:        h.checkout.Manifest(snapshot),
		DeliveryTier: tier,
		Totals:       h.checkout.ComputeTotal(snapshot, tier),
		DeliveryOptions: []DeliveryOption{
			{Tier: pricing.TierStandard, Cost: h.policy.DeliveryCost(snapshot.Lines, pricing.TierStandard)},
			{Tier: pricing.TierInstant, Cost: h.policy.DeliveryCost(snapshot.Lines, pricing.TierInstant)},
		},
		PaymentMethods:        []checkout.PaymentMethod{checkout.PaymentCard, checkout.PaymentUPI, checkout.PaymentCOD},
		GiftPackagingCost:     pricingConfig.GiftUnitCost,
		FreeDeliveryThreshold: pricingConfig.FreeDeliveryThreshold,
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data":    summary,
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	tier, ok := bindTier(c, req.DeliveryTier)
	if !ok {
		return
	}

	method, err := checkout.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	customer := checkout.Customer{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Pincode:       req.Pincode,
		PaymentMethod: method,
	}

	var receipt *checkout.Receipt
	err = h.sessions.With(middleware.SessionID(c), func(s *session.Session) error {
		var submitErr error
		receipt, submitErr = h.checkout.Submit(c.Request.Context(), s.Cart, tier, customer)
		return submitErr
	})

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart is empty",
		})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to place order, your cart has been kept",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    receipt,
	})
}
