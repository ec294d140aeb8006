// Package pricing holds the business rules that turn cart lines into money.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
)

// ErrInvalidTier is returned for delivery tiers outside standard and instant
var ErrInvalidTier = errors.New("invalid delivery tier")

// Tier is the delivery speed chosen at checkout
type Tier string

const (
	TierStandard Tier = "standard"
	TierInstant  Tier = "instant"
)

// ParseTier maps a request value onto a tier. Empty means standard.
func ParseTier(value string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(value))) {
	case "", TierStandard:
		return TierStandard, nil
	case TierInstant:
		return TierInstant, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, value)
	}
}

// Config are the policy constants, in the same unit as product prices
type Config struct {
	GiftUnitCost          int64
	InstantDeliveryCost   int64
	StandardDeliveryCost  int64
	FreeDeliveryThreshold int64
}

// DefaultConfig returns the storefront's standard charges
func DefaultConfig() Config {
	return Config{
		GiftUnitCost:          30,
		InstantDeliveryCost:   99,
		StandardDeliveryCost:  50,
		FreeDeliveryThreshold: 500,
	}
}

// ConfigFrom reads the policy constants from application config
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		GiftUnitCost:          cfg.Pricing.GiftUnitCost,
		InstantDeliveryCost:   cfg.Pricing.InstantDeliveryCost,
		StandardDeliveryCost:  cfg.Pricing.StandardDeliveryCost,
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThreshold,
	}
}

// Policy computes subtotal, gift packaging, delivery and grand total.
// It holds no state besides its constants.
type Policy struct {
	config Config
}

// NewPolicy creates a pricing policy
func NewPolicy(cfg Config) *Policy {
	return &Policy{config: cfg}
}

// Config returns the constants the policy was built with
func (p *Policy) Config() Config {
	return p.config
}

// Subtotal is the sum of unit price times quantity
func (p *Policy) Subtotal(lines []cart.Line) int64 {
	return cart.Cart{Lines: lines}.Subtotal()
}

// GiftPackagingCost charges once per gift-wrapped line, whatever its quantity
func (p *Policy) GiftPackagingCost(lines []cart.Line) int64 {
	return int64(cart.Cart{Lines: lines}.GiftLineCount()) * p.config.GiftUnitCost
}

// DeliveryCost is fixed for instant delivery. Standard delivery is free once
// the subtotal reaches the threshold.
func (p *Policy) DeliveryCost(lines []cart.Line, tier Tier) int64 {
	if tier == TierInstant {
		return p.config.InstantDeliveryCost
	}
	if p.Subtotal(lines) >= p.config.FreeDeliveryThreshold {
		return 0
	}
	return p.config.StandardDeliveryCost
}

// Total is subtotal plus gift packaging plus delivery
func (p *Policy) Total(lines []cart.Line, tier Tier) int64 {
	return p.Subtotal(lines) + p.GiftPackagingCost(lines) + p.DeliveryCost(lines, tier)
}
