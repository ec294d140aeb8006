// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
	"github.com/your-org/giftflare-backend/internal/domain/pricing"
)

var (
	// ErrEmptyCart is returned when submitting a cart without lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidPaymentMethod is returned for payment methods the storefront does not offer
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// PaymentMethod is the payment option the shopper picked. It is recorded
// with the order only; no payment is taken here.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// ParsePaymentMethod maps a request value onto a payment method
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch method := PaymentMethod(strings.ToLower(strings.TrimSpace(value))); method {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, value)
	}
}

// Total is the price breakdown of a cart
type Total struct {
	Subtotal      int64 `json:"subtotal"`
	GiftPackaging int64 `json:"gift_packaging"`
	Delivery      int64 `json:"delivery"`
	Total         int64 `json:"total"`
}

// ManifestEntry is one cart line as it is sent with an order
type ManifestEntry struct {
	LineID        string `json:"line_id"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	GiftPackaging bool   `json:"gift_packaging"`
	GiftNote      string `json:"gift_note,omitempty"`
}

// Customer holds the delivery details entered at checkout
type Customer struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	Pincode       string        `json:"pincode"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// Order is everything an order placement collaborator needs
type Order struct {
	Items    []ManifestEntry `json:"items"`
	Total    Total           `json:"total"`
	Tier     pricing.Tier    `json:"delivery_tier"`
	Customer Customer        `json:"customer"`
}

// Receipt confirms a placed order
type Receipt struct {
	OrderNumber string    `json:"order_number"`
	Total       Total     `json:"total"`
	PlacedAt    time.Time `json:"placed_at"`
}

// Submitter places orders. Implementations talk to the order backend.
type Submitter interface {
	PlaceOrder(ctx context.Context, order Order) (*Receipt, error)
}

// CartClearer is the part of the cart store checkout needs
type CartClearer interface {
	Snapshot() cart.Cart
	Clear()
}

// Service aggregates cart and pricing into orders
type Service struct {
	policy    *pricing.Policy
	submitter Submitter
	logger    logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(policy *pricing.Policy, submitter Submitter, logger logrus.FieldLogger) *Service {
	return &Service{
		policy:    policy,
		submitter: submitter,
		logger:    logger,
	}
}

// ComputeTotal prices the cart for the given delivery tier
func (s *Service) ComputeTotal(c cart.Cart, tier pricing.Tier) Total {
	return Total{
		Subtotal:      s.policy.Subtotal(c.Lines),
		GiftPackaging: s.policy.GiftPackagingCost(c.Lines),
		Delivery:      s.policy.DeliveryCost(c.Lines, tier),
		Total:         s.policy.Total(c.Lines, tier),
	}
}

// Manifest lists the cart lines in cart order
func (s *Service) Manifest(c cart.Cart) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(c.Lines))
	for _, line := range c.Lines {
		entries = append(entries, ManifestEntry{
			LineID:        line.ID,
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			Quantity:      line.Quantity,
			UnitPrice:     line.Product.Price,
			GiftPackaging: line.GiftPackaging,
			GiftNote:      line.GiftNote,
		})
	}
	return entries
}

// Submit places an order for the cart contents. The cart is cleared only
// after the submitter accepts the order; on failure it is left as it was.
func (s *Service) Submit(ctx context.Context, c CartClearer, tier pricing.Tier, customer Customer) (*Receipt, error) {
	snapshot := c.Snapshot()
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := Order{
		Items:    s.Manifest(snapshot),
		Total:    s.ComputeTotal(snapshot, tier),
		Tier:     tier,
		Customer: customer,
	}

	receipt, err := s.submitter.PlaceOrder(ctx, order)
	if err != nil {
		s.logger.WithError(err).WithField("total", order.Total.Total).Warn("Order submission failed, cart kept")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	c.Clear()

	s.logger.WithFields(logrus.Fields{
		"order_number": receipt.OrderNumber,
		"lines":        len(order.Items),
		"total":        order.Total.Total,
		"tier":         tier,
	}).Info("Order placed")

	return receipt, nil
}
