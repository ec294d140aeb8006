// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/domain/checkout"
	"gorm.io/gorm"
)

// Repository stores placed orders
type Repository interface {
	Create(ctx context.Context, order *Order) error
}

// GormRepository stores orders in postgres
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed order repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create saves the order and its items in one transaction
func (r *GormRepository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return fmt.Errorf("failed to create order items: %w", err)
			}
		}
		return nil
	})
}

// PlacedEvent is announced after an order is stored
type PlacedEvent struct {
	OrderNumber   string    `json:"order_number"`
	Email         string    `json:"email"`
	City          string    `json:"city"`
	DeliveryTier  string    `json:"delivery_tier"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Publisher announces placed orders
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event PlacedEvent) error
}

var _ checkout.Submitter = (*Service)(nil)

// Service places orders. It implements checkout.Submitter.
type Service struct {
	repo      Repository
	publisher Publisher
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewService creates a new order service
func NewService(repo Repository, publisher Publisher, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder stores the order and announces it. Publishing is best effort:
// an order that was stored is placed even if the event could not be sent.
func (s *Service) PlaceOrder(ctx context.Context, req checkout.Order) (*checkout.Receipt, error) {
	now := s.now().UTC()
	order := buildOrder(req, now)

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	event := PlacedEvent{
		OrderNumber:   order.OrderNumber,
		Email:         order.Email,
		City:          order.City,
		DeliveryTier:  order.DeliveryTier,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     order.ItemCount(),
		TotalAmount:   order.TotalAmount,
		Currency:      order.Currency,
		PlacedAt:      now,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.WithError(err).WithField("order_number", order.OrderNumber).Warn("Failed to publish order placed event")
	}

	return &checkout.Receipt{
		OrderNumber: order.OrderNumber,
		Total:       req.Total,
		PlacedAt:    now,
	}, nil
}

func buildOrder(req checkout.Order, now time.Time) *Order {
	order := &Order{
		OrderNumber:         GenerateOrderNumber(now),
		Status:              OrderStatusPlaced,
		CustomerName:        req.Customer.Name,
		Email:               req.Customer.Email,
		Phone:               req.Customer.Phone,
		Address:             req.Customer.Address,
		City:                req.Customer.City,
		Pincode:             req.Customer.Pincode,
		PaymentMethod:       string(req.Customer.PaymentMethod),
		DeliveryTier:        string(req.Tier),
		SubtotalAmount:      req.Total.Subtotal,
		GiftPackagingAmount: req.Total.GiftPackaging,
		DeliveryAmount:      req.Total.Delivery,
		TotalAmount:         req.Total.Total,
		Currency:            DefaultCurrency,
		Items:               make([]OrderItem, 0, len(req.Items)),
	}

	for _, entry := range req.Items {
		order.Items = append(order.Items, OrderItem{
			LineID:        entry.LineID,
			ProductID:     entry.ProductID,
			Name:          entry.Name,
			Quantity:      entry.Quantity,
			Price:         entry.UnitPrice,
			TotalPrice:    entry.UnitPrice * int64(entry.Quantity),
			GiftPackaging: entry.GiftPackaging,
			GiftNote:      entry.GiftNote,
		})
	}
	return order
}
