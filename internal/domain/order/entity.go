// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

// OrderStatusPlaced is the only status this service writes. Later states
// belong to the fulfillment backend.
const OrderStatusPlaced OrderStatus = "placed"

// DefaultCurrency is the currency product prices are listed in
const DefaultCurrency = "INR"

// Order represents a placed order
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	Status      OrderStatus `gorm:"not null;size:20;default:'placed'" json:"status"`

	// Customer
	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	Email         string `gorm:"not null;size:255;index" json:"email"`
	Phone         string `gorm:"size:20" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	City          string `gorm:"size:100" json:"city"`
	Pincode       string `gorm:"size:10" json:"pincode"`
	PaymentMethod string `gorm:"size:20" json:"payment_method"`
	DeliveryTier  string `gorm:"size:20" json:"delivery_tier"`

	// Financial Information
	SubtotalAmount      int64  `gorm:"not null" json:"subtotal_amount"`
	GiftPackagingAmount int64  `gorm:"default:0" json:"gift_packaging_amount"`
	DeliveryAmount      int64  `gorm:"default:0" json:"delivery_amount"`
	TotalAmount         int64  `gorm:"not null" json:"total_amount"`
	Currency            string `gorm:"size:3;default:'INR'" json:"currency"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one cart line in an order
type OrderItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	LineID        string    `gorm:"size:128" json:"line_id"`
	ProductID     string    `gorm:"not null;size:64;index" json:"product_id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         int64     `gorm:"not null" json:"price"`       // Price per unit
	TotalPrice    int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	GiftPackaging bool      `gorm:"default:false" json:"gift_packaging"`
	GiftNote      string    `gorm:"type:text" json:"gift_note"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number.
// Format: GF-YYYYMMDD-XXXXXXXX
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("GF-%s-%s", now.UTC().Format("20060102"), suffix)
}

// ItemCount is the sum of item quantities
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
