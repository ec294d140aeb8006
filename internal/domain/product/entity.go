// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a product id is not in the catalog
var ErrNotFound = errors.New("product not found")

// Status is the moderation state of a listed product
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Product represents a seller's listed product
type Product struct {
	ID                      string    `gorm:"primaryKey;size:64" json:"id"`
	SellerID                string    `gorm:"size:64;index" json:"seller_id"`
	SellerName              string    `gorm:"size:255" json:"seller_name"`
	Name                    string    `gorm:"not null;size:255" json:"name"`
	Description             string    `gorm:"type:text" json:"description"`
	ImageURL                string    `gorm:"size:500" json:"image_url"`
	VideoURL                string    `gorm:"size:500" json:"video_url,omitempty"`
	Price                   int64     `gorm:"not null" json:"price"`
	Category                string    `gorm:"size:100;index" json:"category"`
	City                    string    `gorm:"size:100;index" json:"city"`
	InstantDeliveryEligible bool      `gorm:"default:false" json:"instant_delivery_eligible"`
	Status                  Status    `gorm:"size:20;default:'pending';index" json:"status"`
	Tags                    string    `gorm:"size:500" json:"tags"` // Comma-separated tags
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// IsApproved reports whether the product may be shown to shoppers
func (p *Product) IsApproved() bool {
	return p.Status == StatusApproved
}

// TagList splits the comma-separated tags
func (p *Product) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FindByID returns the product with the given id from a catalog snapshot
func FindByID(products []Product, id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}
