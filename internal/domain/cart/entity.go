// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/giftflare-backend/internal/domain/product"
)

// Line is one (product, gift packaging) pairing in the cart
type Line struct {
	ID            string          `json:"id"`
	Product       product.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	GiftPackaging bool            `json:"gift_packaging"`
	GiftNote      string          `json:"gift_note"`
}

// Total returns unit price times quantity
func (l Line) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Options are the recognised add-to-cart options.
// Quantity defaults to 1 and GiftPackaging to false.
type Options struct {
	Quantity      int
	GiftPackaging bool
}

// DefaultOptions adds a single unit without gift packaging
func DefaultOptions() Options {
	return Options{Quantity: 1}
}

// LineUpdate carries the fields a shopper may change on an existing line.
// Nil fields are left as they are.
type LineUpdate struct {
	GiftNote *string
}

// Cart is a point-in-time copy of the cart contents
type Cart struct {
	Lines []Line `json:"lines"`
	Open  bool   `json:"open"`
}

// Subtotal is the sum of unit price times quantity over all lines
func (c Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Total()
	}
	return total
}

// ItemCount is the sum of quantities over all lines
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// GiftLineCount is the number of lines marked for gift packaging
func (c Cart) GiftLineCount() int {
	count := 0
	for _, line := range c.Lines {
		if line.GiftPackaging {
			count++
		}
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
