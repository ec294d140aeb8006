// Package hamper builds a gift hamper draft and hands it to the cart.
package hamper

import (
	"github.com/your-org/giftflare-backend/internal/domain/product"
)

// Entry is one product in the draft with its unit count
type Entry struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Total is unit price times quantity
func (e Entry) Total() int64 {
	return e.Product.Price * int64(e.Quantity)
}

// Draft is a point-in-time copy of the composer state
type Draft struct {
	Entries []Entry `json:"entries"`
	Name    string  `json:"name"`
	Note    string  `json:"note"`
}

// UnitAdder receives each committed hamper unit as its own gift-wrapped line
type UnitAdder interface {
	AddGiftUnit(p product.Product) string
}

// Composer holds an in-progress hamper. Drafts are never persisted.
// A Composer is not safe for concurrent use.
type Composer struct {
	entries []Entry
	name    string
	note    string
}

// NewComposer creates an empty composer
func NewComposer() *Composer {
	return &Composer{entries: []Entry{}}
}

// AddItem adds one unit of the product
func (c *Composer) AddItem(p product.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.entries[i].Quantity++
		return
	}
	c.entries = append(c.entries, Entry{Product: p, Quantity: 1})
}

// RemoveItem drops the product from the draft
func (c *Composer) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
	}
}

// SetQuantity overwrites a product's count; zero or less removes it.
// Products not in the draft are ignored.
func (c *Composer) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.entries[i].Quantity = quantity
	}
}

// SetDetails records the hamper name and note
func (c *Composer) SetDetails(name, note string) {
	c.name = name
	c.note = note
}

// DraftTotal is the sum of unit price times quantity over the draft
func (c *Composer) DraftTotal() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.Total()
	}
	return total
}

// Entries returns a copy of the draft entries in insertion order
func (c *Composer) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Draft returns a copy of the whole composer state
func (c *Composer) Draft() Draft {
	return Draft{Entries: c.Entries(), Name: c.name, Note: c.note}
}

// IsEmpty reports whether the draft has no entries
func (c *Composer) IsEmpty() bool {
	return len(c.entries) == 0
}

// Reset discards the draft
func (c *Composer) Reset() {
	c.entries = []Entry{}
	c.name = ""
	c.note = ""
}

// Commit moves the draft into target one unit at a time, in insertion order,
// and then resets the draft. Name and note do not reach the cart.
// It returns the ids of the created lines.
func (c *Composer) Commit(target UnitAdder) []string {
	lineIDs := []string{}
	for _, e := range c.entries {
		for n := 0; n < e.Quantity; n++ {
			lineIDs = append(lineIDs, target.AddGiftUnit(e.Product))
		}
	}

	c.Reset()
	return lineIDs
}

func (c *Composer) indexOf(productID string) int {
	for i, e := range c.entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}
