// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/domain/product"
)

// DefaultStoreTimeout bounds each storage round trip
const DefaultStoreTimeout = 3 * time.Second

// Storage is the key/value backend a cart is persisted to
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store holds a shopper's cart in memory and mirrors every change to storage.
// A Store is not safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	timeout time.Duration
	logger  logrus.FieldLogger

	lines []Line
	open  bool
}

// StoreOption customises a Store
type StoreOption func(*Store)

// WithTimeout overrides the per-call storage timeout
func WithTimeout(timeout time.Duration) StoreOption {
	return func(s *Store) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewStore creates a cart store and rehydrates it from storage.
// Unreadable or unavailable data yields an empty cart.
func NewStore(storage Storage, key string, logger logrus.FieldLogger, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		key:     key,
		timeout: DefaultStoreTimeout,
		logger:  logger.WithField("cart_key", key),
		lines:   []Line{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s
}

func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load cart, starting empty")
		return
	}
	if !found {
		return
	}

	restored, rejected, err := Decode(data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedVersion) {
			s.logger.WithError(err).Warn("Persisted cart has an unknown format, starting empty")
		} else {
			s.logger.WithError(err).Warn("Persisted cart is unreadable, starting empty")
		}
		return
	}

	for _, r := range rejected {
		s.logger.WithFields(logrus.Fields{
			"index":  r.Index,
			"reason": r.Reason,
		}).Warn("Dropped invalid cart line")
	}

	s.lines = restored.Lines
	s.open = restored.Open
}

func (s *Store) save() {
	data, err := Encode(s.Snapshot())
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.logger.WithError(err).Warn("Failed to persist cart")
	}
}

// Add puts a product into the cart. A line with the same product and gift
// packaging choice is increased instead of duplicated. Adding opens the cart.
// It returns the id of the affected line.
func (s *Store) Add(p product.Product, opts Options) string {
	quantity := opts.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var lineID string
	if i := s.indexOfMatch(p.ID, opts.GiftPackaging); i >= 0 {
		s.lines[i].Quantity += quantity
		lineID = s.lines[i].ID
	} else {
		lineID = newLineID(p.ID, opts.GiftPackaging)
		s.lines = append(s.lines, Line{
			ID:            lineID,
			Product:       p,
			Quantity:      quantity,
			GiftPackaging: opts.GiftPackaging,
		})
	}

	s.open = true
	s.save()
	return lineID
}

// AddGiftUnit appends a single gift-wrapped unit as its own line. It never
// merges, so hamper contents keep one line per unit.
func (s *Store) AddGiftUnit(p product.Product) string {
	lineID := newLineID(p.ID, true)
	s.lines = append(s.lines, Line{
		ID:            lineID,
		Product:       p,
		Quantity:      1,
		GiftPackaging: true,
	})

	s.open = true
	s.save()
	return lineID
}

// Remove deletes a line. Unknown ids are ignored.
func (s *Store) Remove(lineID string) {
	i := s.indexOf(lineID)
	if i < 0 {
		return
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.save()
}

// SetQuantity overwrites a line's quantity; zero or less removes the line
func (s *Store) SetQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		s.Remove(lineID)
		return
	}

	i := s.indexOf(lineID)
	if i < 0 {
		return
	}

	s.lines[i].Quantity = quantity
	s.save()
}

// Update applies the non-nil fields of update to a line
func (s *Store) Update(lineID string, update LineUpdate) {
	i := s.indexOf(lineID)
	if i < 0 {
		return
	}

	if update.GiftNote == nil {
		return
	}

	s.lines[i].GiftNote = *update.GiftNote
	s.save()
}

// Clear removes every line
func (s *Store) Clear() {
	s.lines = []Line{}
	s.save()
}

// SetOpen records whether the cart panel is shown
func (s *Store) SetOpen(open bool) {
	s.open = open
	s.save()
}

// IsOpen reports whether the cart panel is shown
func (s *Store) IsOpen() bool {
	return s.open
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []Line {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Line returns a single line by id
func (s *Store) Line(lineID string) (Line, bool) {
	i := s.indexOf(lineID)
	if i < 0 {
		return Line{}, false
	}
	return s.lines[i], true
}

// Snapshot returns a copy of the whole cart
func (s *Store) Snapshot() Cart {
	return Cart{Lines: s.Lines(), Open: s.open}
}

// TotalItemCount is the sum of quantities
func (s *Store) TotalItemCount() int {
	return s.Snapshot().ItemCount()
}

// TotalPrice is the sum of unit price times quantity
func (s *Store) TotalPrice() int64 {
	return s.Snapshot().Subtotal()
}

func (s *Store) indexOf(lineID string) int {
	for i, line := range s.lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) indexOfMatch(productID string, gift bool) int {
	for i, line := range s.lines {
		if line.Product.ID == productID && line.GiftPackaging == gift {
			return i
		}
	}
	return -1
}

func newLineID(productID string, gift bool) string {
	suffix := "regular"
	if gift {
		suffix = "gift"
	}
	return fmt.Sprintf("%s-%s-%s", productID, uuid.NewString(), suffix)
}
