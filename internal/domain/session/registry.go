// Package session keeps the per-shopper cart and hamper draft in memory and
// serialises access to them.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
	"github.com/your-org/giftflare-backend/internal/domain/hamper"
)

// Session is one shopper's working state. Cart and Hamper must only be used
// inside Registry.With.
type Session struct {
	ID     string
	Cart   *cart.Store
	Hamper *hamper.Composer

	mu       sync.Mutex
	lastSeen time.Time
}

// Options configure a Registry
type Options struct {
	CartKeyPrefix string
	CityKeyPrefix string
	StoreTimeout  time.Duration
	IdleTTL       time.Duration
}

// OptionsFrom reads registry options from application config
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		CartKeyPrefix: cfg.Cart.KeyPrefix,
		CityKeyPrefix: cfg.Cart.CityKeyPrefix,
		StoreTimeout:  cfg.Cart.StoreTimeout,
		IdleTTL:       cfg.Session.IdleTTL,
	}
}

// Registry owns the live sessions
type Registry struct {
	storage cart.Storage
	options Options
	logger  logrus.FieldLogger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry backed by storage
func NewRegistry(storage cart.Storage, opts Options, logger logrus.FieldLogger) *Registry {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = cart.DefaultStoreTimeout
	}
	return &Registry{
		storage:  storage,
		options:  opts,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// CartKey is the storage key of a session's cart
func (r *Registry) CartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.options.CartKeyPrefix, sessionID)
}

// CityKey is the storage key of a session's city preference
func (r *Registry) CityKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.options.CityKeyPrefix, sessionID)
}

// With runs fn with exclusive access to the session, loading it on first use
func (r *Registry) With(sessionID string, fn func(s *Session) error) error {
	s := r.acquire(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s)
}

func (r *Registry) acquire(sessionID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &Session{
			ID: sessionID,
			Cart: cart.NewStore(r.storage, r.CartKey(sessionID),
				r.logger.WithField("session_id", sessionID),
				cart.WithTimeout(r.options.StoreTimeout)),
			Hamper: hamper.NewComposer(),
		}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.now()
	return s
}

// Len is the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune drops sessions idle for longer than the idle TTL. Carts survive in
// storage; hamper drafts are discarded. It returns the number dropped.
func (r *Registry) Prune() int {
	if r.options.IdleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.options.IdleTTL)
	pruned := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned
}

// RunPruner prunes on every tick until ctx is done
func (r *Registry) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Prune(); n > 0 {
				r.logger.WithField("pruned", n).Debug("Pruned idle sessions")
			}
		case <-ctx.Done():
			return
		}
	}
}

// City returns the stored city preference
func (r *Registry) City(ctx context.Context, sessionID string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.options.StoreTimeout)
	defer cancel()

	return r.storage.Get(ctx, r.CityKey(sessionID))
}

// SetCity stores the city preference
func (r *Registry) SetCity(ctx context.Context, sessionID, city string) error {
	ctx, cancel := context.WithTimeout(ctx, r.options.StoreTimeout)
	defer cancel()

	return r.storage.Set(ctx, r.CityKey(sessionID), strings.TrimSpace(city))
}
