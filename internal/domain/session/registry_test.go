package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/domain/cart"
	"github.com/your-org/giftflare-backend/internal/domain/product"
	"github.com/your-org/giftflare-backend/internal/infrastructure/storage"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

var vase = product.Product{ID: "vase", Name: "Handcrafted Ceramic Vase", Price: 1299, Status: product.StatusApproved}

func testOptions() Options {
	return Options{
		CartKeyPrefix: "giftflare-cart",
		CityKeyPrefix: "userCity",
		StoreTimeout:  time.Second,
		IdleTTL:       time.Hour,
	}
}

func TestRegistry_KeysAreSeparate(t *testing.T) {
	registry := NewRegistry(storage.NewMemoryStore(), testOptions(), logger.Discard())

	assert.Equal(t, "giftflare-cart:abc", registry.CartKey("abc"))
	assert.Equal(t, "userCity:abc", registry.CityKey("abc"))
}

func TestRegistry_ReusesSession(t *testing.T) {
	registry := NewRegistry(storage.NewMemoryStore(), testOptions(), logger.Discard())

	require.NoError(t, registry.With("s1", func(s *Session) error {
		s.Cart.Add(vase, cart.DefaultOptions())
		s.Hamper.AddItem(vase)
		return nil
	}))

	require.NoError(t, registry.With("s1", func(s *Session) error {
		assert.Equal(t, 1, s.Cart.TotalItemCount())
		assert.Len(t, s.Hamper.Entries(), 1)
		return nil
	}))

	require.NoError(t, registry.With("s2", func(s *Session) error {
		assert.Equal(t, 0, s.Cart.TotalItemCount())
		return nil
	}))
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_SerialisesAccess(t *testing.T) {
	registry := NewRegistry(storage.NewMemoryStore(), testOptions(), logger.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = registry.With("shared", func(s *Session) error {
				s.Cart.Add(vase, cart.DefaultOptions())
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, registry.With("shared", func(s *Session) error {
		assert.Equal(t, 50, s.Cart.TotalItemCount())
		assert.Len(t, s.Cart.Lines(), 1)
		return nil
	}))
}

func TestRegistry_PruneKeepsCartInStorage(t *testing.T) {
	store := storage.NewMemoryStore()
	registry := NewRegistry(store, testOptions(), logger.Discard())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	require.NoError(t, registry.With("idle", func(s *Session) error {
		s.Cart.Add(vase, cart.Options{Quantity: 3})
		s.Hamper.AddItem(vase)
		return nil
	}))

	now = now.Add(30 * time.Minute)
	require.NoError(t, registry.With("active", func(s *Session) error { return nil }))

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, registry.Prune())
	assert.Equal(t, 1, registry.Len())

	require.NoError(t, registry.With("idle", func(s *Session) error {
		assert.Equal(t, 3, s.Cart.TotalItemCount())
		assert.True(t, s.Hamper.IsEmpty())
		return nil
	}))
}

func TestRegistry_PruneDisabled(t *testing.T) {
	opts := testOptions()
	opts.IdleTTL = 0
	registry := NewRegistry(storage.NewMemoryStore(), opts, logger.Discard())
	_ = registry.With("s", func(s *Session) error { return nil })

	assert.Equal(t, 0, registry.Prune())
}

func TestRegistry_City(t *testing.T) {
	store := storage.NewMemoryStore()
	registry := NewRegistry(store, testOptions(), logger.Discard())
	ctx := context.Background()

	_, found, err := registry.City(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, registry.SetCity(ctx, "s1", " Jaipur "))
	city, found, err := registry.City(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Jaipur", city)

	_, cartFound, _ := store.Get(ctx, registry.CartKey("s1"))
	assert.False(t, cartFound)
}

func TestRegistry_RunPrunerStops(t *testing.T) {
	registry := NewRegistry(storage.NewMemoryStore(), testOptions(), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		registry.RunPruner(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}

func TestOptionsFrom(t *testing.T) {
	cfg := &config.Config{
		Cart:    config.CartConfig{KeyPrefix: "c", CityKeyPrefix: "city", StoreTimeout: 2 * time.Second},
		Session: config.SessionConfig{IdleTTL: time.Minute},
	}

	assert.Equal(t, Options{CartKeyPrefix: "c", CityKeyPrefix: "city", StoreTimeout: 2 * time.Second, IdleTTL: time.Minute}, OptionsFrom(cfg))
}
