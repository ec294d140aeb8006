package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

type mockRepository struct {
	products []Product
	err      error
	calls    int
}

func (m *mockRepository) ListProducts(context.Context) ([]Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func testConfig(fallback bool) *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			QueryTimeout:       time.Second,
			BreakerMaxFailures: 2,
			BreakerOpenTimeout: time.Minute,
			FallbackToSample:   fallback,
		},
	}
}

func TestProducts_FromRepository(t *testing.T) {
	repo := &mockRepository{products: []Product{{ID: "p1", Name: "Vase", Price: 100, Status: StatusApproved}}}
	svc := NewService(repo, testConfig(true), logger.Discard())

	products := svc.Products(context.Background())
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
}

func TestProducts_EmptyRepositoryIsNotAnError(t *testing.T) {
	repo := &mockRepository{products: []Product{}}
	svc := NewService(repo, testConfig(true), logger.Discard())

	assert.Empty(t, svc.Products(context.Background()))
}

func TestProducts_FallsBackToSampleOnError(t *testing.T) {
	repo := &mockRepository{err: errors.New("relation \"products\" does not exist")}
	svc := NewService(repo, testConfig(true), logger.Discard())

	products := svc.Products(context.Background())
	assert.Equal(t, SampleProducts(), products)
}

func TestProducts_NoFallbackConfigured(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	svc := NewService(repo, testConfig(false), logger.Discard())

	assert.Empty(t, svc.Products(context.Background()))
}

func TestProducts_BreakerStopsCallingFailingRepository(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	svc := NewService(repo, testConfig(true), logger.Discard())

	for i := 0; i < 5; i++ {
		svc.Products(context.Background())
	}

	// two failures trip the breaker, the rest are short-circuited
	assert.Equal(t, 2, repo.calls)
}

func TestProduct_Lookup(t *testing.T) {
	repo := &mockRepository{products: SampleProducts()}
	svc := NewService(repo, testConfig(true), logger.Discard())

	p, err := svc.Product(context.Background(), "sample-2")
	require.NoError(t, err)
	assert.Equal(t, "Artisan Soy Candles", p.Name)

	_, err = svc.Product(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTagList(t *testing.T) {
	p := Product{Tags: "handmade, ceramic,,home-decor"}
	assert.Equal(t, []string{"handmade", "ceramic", "home-decor"}, p.TagList())
	assert.Empty(t, (&Product{}).TagList())
}
