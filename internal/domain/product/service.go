// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"github.com/your-org/giftflare-backend/internal/config"
	"gorm.io/gorm"
)

// Repository reads listed products from durable storage
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// GormRepository is the postgres-backed product repository
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new product repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// ListProducts returns every listed product, newest first
func (r *GormRepository) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Service serves the product collection to the storefront. Reads go through
// a circuit breaker; when the database is failing the sample catalog is
// served instead, so callers always get a usable (possibly empty) slice.
type Service struct {
	repo     Repository
	breaker  *gobreaker.CircuitBreaker[[]Product]
	config   *config.Config
	logger   logrus.FieldLogger
	fallback []Product
}

// NewService creates a new product service
func NewService(repo Repository, cfg *config.Config, logger logrus.FieldLogger) *Service {
	maxFailures := cfg.Catalog.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	breaker := gobreaker.NewCircuitBreaker[[]Product](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Timeout:     cfg.Catalog.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Catalog circuit breaker changed state")
		},
	})

	var fallback []Product
	if cfg.Catalog.FallbackToSample {
		fallback = SampleProducts()
	}

	return &Service{
		repo:     repo,
		breaker:  breaker,
		config:   cfg,
		logger:   logger,
		fallback: fallback,
	}
}

// Products returns the current product collection
func (s *Service) Products(ctx context.Context) []Product {
	products, err := s.breaker.Execute(func() ([]Product, error) {
		queryCtx, cancel := context.WithTimeout(ctx, s.config.Catalog.QueryTimeout)
		defer cancel()
		return s.repo.ListProducts(queryCtx)
	})
	if err != nil {
		entry := s.logger.WithError(err)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			entry.Debug("Catalog breaker open, serving fallback products")
		} else {
			entry.Warn("Failed to load products from database, serving fallback products")
		}
		return s.fallbackProducts()
	}

	return products
}

// Product returns one product by id
func (s *Service) Product(ctx context.Context, id string) (Product, error) {
	return FindByID(s.Products(ctx), id)
}

func (s *Service) fallbackProducts() []Product {
	products := make([]Product, len(s.fallback))
	copy(products, s.fallback)
	return products
}
