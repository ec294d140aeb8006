package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/domain/checkout"
	"github.com/your-org/giftflare-backend/internal/domain/pricing"
	"github.com/your-org/giftflare-backend/internal/domain/product"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/infrastructure/storage"
	"github.com/your-org/giftflare-backend/internal/interfaces/http/middleware"
	"github.com/your-org/giftflare-backend/internal/pkg/auth"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticCatalog []product.Product

func (s staticCatalog) Products(ctx context.Context) []product.Product { return s }

func (s staticCatalog) Product(ctx context.Context, id string) (product.Product, error) {
	return product.FindByID(s, id)
}

type noopSubmitter struct{}

func (noopSubmitter) PlaceOrder(ctx context.Context, order checkout.Order) (*checkout.Receipt, error) {
	return &checkout.Receipt{OrderNumber: "GF-TEST", Total: order.Total, PlacedAt: time.Now()}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "giftflare-backend", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Session: config.SessionConfig{
			Secret:     "test-session-secret-at-least-32-characters",
			CookieName: "giftflare_session",
			Expiry:     time.Hour,
		},
		Cart: config.CartConfig{KeyPrefix: "cart", CityKeyPrefix: "city"},
	}
}

func newTestServer(checks map[string]HealthCheck) *Server {
	cfg := testConfig()
	policy := pricing.NewPolicy(pricing.DefaultConfig())

	return NewServer(cfg, Dependencies{
		Logger:       logger.Discard(),
		Products:     staticCatalog(product.SampleProducts()),
		Sessions:     session.NewRegistry(storage.NewMemoryStore(), session.OptionsFrom(cfg), logger.Discard()),
		Tokens:       auth.NewSessionManager(cfg),
		Checkout:     checkout.NewService(policy, noopSubmitter{}, logger.Discard()),
		Policy:       policy,
		HealthChecks: checks,
	})
}

func TestServer_CartFollowsSessionCookie(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"sample-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Cart count retrieved successfully","data":{"count":1}}`, w.Body.String())

	// a fresh visitor gets an empty cart
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/count", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.JSONEq(t, `{"message":"Cart count retrieved successfully","data":{"count":0}}`, w.Body.String())
}

func TestServer_CatalogIsPublic(t *testing.T) {
	s := newTestServer(nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
	})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"healthy"`)

	s = newTestServer(map[string]HealthCheck{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"unhealthy"`)
}

func TestServer_Ready(t *testing.T) {
	s := newTestServer(nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
}

func TestServer_StopBeforeStart(t *testing.T) {
	assert.NoError(t, newTestServer(nil).Stop(context.Background()))
}
