package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/pkg/auth"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	return r
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = perform(r, req)
	assert.Equal(t, "upstream-id", w.Body.String())
}

func TestRequestSizeLimit(t *testing.T) {
	r := newEngine(RequestSizeLimit(16))
	r.POST("/", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	w := perform(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"note":"a very long gift note"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTimeout_SetsDeadlineAndReportsExpiry(t *testing.T) {
	r := newEngine(Timeout(20 * time.Millisecond))
	r.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/fast", nil)).Code)
	assert.Equal(t, http.StatusRequestTimeout, perform(r, httptest.NewRequest(http.MethodGet, "/slow", nil)).Code)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newEngine(RateLimit(2, client, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	r := newEngine(RateLimit(1, client, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}

	r = newEngine(RateLimit(1, nil, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func sessionConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "giftflare-backend"},
		Session: config.SessionConfig{
			Secret:     "test-session-secret-at-least-32-characters",
			CookieName: "giftflare_session",
			Expiry:     time.Hour,
		},
	}
}

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	cfg := sessionConfig()
	r := newEngine(Session(auth.NewSessionManager(cfg), cfg.Session, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	first := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)
	sessionID := first.Body.String()
	require.NotEmpty(t, sessionID)

	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "giftflare_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := perform(r, req)
	assert.Equal(t, sessionID, second.Body.String())
	assert.Empty(t, second.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+first.Header().Get(SessionTokenHeader))
	assert.Equal(t, sessionID, perform(r, req).Body.String())
}

func TestSession_ReplacesInvalidToken(t *testing.T) {
	cfg := sessionConfig()
	r := newEngine(Session(auth.NewSessionManager(cfg), cfg.Session, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "giftflare_session", Value: "forged.token.value"})
	w := perform(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{Security: config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://giftflare.in", "*.giftflare.app"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type"},
	}}
	r := newEngine(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://giftflare.in")
	assert.Equal(t, "https://giftflare.in", perform(r, req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.giftflare.app")
	assert.Equal(t, "https://shop.giftflare.app", perform(r, req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evilgiftflare.app")
	assert.Empty(t, perform(r, req).Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://giftflare.in")
	assert.Equal(t, http.StatusNoContent, perform(r, req).Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestLogger_PassesThrough(t *testing.T) {
	r := newEngine(RequestID(), Logger(logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	assert.Equal(t, http.StatusTeapot, perform(r, req).Code)
}
