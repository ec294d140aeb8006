package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/giftflare-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "giftflare-backend"},
		Session: config.SessionConfig{
			Secret: "test-session-secret-at-least-32-characters",
			Expiry: time.Hour,
		},
	}
}

func TestSessionManager_RoundTrip(t *testing.T) {
	manager := NewSessionManager(testConfig())

	sessionID, token, err := manager.NewSession()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestSessionManager_RejectsTamperedToken(t *testing.T) {
	manager := NewSessionManager(testConfig())
	_, token, err := manager.NewSession()
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	if tampered == token {
		tampered = token[:len(token)-2] + "yy"
	}

	_, err = manager.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_RejectsOtherSecret(t *testing.T) {
	issuer := NewSessionManager(testConfig())
	_, token, err := issuer.NewSession()
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Session.Secret = "a-completely-different-secret-value!!"
	_, err = NewSessionManager(cfg).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	manager := NewSessionManager(testConfig())
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, token, err := manager.NewSession()
	require.NoError(t, err)

	manager.now = time.Now
	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_RejectsWrongTokenType(t *testing.T) {
	cfg := testConfig()
	claims := &Claims{
		SessionID: "0b9c1f7e-3a0e-4d55-9a77-0d3f0f1e2a11",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.App.Name,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Session.Secret))
	require.NoError(t, err)

	_, err = NewSessionManager(cfg).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionManager_RejectsMalformedSessionID(t *testing.T) {
	manager := NewSessionManager(testConfig())
	token, err := manager.GenerateToken("../../etc/passwd")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("Basic dXNlcg=="))
	assert.Empty(t, ExtractTokenFromHeader(""))
}
