// internal/pkg/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/giftflare-backend/internal/config"
)

// TokenTypeSession marks guest session tokens
const TokenTypeSession = "session"

// ErrInvalidSession is returned for tokens that fail verification
var ErrInvalidSession = errors.New("invalid session token")

// Claims represents the session token claims
type Claims struct {
	SessionID string `json:"session_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed guest session tokens
type SessionManager struct {
	secret []byte
	issuer string
	expiry time.Duration
	now    func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret: []byte(cfg.Session.Secret),
		issuer: cfg.App.Name,
		expiry: cfg.Session.Expiry,
		now:    time.Now,
	}
}

// NewSession generates a fresh session id and its token
func (m *SessionManager) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = m.GenerateToken(sessionID)
	return sessionID, token, err
}

// GenerateToken signs a token for an existing session id
func (m *SessionManager) GenerateToken(sessionID string) (string, error) {
	now := m.now().UTC()

	claims := &Claims{
		SessionID: sessionID,
		TokenType: TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   "session:" + sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies a token and returns its session id
func (m *SessionManager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidSession
	}
	if claims.TokenType != TokenTypeSession {
		return "", fmt.Errorf("%w: unexpected token type %q", ErrInvalidSession, claims.TokenType)
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return "", fmt.Errorf("%w: malformed session id", ErrInvalidSession)
	}

	return claims.SessionID, nil
}

// ExtractTokenFromHeader extracts the token from an Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
