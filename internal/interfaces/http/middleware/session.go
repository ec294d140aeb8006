package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/pkg/auth"
)

const (
	// SessionIDKey is the gin context key of the guest session id
	SessionIDKey = "session_id"
	// SessionTokenHeader returns a newly issued token to non-browser clients
	SessionTokenHeader = "X-Session-Token"
)

// Session resolves the guest session from the signed cookie or a bearer
// token and issues a new one when neither verifies.
func Session(manager *auth.SessionManager, cfg config.SessionConfig, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cfg.CookieName)
		}

		if token != "" {
			sessionID, err := manager.ValidateToken(token)
			if err == nil {
				c.Set(SessionIDKey, sessionID)
				c.Next()
				return
			}
			logger.WithError(err).Debug("Discarding invalid session token")
		}

		sessionID, token, err := manager.NewSession()
		if err != nil {
			logger.WithError(err).Error("Failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, token, int(cfg.Expiry.Seconds()), "/", "", cfg.Secure, true)
		c.Header(SessionTokenHeader, token)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id resolved by Session
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
