package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
)

// AppSessionHeader carries the app-session token proving the request comes
// from the mobile client.
const AppSessionHeader = "X-App-Session"

// AppSessionVerifier validates app-session tokens.
type AppSessionVerifier interface {
	VerifyAppSessionToken(token string) error
}

// AppSession is the handshake gate: it rejects requests without a valid
// app-session token before any business logic or database lookup runs.
type AppSession struct {
	tokens AppSessionVerifier
	logger *logger.Logger
}

// NewAppSession creates a new AppSession middleware instance.
func NewAppSession(tokens AppSessionVerifier, logger *logger.Logger) *AppSession {
	return &AppSession{tokens: tokens, logger: logger}
}

// Require aborts with 403 when the token is missing, malformed, expired or
// of the wrong audience. All failures share one message by design.
func (m *AppSession) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(AppSessionHeader)
		if tokenString == "" {
			m.logger.Info("request without app session token rejected",
				"path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": model.ErrInvalidAppSession.Error(),
			})
			return
		}

		if err := m.tokens.VerifyAppSessionToken(tokenString); err != nil {
			m.logger.Info("invalid app session token rejected",
				"path", c.Request.URL.Path,
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": model.ErrInvalidAppSession.Error(),
			})
			return
		}

		c.Next()
	}
}
