package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
)

// AccessTokenVerifier resolves an access token to the username it was
// issued for.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// Authenticate guards user-scoped routes with bearer access tokens.
type Authenticate struct {
	tokens         AccessTokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens AccessTokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokens:         tokens,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Require extracts the bearer token from the Authorization header, verifies
// it and stores the resolved username in the request context.
func (m *Authenticate) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			m.logger.Info("request without bearer token rejected",
				"path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": model.ErrInvalidAccessToken.Error(),
			})
			return
		}

		username, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			m.logger.Info("invalid access token rejected",
				"path", c.Request.URL.Path,
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": model.ErrInvalidAccessToken.Error(),
			})
			return
		}

		ctx := m.contextManager.SetUsernameToContext(c.Request.Context(), username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
