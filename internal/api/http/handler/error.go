package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/model"
)

// handleError maps service errors to HTTP status codes and writes the
// common error envelope. Unknown errors never leak their message.
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrAppIdentity),
		errors.Is(err, model.ErrInvalidAppSession):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrInvalidAccessToken):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, model.ErrRecoveryCodeInvalid),
		errors.Is(err, model.ErrRecoveryCodeExpired),
		errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrEmptyPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = "user not found"
	}

	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}
