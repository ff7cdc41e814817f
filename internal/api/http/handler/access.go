package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/service"
)

// AppIDHeader carries the shared application identifier on the handshake
// request.
const AppIDHeader = "X-App-ID"

// AuthService defines handshake and login operations.
type AuthService interface {
	Handshake(appID string) (string, error)
	Login(ctx context.Context, identifier, password string) (service.LoginResult, error)
}

// RecoveryService defines the two steps of password recovery.
type RecoveryService interface {
	Request(ctx context.Context, email string) error
	Confirm(ctx context.Context, email, code, newPassword string) error
}

// Access handles HTTP endpoints for handshake, login and password
// recovery.
type Access struct {
	authService     AuthService
	recoveryService RecoveryService
	logger          *logger.Logger
}

// NewAccess creates a new Access handler.
func NewAccess(authService AuthService, recoveryService RecoveryService, logger *logger.Logger) *Access {
	return &Access{
		authService:     authService,
		recoveryService: recoveryService,
		logger:          logger,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type recoveryRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type recoveryConfirmRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,strongpassword"`
}

// Handshake exchanges the shared application identifier for a short-lived
// app-session token.
func (h *Access) Handshake(c *gin.Context) {
	appID := c.GetHeader(AppIDHeader)

	token, err := h.authService.Handshake(appID)
	if err != nil {
		h.logger.Error("Access handler: handshake failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "success",
		"app_session_token": token,
	})
}

// Login authenticates by username or email and returns an access token.
func (h *Access) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.logger.Error("Access handler: login failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Access handler: login completed",
		"username", result.Username)

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"username":     result.Username,
		"access_token": result.AccessToken,
	})
}

// RequestRecovery starts password recovery. The response does not reveal
// whether the email belongs to an account.
func (h *Access) RequestRecovery(c *gin.Context) {
	var req recoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.recoveryService.Request(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("Access handler: recovery request failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "if the email is registered, a recovery code has been sent",
	})
}

// ConfirmRecovery validates the emailed code and sets the new password.
func (h *Access) ConfirmRecovery(c *gin.Context) {
	var req recoveryConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.recoveryService.Confirm(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.logger.Error("Access handler: recovery confirm failed",
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "password updated",
	})
}
