package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/service"
)

// maxPhotoSize is the upload limit for profile photos.
const maxPhotoSize = 2 << 20

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = "2006-01-02"

// UserService defines account and profile operations.
type UserService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Get(ctx context.Context, username string) (model.User, error)
	Update(ctx context.Context, username string, params service.UpdateParams) (model.User, error)
	UpdatePhoto(ctx context.Context, username, ext, contentType string, reader io.Reader, size int64) (string, error)
	Delete(ctx context.Context, username string) error
}

// User handles HTTP endpoints for registration and profile management.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=5,alphanum"`
	RealName  string `json:"real_name" binding:"omitempty,min=3,realname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
	BirthDate string `json:"birth_date" binding:"omitempty"`
	Province  string `json:"province" binding:"omitempty"`
	Visible   bool   `json:"visible"`
}

type updateRequest struct {
	RealName  *string  `json:"real_name" binding:"omitempty,min=3,realname"`
	Email     *string  `json:"email" binding:"omitempty,email"`
	Password  *string  `json:"password" binding:"omitempty,strongpassword"`
	BirthDate *string  `json:"birth_date" binding:"omitempty"`
	Gender    *string  `json:"gender" binding:"omitempty"`
	Height    *int     `json:"height" binding:"omitempty,gte=50,lte=300"`
	Weight    *float64 `json:"weight" binding:"omitempty,gte=20,lte=300"`
	Province  *string  `json:"province" binding:"omitempty"`
	Visible   *bool    `json:"visible"`
}

type profileResponse struct {
	Username  string   `json:"username"`
	RealName  string   `json:"real_name,omitempty"`
	Email     string   `json:"email"`
	BirthDate string   `json:"birth_date,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Height    *int     `json:"height,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Province  string   `json:"province,omitempty"`
	Photo     string   `json:"photo,omitempty"`
	Visible   bool     `json:"visible"`
	CreatedAt string   `json:"created_at"`
}

// Register creates a new account.
func (h *User) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	birthDate, ok := parseBirthDate(c, req.BirthDate)
	if !ok {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterParams{
		Username:  req.Username,
		RealName:  req.RealName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
		Province:  req.Province,
		Visible:   req.Visible,
	})
	if err != nil {
		h.logger.Error("User handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("User handler: registration completed",
		"username", user.Username)

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"username": user.Username,
	})
}

// Profile returns the authenticated user's profile.
func (h *User) Profile(c *gin.Context) {
	username, ok := h.usernameFromRequest(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), username)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.profilePayload(c, user))
}

// UpdateProfile applies a partial profile update.
func (h *User) UpdateProfile(c *gin.Context) {
	username, ok := h.usernameFromRequest(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	params := service.UpdateParams{
		RealName: req.RealName,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Height:   req.Height,
		Weight:   req.Weight,
		Province: req.Province,
		Visible:  req.Visible,
	}

	if req.BirthDate != nil {
		birthDate, ok := parseBirthDate(c, *req.BirthDate)
		if !ok {
			return
		}
		params.BirthDate = birthDate
	}

	user, err := h.userService.Update(c.Request.Context(), username, params)
	if err != nil {
		h.logger.Error("User handler: profile update failed",
			"username", username,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.profilePayload(c, user))
}

// UploadPhoto stores a new profile photo and replaces the previous one.
func (h *User) UploadPhoto(c *gin.Context) {
	username, ok := h.usernameFromRequest(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "photo file is required",
		})
		return
	}

	if fileHeader.Size > maxPhotoSize {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "photo must be at most 2 MiB",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedPhotoType(ext, contentType) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "photo must be a jpeg or png image",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, fmt.Errorf("failed to open uploaded photo: %w", err))
		return
	}
	defer file.Close()

	ref, err := h.userService.UpdatePhoto(c.Request.Context(), username, ext, contentType, file, fileHeader.Size)
	if err != nil {
		h.logger.Error("User handler: photo upload failed",
			"username", username,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"photo":  photoURL(c, ref),
	})
}

// DeleteProfile removes the authenticated user's account.
func (h *User) DeleteProfile(c *gin.Context) {
	username, ok := h.usernameFromRequest(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		h.logger.Error("User handler: account deletion failed",
			"username", username,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("User handler: account deleted",
		"username", username)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "account deleted",
	})
}

func (h *User) usernameFromRequest(c *gin.Context) (string, bool) {
	username, ok := h.contextManager.GetUsernameFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrInvalidAccessToken)
		return "", false
	}
	return username, true
}

func (h *User) profilePayload(c *gin.Context, user model.User) profileResponse {
	resp := profileResponse{
		Username:  user.Username,
		RealName:  user.RealName,
		Email:     user.Email,
		Gender:    user.Gender,
		Height:    user.Height,
		Weight:    user.Weight,
		Province:  user.Province,
		Visible:   user.Visible,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.BirthDate != nil {
		resp.BirthDate = user.BirthDate.Format(birthDateLayout)
	}
	if user.Photo != "" {
		resp.Photo = photoURL(c, user.Photo)
	}

	return resp
}

// minAccountAgeYears is the youngest age an account may declare.
const minAccountAgeYears = 13

// parseBirthDate converts the wire date and writes the 400 itself on a bad
// value. An empty string is a valid absence. Future dates and ages under
// the minimum are rejected.
func parseBirthDate(c *gin.Context, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	birthDate, err := time.Parse(birthDateLayout, value)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "birth_date must use the YYYY-MM-DD format",
		})
		return nil, false
	}

	now := time.Now()
	if birthDate.After(now) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "birth_date cannot be in the future",
		})
		return nil, false
	}
	if birthDate.After(now.AddDate(-minAccountAgeYears, 0, 0)) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("you must be at least %d years old", minAccountAgeYears),
		})
		return nil, false
	}

	return &birthDate, true
}

func allowedPhotoType(ext, contentType string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return false
	}

	switch contentType {
	case "image/jpeg", "image/png":
		return true
	}
	return false
}

// photoURL turns a stored photo reference into a URL the client can fetch.
// Object-storage refs are already absolute; local refs are served from the
// images route on this host.
func photoURL(c *gin.Context, ref string) string {
	if strings.Contains(ref, "://") {
		return ref
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/images/%s", scheme, c.Request.Host, ref)
}
