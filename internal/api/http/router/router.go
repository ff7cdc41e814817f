package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moveon-app/moveon-server/internal/api/http/handler"
	"github.com/moveon-app/moveon-server/internal/api/http/middleware"
	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/service"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService     *service.Auth
	recoveryService *service.Recovery
	userService     *service.User
	tokenManager    model.TokenManager
	contextManager  model.ContextManager
	imagesDir       string
	logger          *logger.Logger
}

// New creates a new Router instance. imagesDir may be empty when photos are
// kept in object storage; the images route is only mounted for local files.
func New(
	authService *service.Auth,
	recoveryService *service.Recovery,
	userService *service.User,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	imagesDir string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		recoveryService: recoveryService,
		userService:     userService,
		tokenManager:    tokenManager,
		contextManager:  contextManager,
		imagesDir:       imagesDir,
		logger:          logger,
	}
}

// Register builds the engine with all routes and middleware.
func (r *Router) Register() (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	logging := middleware.NewLogging(r.logger)
	appSession := middleware.NewAppSession(r.tokenManager, r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	accessHandler := handler.NewAccess(r.authService, r.recoveryService, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/handshake", accessHandler.Handshake)

	if r.imagesDir != "" {
		engine.Static("/images", r.imagesDir)
	}

	session := engine.Group("/", appSession.Require())
	session.POST("/register", userHandler.Register)
	session.POST("/login", accessHandler.Login)
	session.POST("/password/request", accessHandler.RequestRecovery)
	session.POST("/password/confirm", accessHandler.ConfirmRecovery)

	profile := session.Group("/profile", authenticate.Require())
	profile.GET("", userHandler.Profile)
	profile.PATCH("", userHandler.UpdateProfile)
	profile.DELETE("", userHandler.DeleteProfile)
	profile.POST("/photo", userHandler.UploadPhoto)

	return engine, nil
}
