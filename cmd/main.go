package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpcontext "github.com/moveon-app/moveon-server/internal/api/http/context"
	"github.com/moveon-app/moveon-server/internal/api/http/router"
	httpServer "github.com/moveon-app/moveon-server/internal/api/http/server"
	"github.com/moveon-app/moveon-server/internal/config"
	"github.com/moveon-app/moveon-server/internal/email"
	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
	"github.com/moveon-app/moveon-server/internal/password"
	"github.com/moveon-app/moveon-server/internal/repository/postgres"
	"github.com/moveon-app/moveon-server/internal/server"
	"github.com/moveon-app/moveon-server/internal/service"
	"github.com/moveon-app/moveon-server/internal/storage/local"
	storage "github.com/moveon-app/moveon-server/internal/storage/minio"
	"github.com/moveon-app/moveon-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenManager := token.NewJWT(cfg.Auth.AppSessionSecret, cfg.Auth.AccessSecret, cfg.Auth.AccessTokenMinutes)
	hasher := password.NewBcrypt()
	ctxMgr := httpcontext.NewManager()

	photoStorage, imagesDir, err := newPhotoStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize photo storage", "error", err)
	}

	mailer, err := email.NewSMTPMailer(cfg.Email)
	if err != nil {
		logger.Fatal("failed to create mail client", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, tokenManager, cfg.Auth.AppIDSecret, logger)
	recoveryService := service.NewRecovery(userRepo, hasher, mailer, logger)
	userService := service.NewUser(userRepo, hasher, photoStorage, logger)

	r := router.New(authService, recoveryService, userService, tokenManager, ctxMgr, imagesDir, logger)
	engine, err := r.Register()
	if err != nil {
		logger.Fatal("failed to register routes", "error", err)
	}

	srv := httpServer.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newPhotoStorage builds the configured photo backend. The returned dir is
// non-empty only for local storage, where the router serves the files
// itself.
func newPhotoStorage(ctx context.Context, cfg config.Storage) (model.Storage, string, error) {
	switch cfg.Type {
	case "minio":
		minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create minio client: %w", err)
		}

		client, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize storage client: %w", err)
		}
		return client, "", nil
	case "local":
		localStorage, err := local.New(cfg.UploadDir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return localStorage, cfg.UploadDir, nil
	default:
		return nil, "", fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
