package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
)

// Auth implements the app handshake and the user authentication flow.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	appIDSecret  string
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	appIDSecret string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		appIDSecret:  appIDSecret,
		logger:       logger,
	}
}

// Handshake verifies the shared application identifier and issues an
// app-session token. The comparison is constant-time; a mismatch yields
// model.ErrAppIdentity and no token is ever issued for a rejected attempt.
func (a *Auth) Handshake(appID string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(appID), []byte(a.appIDSecret)) != 1 {
		return "", model.ErrAppIdentity
	}

	token, err := a.tokenManager.IssueAppSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to issue app session token: %w", err)
	}

	return token, nil
}

// LoginResult holds the outcome of a successful authentication.
type LoginResult struct {
	Username    string
	AccessToken string
}

// Login resolves the identifier (username or email) to an account and
// verifies the password. Unknown identifier and wrong password both collapse
// to model.ErrInvalidCredentials; distinguishing them would enumerate valid
// accounts.
func (a *Auth) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := a.userStore.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return LoginResult{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by identifier",
			"error", err.Error())
		return LoginResult{}, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.IssueAccessToken(user.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue access token",
			"username", user.Username,
			"error", err.Error())
		return LoginResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", user.Username)

	return LoginResult{Username: user.Username, AccessToken: accessToken}, nil
}
