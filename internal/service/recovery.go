package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
)

// RecoveryWindow is the validity window of a recovery code.
const RecoveryWindow = 15 * time.Minute

// Recovery implements the time-boxed one-time-code password-reset flow.
type Recovery struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	mailer    model.Mailer
	logger    *logger.Logger
	now       func() time.Time
}

func NewRecovery(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	mailer model.Mailer,
	logger *logger.Logger,
) *Recovery {
	return &Recovery{
		userStore: userStore,
		hasher:    hasher,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
	}
}

// Request generates a 6-digit code for the account behind email, stores it
// with a 15-minute expiry and sends it out. The method returns nil for an
// unregistered email as well, so the response never reveals whether the
// address exists. A repeated request overwrites the previous code; only the
// latest code is valid. Mail delivery failure is logged and swallowed: the
// stored code stays valid and the response does not change.
func (r *Recovery) Request(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := r.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, err := generateRecoveryCode()
	if err != nil {
		return fmt.Errorf("failed to generate recovery code: %w", err)
	}

	expiresAt := r.now().Add(RecoveryWindow)
	if err := r.userStore.SetRecoveryCode(ctx, user.Email, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store recovery code: %w", err)
	}

	if err := r.mailer.SendRecoveryCode(ctx, user.Email, code); err != nil {
		r.logger.Error("Recovery service: failed to send recovery code",
			"error", err.Error())
	}

	return nil
}

// Confirm validates the code and rotates the password hash. The email/code
// pair must match exactly and the code must not be past its expiry. On
// success both recovery fields are cleared, so replaying the same confirm
// fails. An expired code is left in place; it is unusable either way and
// gets overwritten by the next request.
func (r *Recovery) Confirm(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	user, err := r.userStore.GetByEmailAndRecoveryCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrRecoveryCodeInvalid
		}
		return fmt.Errorf("failed to get user by email and code: %w", err)
	}

	if !user.RecoveryPending() {
		return model.ErrRecoveryCodeInvalid
	}

	if r.now().After(*user.RecoveryExpiresAt) {
		return model.ErrRecoveryCodeExpired
	}

	hash, err := r.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := r.userStore.ResetPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	r.logger.Info("Recovery service: password reset completed",
		"username", user.Username)

	return nil
}

// generateRecoveryCode draws uniformly from [100000, 999999], so the code is
// always exactly six digits.
func generateRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
