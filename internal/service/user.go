package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/moveon-app/moveon-server/internal/logger"
	"github.com/moveon-app/moveon-server/internal/model"
)

// User implements registration and profile management.
type User struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	storage   model.Storage
	logger    *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	storage model.Storage,
	logger *logger.Logger,
) *User {
	return &User{
		userStore: userStore,
		hasher:    hasher,
		storage:   storage,
		logger:    logger,
	}
}

// RegisterParams holds schema-validated registration input.
type RegisterParams struct {
	Username  string
	RealName  string
	Email     string
	Password  string
	BirthDate *time.Time
	Province  string
	Visible   bool
}

// Register creates an account after duplicate checks. Username collisions
// are detected case-insensitively even though the stored casing is
// preserved; email is stored lowercased.
func (s *User) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	email := normalizeEmail(params.Email)

	if _, err := s.userStore.GetByUsernameFold(ctx, params.Username); err == nil {
		return model.User{}, model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return model.User{}, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		RealName:     params.RealName,
		Email:        email,
		PasswordHash: hash,
		BirthDate:    params.BirthDate,
		Province:     params.Province,
		Visible:      params.Visible,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.userStore.Create(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"username", saved.Username)

	return saved, nil
}

// Get returns the profile behind the token subject.
func (s *User) Get(ctx context.Context, username string) (model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateParams holds optional profile changes; nil fields are untouched.
type UpdateParams struct {
	RealName  *string
	Email     *string
	Password  *string
	BirthDate *time.Time
	Gender    *string
	Height    *int
	Weight    *float64
	Province  *string
	Visible   *bool
}

// Update applies a partial profile update. A new email is checked for
// collisions with other accounts; a new password is re-hashed.
func (s *User) Update(ctx context.Context, username string, params UpdateParams) (model.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		other, err := s.userStore.GetByEmail(ctx, email)
		if err == nil && other.Username != user.Username {
			return model.User{}, model.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = email
	}

	if params.Password != nil {
		hash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if params.RealName != nil {
		user.RealName = *params.RealName
	}
	if params.BirthDate != nil {
		user.BirthDate = params.BirthDate
	}
	if params.Gender != nil {
		user.Gender = *params.Gender
	}
	if params.Height != nil {
		user.Height = params.Height
	}
	if params.Weight != nil {
		user.Weight = params.Weight
	}
	if params.Province != nil {
		user.Province = *params.Province
	}
	if params.Visible != nil {
		user.Visible = *params.Visible
	}

	user.UpdatedAt = time.Now()

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// UpdatePhoto stores a new profile photo and replaces the account's photo
// reference. The previous photo is removed afterwards; removal failure is
// logged, not surfaced, since the account already points at the new photo.
func (s *User) UpdatePhoto(ctx context.Context, username, ext, contentType string, reader io.Reader, size int64) (string, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	name := fmt.Sprintf("%s_%d%s", username, time.Now().Unix(), ext)
	ref, err := s.storage.Save(ctx, name, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	if err := s.userStore.UpdatePhoto(ctx, username, ref); err != nil {
		return "", fmt.Errorf("failed to update photo reference: %w", err)
	}

	if user.Photo != "" && user.Photo != ref {
		if err := s.storage.Remove(ctx, user.Photo); err != nil {
			s.logger.Error("User service: failed to remove old photo",
				"username", username,
				"error", err.Error())
		}
	}

	return ref, nil
}

// Delete removes the account and its stored photo.
func (s *User) Delete(ctx context.Context, username string) error {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Photo != "" {
		if err := s.storage.Remove(ctx, user.Photo); err != nil {
			s.logger.Error("User service: failed to remove photo",
				"username", username,
				"error", err.Error())
		}
	}

	if err := s.userStore.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: account deleted",
		"username", username)

	return nil
}
