package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/moveon-app/moveon-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, real_name, email, password_hash, birth_date, gender, height, weight,
			  province, photo, visible, recovery_code, recovery_expires_at, created_at, updated_at`

// Statements the account-security invariants depend on. Kept as package
// consts so their shape is testable.
const (
	queryGetByUsernameFold = `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	querySetRecoveryCode = `UPDATE users
			  SET recovery_code = $2, recovery_expires_at = $3, updated_at = now()
			  WHERE email = $1`

	queryResetPassword = `UPDATE users
			  SET password_hash = $2, recovery_code = NULL, recovery_expires_at = NULL, updated_at = now()
			  WHERE id = $1`
)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.RealName, &user.Email, &user.PasswordHash,
		&user.BirthDate, &user.Gender, &user.Height, &user.Weight, &user.Province,
		&user.Photo, &user.Visible, &user.RecoveryCode, &user.RecoveryExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByIdentifier matches the stored lowercase email against the lowercased
// identifier, or the username exactly as registered.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, strings.ToLower(identifier), identifier))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	return user, nil
}

// GetByUsernameFold matches the username case-insensitively, backed by the
// unique index on LOWER(username).
func (r *UserRepository) GetByUsernameFold(ctx context.Context, username string) (model.User, error) {
	user, err := r.scanUser(r.db.QueryRow(ctx, queryGetByUsernameFold, username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by folded username: %w", err)
	}

	return user, nil
}

// GetByEmailAndRecoveryCode requires an exact match on the stored code.
func (r *UserRepository) GetByEmailAndRecoveryCode(ctx context.Context, email, code string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND recovery_code = $2`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, strings.ToLower(email), code))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email and recovery code: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, real_name, email, password_hash, birth_date, gender,
			  height, weight, province, photo, visible, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING ` + userColumns

	saved, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.RealName, user.Email, user.PasswordHash,
		user.BirthDate, user.Gender, user.Height, user.Weight, user.Province,
		user.Photo, user.Visible, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users
			  SET real_name = $2, email = $3, password_hash = $4, birth_date = $5, gender = $6,
			      height = $7, weight = $8, province = $9, visible = $10, updated_at = $11
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.RealName, user.Email, user.PasswordHash, user.BirthDate,
		user.Gender, user.Height, user.Weight, user.Province, user.Visible, user.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

// SetRecoveryCode writes code and expiry in one statement; concurrent
// requests for the same account resolve last-write-wins, which is the
// intended behavior since only the newest code should be valid.
func (r *UserRepository) SetRecoveryCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, querySetRecoveryCode, strings.ToLower(email), code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set recovery code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ResetPassword rotates the hash and clears both recovery fields in a single
// atomic statement, so a consumed code can never be replayed.
func (r *UserRepository) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, queryResetPassword, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePhoto(ctx context.Context, username, photo string) error {
	query := `UPDATE users SET photo = $2, updated_at = now() WHERE username = $1`

	tag, err := r.db.Exec(ctx, query, username, photo)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
