package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/moveon-app/moveon-server/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements password hashing with per-call random salts.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a hasher with the default bcrypt cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Hash derives a salted one-way hash from the plaintext password. Upstream
// validation enforces a minimum length, so the empty-input error is a
// safeguard rather than an expected path.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", model.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify recomputes the hash using the salt embedded in the stored hash and
// compares in constant time. Mismatch returns false, never an error.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
