package model

// PasswordHasher derives and verifies one-way password hashes. Hash salts
// every call, so hashing the same password twice yields different strings.
// Verify never errors on mismatch; it returns false.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
