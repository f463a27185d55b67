// Package hash implements secret hashing on top of bcrypt.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cypresslabs/identity-server/internal/model"
)

var _ model.Hasher = (*Bcrypt)(nil)

// Bcrypt hashes secrets with a random salt per hash.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt hasher with the default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Hash encodes the plaintext. Empty plaintext is rejected.
func (b *Bcrypt) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("plaintext must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. A malformed or
// empty stored hash reports false, never an error; the comparison itself
// is constant-time.
func (b *Bcrypt) Verify(plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
