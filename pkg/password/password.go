// Package password hashes and verifies vendor credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords at a fixed bcrypt cost. The produced hash embeds
// algorithm version, cost and salt, so Verify needs nothing else.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must not exceed 72 bytes", apperror.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. Mismatches and malformed hashes return false.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
