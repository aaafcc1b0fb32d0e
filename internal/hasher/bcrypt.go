// Package hasher provides one-way password hashing backed by bcrypt.
package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the input limit imposed by bcrypt.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash when the plaintext exceeds the bcrypt input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// BcryptHasher hashes and verifies passwords.
type BcryptHasher struct {
	cost int
}

// Opt configures a BcryptHasher.
type Opt func(*BcryptHasher)

// WithCost overrides the bcrypt work factor. Values outside the bcrypt range are ignored.
func WithCost(cost int) Opt {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// New creates a BcryptHasher with bcrypt.DefaultCost unless overridden.
func New(opts ...Opt) *BcryptHasher {
	h := &BcryptHasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash.
// A mismatch or a malformed hash yields false, never an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
