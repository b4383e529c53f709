// Package password hashes and verifies user passwords with bcrypt.
//
//	hasher := password.NewBcryptHasher()
//	hash, err := hasher.Hash("my-password")
//	ok := hasher.Verify("my-password", hash)
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the largest password bcrypt accepts, in bytes.
const MaxLength = 72

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 12

var (
	ErrEmptyPassword   = errors.New("password: must not be empty")
	ErrPasswordTooLong = fmt.Errorf("password: maximum length is %d bytes", MaxLength)
)

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash returns a salted hash with the cost factor embedded.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A malformed or empty
	// hash never matches.
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// BcryptOption configures the bcrypt hasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt cost parameter. Values outside
// bcrypt.MinCost..bcrypt.MaxCost are ignored.
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher creates a bcrypt-based password hasher.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Cost returns the bcrypt cost used for new hashes.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
