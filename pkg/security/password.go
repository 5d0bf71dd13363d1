package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

// PasswordHasher provides interface for password operations
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new password hasher using bcrypt
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.InvalidInput("password must not be empty")
	}
	if len(password) > MaxPasswordBytes {
		return "", errors.InvalidInput(fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
