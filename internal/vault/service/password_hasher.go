package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// passwordHasher implements PasswordHasher with Argon2id PHC strings.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a PasswordHasher using the Moderate Argon2id policy.
func NewPasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// PolicyModerate is built in, so New only fails on a broken library.
		panic(err)
	}

	return &passwordHasher{hasher: hasher}
}

// Hash returns the PHC-encoded Argon2id hash of password.
func (p *passwordHasher) Hash(password string) (string, error) {
	hashed, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (p *passwordHasher) Verify(password, hash string) bool {
	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
