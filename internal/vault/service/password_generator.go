package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

type passwordGenerator struct {
	charset string
}

// NewPasswordGenerator creates a generator drawing uniformly from vaultDomain.PasswordCharset
// with crypto/rand.
func NewPasswordGenerator() PasswordGenerator {
	return &passwordGenerator{charset: vaultDomain.PasswordCharset}
}

// Generate returns a password of exactly length characters.
// Returns ErrInvalidArgument if length is not positive.
func (g *passwordGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: length must be positive, got %d", vaultDomain.ErrInvalidArgument, length)
	}

	password := make([]byte, length)
	charsLen := big.NewInt(int64(len(g.charset)))

	for i := range password {
		n, err := rand.Int(rand.Reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		password[i] = g.charset[n.Int64()]
	}

	return string(password), nil
}
