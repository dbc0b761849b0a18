package service

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PBKDF2Deriver derives vault keys with PBKDF2-HMAC-SHA256.
//
// The iteration count is passed per call so that an envelope written with one setting can be
// opened after the configured default changes. Counts below MinIterations are refused.
type PBKDF2Deriver struct {
	minIterations int
}

// NewPBKDF2Deriver creates a deriver that refuses iteration counts below minIterations.
// A minIterations below vaultDomain.MinIterations is raised to it.
func NewPBKDF2Deriver(minIterations int) *PBKDF2Deriver {
	if minIterations < vaultDomain.MinIterations {
		minIterations = vaultDomain.MinIterations
	}
	return &PBKDF2Deriver{minIterations: minIterations}
}

// DeriveKey returns a 32-byte key for masterPassword and salt.
func (d *PBKDF2Deriver) DeriveKey(masterPassword string, salt []byte, iterations int) ([]byte, error) {
	if masterPassword == "" {
		return nil, fmt.Errorf("%w: master password is required", vaultDomain.ErrInvalidArgument)
	}
	if len(salt) < vaultDomain.MinSaltSize {
		return nil, fmt.Errorf(
			"%w: salt must be at least %d bytes",
			vaultDomain.ErrInvalidArgument,
			vaultDomain.MinSaltSize,
		)
	}
	if iterations < d.minIterations {
		return nil, fmt.Errorf(
			"%w: iterations must be at least %d, got %d",
			vaultDomain.ErrInvalidArgument,
			d.minIterations,
			iterations,
		)
	}

	return pbkdf2.Key([]byte(masterPassword), salt, iterations, vaultDomain.KeySize, sha256.New), nil
}

// KDF implements KeyDeriver.
func (d *PBKDF2Deriver) KDF() vaultDomain.KDF {
	return vaultDomain.PBKDF2SHA256
}
