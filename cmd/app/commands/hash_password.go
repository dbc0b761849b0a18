package commands

import (
	"fmt"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultService "github.com/allisson/credvault/internal/vault/service"
)

// RunHashPassword prints an Argon2id hash of a password read from the prompt.
func RunHashPassword(hasher vaultService.PasswordHasher, io IOTuple) error {
	password, err := newPrompter(io).secret("Enter password to hash: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", vaultDomain.ErrInvalidArgument)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(io.Writer, hash)
	return nil
}

// RunVerifyPassword checks a prompted password against hash.
// A mismatch is returned as an error so the process exits non-zero.
func RunVerifyPassword(hasher vaultService.PasswordHasher, io IOTuple, hash string) error {
	if hash == "" {
		return fmt.Errorf("%w: hash is required", vaultDomain.ErrInvalidArgument)
	}

	password, err := newPrompter(io).secret("Enter password to verify: ")
	if err != nil {
		return err
	}

	if !hasher.Verify(password, hash) {
		return apperrors.Wrap(apperrors.ErrUnauthorized, "password does not match hash")
	}

	_, _ = fmt.Fprintln(io.Writer, "Password matches hash")
	return nil
}
