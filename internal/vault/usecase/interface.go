// Package usecase implements the credential vault operations on top of the cryptographic
// services: envelope encryption of arbitrary payloads, the vault file lifecycle, and loading
// test credentials with an environment fallback.
package usecase

import (
	"context"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// VaultUseCase defines the credential vault operations.
type VaultUseCase interface {
	// Encrypt seals data under masterPassword and returns the envelope text.
	Encrypt(ctx context.Context, data, masterPassword string) (string, error)

	// Decrypt opens an envelope produced by Encrypt.
	Decrypt(ctx context.Context, envelope, masterPassword string) (string, error)

	// CreateEncryptedCredentialsFile encrypts creds into the vault file at path, replacing it
	// atomically, and makes sure the file is listed in the ignore file.
	CreateEncryptedCredentialsFile(
		ctx context.Context,
		creds *vaultDomain.Credentials,
		masterPassword, path string,
	) error

	// ReadEncryptedCredentialsFile decrypts the vault file at path.
	ReadEncryptedCredentialsFile(ctx context.Context, masterPassword, path string) (*vaultDomain.Credentials, error)

	// HasEncryptedCredentials reports whether a vault file exists at path. It never fails.
	HasEncryptedCredentials(path string) bool
}

// CredentialsLoader resolves the test account for browser automation.
type CredentialsLoader interface {
	Load(ctx context.Context) (*vaultDomain.Credentials, error)

	// LoadAlternative returns the secondary test account from the environment only.
	LoadAlternative(ctx context.Context) (*vaultDomain.Credentials, error)
}

// MasterPasswordUnwrapper recovers a KMS-wrapped master password.
type MasterPasswordUnwrapper interface {
	UnwrapMasterPassword(ctx context.Context, keyURI, wrapped string) (string, error)
}
