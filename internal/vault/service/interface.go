// Package service provides the cryptographic building blocks of the credential vault:
// password-based key derivation, AEAD ciphers, password generation and hashing, and KMS
// wrapping of the master password.
package service

import (
	"context"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and a fresh nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg vaultDomain.Algorithm) (AEAD, error)
}

// KeyDeriver turns a master password and salt into a symmetric key.
type KeyDeriver interface {
	// DeriveKey returns a KeySize key. The same inputs always produce the same key.
	DeriveKey(masterPassword string, salt []byte, iterations int) ([]byte, error)

	// KDF names the derivation function, as recorded in envelopes.
	KDF() vaultDomain.KDF
}

// PasswordGenerator produces random passwords.
type PasswordGenerator interface {
	Generate(length int) (string, error)
}

// PasswordHasher produces and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap the master password.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
