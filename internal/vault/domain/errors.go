package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Vault error definitions.
//
// Each error wraps one of the standard sentinels from internal/errors, so callers can either
// match the precise failure or the broad category.
var (
	// ErrInvalidArgument indicates a caller supplied an unusable value, such as an empty master
	// password or a non-positive password length.
	ErrInvalidArgument = errors.Wrap(errors.ErrInvalidInput, "invalid argument")

	// ErrFileNotFound indicates the vault file does not exist at the given path.
	ErrFileNotFound = errors.Wrap(errors.ErrNotFound, "encrypted credentials file not found")

	// ErrMalformedEnvelope indicates the stored envelope is corrupt or truncated: bad base64,
	// bad JSON, a missing field, or a field with an impossible value.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrDecryptionFailed indicates authentication of the ciphertext failed.
	//
	// This happens with a wrong master password or when the envelope was modified. The two
	// causes are deliberately indistinguishable.
	ErrDecryptionFailed = errors.Wrap(errors.ErrUnauthorized, "failed to decrypt data - check master password")

	// ErrUnsupportedAlgorithm indicates the envelope or configuration names an unknown cipher.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedKDF indicates the envelope names an unknown key derivation function.
	ErrUnsupportedKDF = errors.Wrap(errors.ErrInvalidInput, "unsupported key derivation function")

	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidCredentials indicates a credential bundle failed validation.
	ErrInvalidCredentials = errors.Wrap(errors.ErrInvalidInput, "invalid credentials")

	// ErrCredentialsNotConfigured indicates neither the vault file nor the environment
	// provided test credentials.
	ErrCredentialsNotConfigured = errors.Wrap(errors.ErrNotFound, "test credentials not configured")
)
