package domain

// Algorithm represents the AEAD cipher used to seal a credential envelope.
//
// Both supported algorithms authenticate the ciphertext, so a wrong master password or a
// modified envelope is reported as ErrDecryptionFailed instead of yielding garbage plaintext.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. This is the default for new vault files.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305, for hosts without AES hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KDF names the password-based key derivation function recorded in an envelope.
type KDF string

// PBKDF2SHA256 is PBKDF2 with HMAC-SHA256 as the pseudorandom function.
const PBKDF2SHA256 KDF = "pbkdf2-sha256"

const (
	// KeySize is the derived key length in bytes. Both ciphers take a 256-bit key.
	KeySize = 32

	// NonceSize is the AEAD nonce length in bytes for both ciphers.
	NonceSize = 12

	// DefaultSaltSize is the salt length generated for every encryption.
	DefaultSaltSize = 16

	// MinSaltSize is the shortest salt accepted when decoding an envelope.
	MinSaltSize = 8

	// DefaultIterations is the PBKDF2 iteration count for vault files.
	DefaultIterations = 100_000

	// MinIterations is the lowest iteration count accepted by the deriver and by envelope decoding.
	// Only tests should run this low; 1,000 rounds is far too cheap to brute force against.
	MinIterations = 1_000

	// MaxIterations caps the iteration count read from a stored envelope.
	MaxIterations = 10_000_000

	// DefaultCredentialsFile is the vault file written when no path is configured.
	DefaultCredentialsFile = ".credentials.enc"

	// DefaultIgnoreFile is the version-control ignore list updated after writing a vault file.
	DefaultIgnoreFile = ".gitignore"

	// DefaultPasswordLength is the length used by the password generator when none is given.
	DefaultPasswordLength = 16

	// PasswordCharset is the alphabet drawn from by the password generator.
	PasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)
