package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// Cipher is an AEAD bound to a single 32-byte key. Both supported algorithms use a 12-byte
// random nonce and append a 16-byte tag to the ciphertext. Safe for concurrent use.
type Cipher struct {
	alg  vaultDomain.Algorithm
	aead cipher.AEAD
}

var cipherConstructors = map[vaultDomain.Algorithm]func(key []byte) (cipher.AEAD, error){
	vaultDomain.AESGCM: func(key []byte) (cipher.AEAD, error) {
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		return cipher.NewGCM(block)
	},
	vaultDomain.ChaCha20: chacha20poly1305.New,
}

func newCipher(key []byte, alg vaultDomain.Algorithm) (*Cipher, error) {
	construct, ok := cipherConstructors[alg]
	if !ok {
		return nil, vaultDomain.ErrUnsupportedAlgorithm
	}
	if len(key) != vaultDomain.KeySize {
		return nil, vaultDomain.ErrInvalidKeySize
	}

	aead, err := construct(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", alg, err)
	}
	return &Cipher{alg: alg, aead: aead}, nil
}

// NewAESGCM returns an AES-256-GCM cipher.
func NewAESGCM(key []byte) (*Cipher, error) {
	return newCipher(key, vaultDomain.AESGCM)
}

// NewChaCha20Poly1305 returns a ChaCha20-Poly1305 cipher, the faster choice on hosts without
// AES instructions.
func NewChaCha20Poly1305(key []byte) (*Cipher, error) {
	return newCipher(key, vaultDomain.ChaCha20)
}

// Algorithm reports which AEAD the cipher runs.
func (c *Cipher) Algorithm() vaultDomain.Algorithm {
	return c.alg
}

// Encrypt seals plaintext under a fresh nonce. aad is authenticated but not encrypted.
func (c *Cipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return c.aead.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// Decrypt opens ciphertext with the nonce and aad used to seal it.
//
// A nonce of the wrong length yields ErrMalformedEnvelope. A wrong key, modified ciphertext or
// mismatched aad yields ErrDecryptionFailed with no plaintext.
func (c *Cipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	// Open panics on a short nonce.
	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf(
			"%w: nonce must be %d bytes, got %d",
			vaultDomain.ErrMalformedEnvelope,
			c.aead.NonceSize(),
			len(nonce),
		)
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// aeadManager builds a Cipher for the algorithm named in an envelope.
type aeadManager struct{}

// NewAEADManager returns the AEADManager used by the vault.
func NewAEADManager() AEADManager {
	return &aeadManager{}
}

// CreateCipher returns ErrUnsupportedAlgorithm for unknown names and ErrInvalidKeySize for keys
// that are not 32 bytes.
func (m *aeadManager) CreateCipher(key []byte, alg vaultDomain.Algorithm) (AEAD, error) {
	return newCipher(key, alg)
}
