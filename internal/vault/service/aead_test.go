package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, vaultDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func allCiphers(t *testing.T, key []byte) map[string]AEAD {
	t.Helper()
	aesGCM, err := NewAESGCM(key)
	require.NoError(t, err)
	chacha, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)
	return map[string]AEAD{
		"aes-gcm":           aesGCM,
		"chacha20-poly1305": chacha,
	}
}

func TestAEAD_EncryptDecrypt(t *testing.T) {
	key := randomKey(t)

	for name, c := range allCiphers(t, key) {
		t.Run(name, func(t *testing.T) {
			plaintext := []byte(`{"email":"a@b.com","password":"x"}`)
			aad := []byte("aes-gcm|pbkdf2-sha256|100000|00")

			ciphertext, nonce, err := c.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.Len(t, nonce, vaultDomain.NonceSize)
			assert.NotEqual(t, plaintext, ciphertext)

			decrypted, err := c.Decrypt(ciphertext, nonce, aad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		})
	}
}

func TestAEAD_FreshNonce(t *testing.T) {
	key := randomKey(t)

	for name, c := range allCiphers(t, key) {
		t.Run(name, func(t *testing.T) {
			plaintext := []byte("same plaintext")

			ct1, nonce1, err := c.Encrypt(plaintext, nil)
			require.NoError(t, err)
			ct2, nonce2, err := c.Encrypt(plaintext, nil)
			require.NoError(t, err)

			assert.NotEqual(t, nonce1, nonce2)
			assert.NotEqual(t, ct1, ct2)
		})
	}
}

func TestAEAD_DecryptFailures(t *testing.T) {
	key := randomKey(t)
	otherKey := randomKey(t)
	others := allCiphers(t, otherKey)

	for name, c := range allCiphers(t, key) {
		t.Run(name, func(t *testing.T) {
			plaintext := []byte("secret message")
			aad := []byte("header")

			ciphertext, nonce, err := c.Encrypt(plaintext, aad)
			require.NoError(t, err)

			t.Run("wrong key", func(t *testing.T) {
				_, err := others[name].Decrypt(ciphertext, nonce, aad)
				assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
			})

			t.Run("wrong aad", func(t *testing.T) {
				_, err := c.Decrypt(ciphertext, nonce, []byte("other header"))
				assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
			})

			t.Run("flipped ciphertext byte", func(t *testing.T) {
				tampered := append([]byte(nil), ciphertext...)
				tampered[0] ^= 0x01
				_, err := c.Decrypt(tampered, nonce, aad)
				assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
			})

			t.Run("truncated ciphertext", func(t *testing.T) {
				_, err := c.Decrypt(ciphertext[:3], nonce, aad)
				assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
			})

			t.Run("short nonce does not panic", func(t *testing.T) {
				assert.NotPanics(t, func() {
					_, err := c.Decrypt(ciphertext, nonce[:4], aad)
					assert.ErrorIs(t, err, vaultDomain.ErrMalformedEnvelope)
				})
			})
		})
	}
}

func TestAEAD_Roundtrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SliceOfN(rapid.Byte(), vaultDomain.KeySize, vaultDomain.KeySize).Draw(t, "key")
		plaintext := rapid.SliceOf(rapid.Byte()).Draw(t, "plaintext")
		aad := rapid.SliceOf(rapid.Byte()).Draw(t, "aad")
		alg := rapid.SampledFrom([]vaultDomain.Algorithm{vaultDomain.AESGCM, vaultDomain.ChaCha20}).
			Draw(t, "alg")

		c, err := NewAEADManager().CreateCipher(key, alg)
		if err != nil {
			t.Fatalf("CreateCipher failed: %v", err)
		}

		ciphertext, nonce, err := c.Encrypt(plaintext, aad)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := c.Decrypt(ciphertext, nonce, aad)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if string(decrypted) != string(plaintext) {
			t.Fatalf("roundtrip failed: got %x, want %x", decrypted, plaintext)
		}
	})
}

func TestNewAESGCM_InvalidKey(t *testing.T) {
	_, err := NewAESGCM(make([]byte, 16))
	assert.ErrorIs(t, err, vaultDomain.ErrInvalidKeySize)
}

func TestNewChaCha20Poly1305_InvalidKey(t *testing.T) {
	_, err := NewChaCha20Poly1305(make([]byte, 16))
	assert.ErrorIs(t, err, vaultDomain.ErrInvalidKeySize)
}
