package usecase

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultService "github.com/allisson/credvault/internal/vault/service"
)

// Config holds the tunables of the vault. Zero values fall back to the production defaults.
type Config struct {
	// Algorithm is the AEAD used for new envelopes.
	Algorithm vaultDomain.Algorithm
	// Iterations is the PBKDF2 iteration count for new envelopes.
	Iterations int
	// SaltSize is the length of the random salt for new envelopes.
	SaltSize int
	// IgnoreFile is the version-control ignore list that vault file names are added to.
	// Empty disables the update.
	IgnoreFile string
}

func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = vaultDomain.AESGCM
	}
	if c.Iterations == 0 {
		c.Iterations = vaultDomain.DefaultIterations
	}
	if c.SaltSize == 0 {
		c.SaltSize = vaultDomain.DefaultSaltSize
	}
	return c
}

type vaultUseCase struct {
	cfg         Config
	deriver     vaultService.KeyDeriver
	aeadManager vaultService.AEADManager
	logger      *slog.Logger
}

// NewVaultUseCase creates a VaultUseCase.
func NewVaultUseCase(
	cfg Config,
	deriver vaultService.KeyDeriver,
	aeadManager vaultService.AEADManager,
	logger *slog.Logger,
) VaultUseCase {
	return &vaultUseCase{
		cfg:         cfg.withDefaults(),
		deriver:     deriver,
		aeadManager: aeadManager,
		logger:      logger,
	}
}

// Encrypt derives a key from masterPassword and a fresh salt, seals data with a fresh nonce,
// and returns the encoded envelope. The key is zeroed before returning.
func (v *vaultUseCase) Encrypt(ctx context.Context, data, masterPassword string) (string, error) {
	if masterPassword == "" {
		return "", fmt.Errorf("%w: master password is required", vaultDomain.ErrInvalidArgument)
	}
	if v.cfg.SaltSize < vaultDomain.MinSaltSize {
		return "", fmt.Errorf(
			"%w: salt size must be at least %d bytes",
			vaultDomain.ErrInvalidArgument,
			vaultDomain.MinSaltSize,
		)
	}

	if v.cfg.Iterations > vaultDomain.MaxIterations {
		return "", fmt.Errorf(
			"%w: iterations must be at most %d",
			vaultDomain.ErrInvalidArgument,
			vaultDomain.MaxIterations,
		)
	}

	salt := make([]byte, v.cfg.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	env := &vaultDomain.Envelope{
		Algorithm:  v.cfg.Algorithm,
		KDF:        v.deriver.KDF(),
		Iterations: v.cfg.Iterations,
		Salt:       salt,
	}

	key, err := v.deriver.DeriveKey(masterPassword, salt, env.Iterations)
	if err != nil {
		return "", err
	}
	defer vaultDomain.Zero(key)

	aead, err := v.aeadManager.CreateCipher(key, env.Algorithm)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := aead.Encrypt([]byte(data), env.AAD())
	if err != nil {
		return "", fmt.Errorf("failed to encrypt data: %w", err)
	}
	env.IV = nonce
	env.Ciphertext = ciphertext

	return env.Encode()
}

// Decrypt parses the envelope, re-derives the key with the recorded parameters and opens it.
func (v *vaultUseCase) Decrypt(ctx context.Context, envelope, masterPassword string) (string, error) {
	if masterPassword == "" {
		return "", fmt.Errorf("%w: master password is required", vaultDomain.ErrInvalidArgument)
	}

	env, err := vaultDomain.DecodeEnvelope(envelope)
	if err != nil {
		return "", err
	}
	if env.KDF != v.deriver.KDF() {
		return "", fmt.Errorf("%w: %s", vaultDomain.ErrUnsupportedKDF, env.KDF)
	}

	key, err := v.deriver.DeriveKey(masterPassword, env.Salt, env.Iterations)
	if err != nil {
		return "", err
	}
	defer vaultDomain.Zero(key)

	aead, err := v.aeadManager.CreateCipher(key, env.Algorithm)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Decrypt(env.Ciphertext, env.IV, env.AAD())
	if err != nil {
		return "", err
	}
	defer vaultDomain.Zero(plaintext)

	return string(plaintext), nil
}

func (v *vaultUseCase) CreateEncryptedCredentialsFile(
	ctx context.Context,
	creds *vaultDomain.Credentials,
	masterPassword, path string,
) error {
	if creds == nil {
		return fmt.Errorf("%w: credentials are required", vaultDomain.ErrInvalidArgument)
	}
	if err := creds.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = vaultDomain.DefaultCredentialsFile
	}

	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	defer vaultDomain.Zero(payload)

	envelope, err := v.Encrypt(ctx, string(payload), masterPassword)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, []byte(envelope)); err != nil {
		return fmt.Errorf("failed to create encrypted credentials file: %w", err)
	}

	v.logger.Info("encrypted credentials file created", slog.String("path", path))

	if v.cfg.IgnoreFile == "" {
		return nil
	}

	added, err := EnsureIgnored(v.cfg.IgnoreFile, filepath.Base(path), "Encrypted credentials")
	if err != nil {
		return err
	}
	if added {
		v.logger.Info(
			"added vault file to ignore list",
			slog.String("ignore_file", v.cfg.IgnoreFile),
			slog.String("entry", filepath.Base(path)),
		)
	}

	return nil
}

func (v *vaultUseCase) ReadEncryptedCredentialsFile(
	ctx context.Context,
	masterPassword, path string,
) (*vaultDomain.Credentials, error) {
	if path == "" {
		path = vaultDomain.DefaultCredentialsFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", vaultDomain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read encrypted credentials file: %w", err)
	}

	plaintext, err := v.Decrypt(ctx, string(content), masterPassword)
	if err != nil {
		v.logger.Warn(
			"failed to read encrypted credentials file",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, err
	}

	var creds vaultDomain.Credentials
	if err := json.Unmarshal([]byte(plaintext), &creds); err != nil {
		return nil, fmt.Errorf("%w: decrypted payload is not a credential bundle", vaultDomain.ErrMalformedEnvelope)
	}

	return &creds, nil
}

func (v *vaultUseCase) HasEncryptedCredentials(path string) bool {
	if path == "" {
		path = vaultDomain.DefaultCredentialsFile
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
