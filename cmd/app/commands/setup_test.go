package commands

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultService "github.com/allisson/credvault/internal/vault/service"
)

func setupOptions(t *testing.T) SetupOptions {
	t.Helper()
	dir := t.TempDir()
	return SetupOptions{
		CredentialsFile: filepath.Join(dir, ".credentials.enc"),
		EnvFile:         filepath.Join(dir, ".env"),
		IgnoreFile:      filepath.Join(dir, ".gitignore"),
	}
}

func TestRunSetup(t *testing.T) {
	ctx := context.Background()
	kms := vaultService.NewKMSService()

	t.Run("env only", func(t *testing.T) {
		opts := setupOptions(t)
		tuple, out := testIO("1\na@b.com\nx\n")

		err := RunSetup(ctx, newTestVault(opts.IgnoreFile), kms, discardLogger(), tuple, opts)
		require.NoError(t, err)

		values, err := godotenv.Read(opts.EnvFile)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", values["TEST_EMAIL"])
		assert.Equal(t, "x", values["TEST_PASSWORD"])
		assert.NotContains(t, values, "MASTER_PASSWORD")

		_, err = os.Stat(opts.CredentialsFile)
		assert.True(t, os.IsNotExist(err))

		ignore, err := os.ReadFile(opts.IgnoreFile)
		require.NoError(t, err)
		assert.Contains(t, string(ignore), ".env\n")
		assert.Contains(t, out.String(), "Credential setup completed successfully!")
	})

	t.Run("file only", func(t *testing.T) {
		opts := setupOptions(t)
		vault := newTestVault(opts.IgnoreFile)
		tuple, out := testIO("2\na@b.com\nx\nmasterpw\n")

		require.NoError(t, RunSetup(ctx, vault, kms, discardLogger(), tuple, opts))

		creds, err := vault.ReadEncryptedCredentialsFile(ctx, "masterpw", opts.CredentialsFile)
		require.NoError(t, err)
		assert.Equal(t, &vaultDomain.Credentials{Email: "a@b.com", Password: "x"}, creds)

		_, err = os.Stat(opts.EnvFile)
		assert.True(t, os.IsNotExist(err), "master password must not be written without a KMS key")

		ignore, err := os.ReadFile(opts.IgnoreFile)
		require.NoError(t, err)
		assert.Contains(t, string(ignore), ".credentials.enc\n")
		assert.Contains(t, out.String(), "Warning: weak master password")
		assert.Contains(t, out.String(), "Set MASTER_PASSWORD when running tests")
	})

	t.Run("both with kms wrapped master password", func(t *testing.T) {
		key := make([]byte, 32)
		for i := range key {
			key[i] = byte(i + 1)
		}

		opts := setupOptions(t)
		opts.Method = SetupMethodBoth
		opts.Email = "a@b.com"
		opts.KMSKeyURI = "base64key://" + base64.URLEncoding.EncodeToString(key)
		vault := newTestVault(opts.IgnoreFile)
		tuple, out := testIO("x\nStrongMaster123\n")

		require.NoError(t, RunSetup(ctx, vault, kms, discardLogger(), tuple, opts))

		values, err := godotenv.Read(opts.EnvFile)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", values["TEST_EMAIL"])
		assert.Equal(t, opts.KMSKeyURI, values["KMS_KEY_URI"])
		assert.NotContains(t, values, "MASTER_PASSWORD")

		unwrapped, err := kms.UnwrapMasterPassword(ctx, opts.KMSKeyURI, values["MASTER_PASSWORD_ENCRYPTED"])
		require.NoError(t, err)
		assert.Equal(t, "StrongMaster123", unwrapped)

		_, err = vault.ReadEncryptedCredentialsFile(ctx, unwrapped, opts.CredentialsFile)
		require.NoError(t, err)

		ignore, err := os.ReadFile(opts.IgnoreFile)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(ignore), ".env\n"))
		assert.NotContains(t, out.String(), "Warning: weak master password")
	})

	t.Run("invalid method", func(t *testing.T) {
		opts := setupOptions(t)
		tuple, _ := testIO("7\n")

		err := RunSetup(ctx, newTestVault(""), kms, discardLogger(), tuple, opts)
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidArgument)
	})

	t.Run("missing password", func(t *testing.T) {
		opts := setupOptions(t)
		tuple, _ := testIO("env\na@b.com\n\n")

		err := RunSetup(ctx, newTestVault(""), kms, discardLogger(), tuple, opts)
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidArgument)
	})

	t.Run("invalid email", func(t *testing.T) {
		opts := setupOptions(t)
		tuple, _ := testIO("1\nnot-an-email\nx\n")

		err := RunSetup(ctx, newTestVault(""), kms, discardLogger(), tuple, opts)
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidCredentials)
	})

	t.Run("missing master password", func(t *testing.T) {
		opts := setupOptions(t)
		tuple, _ := testIO("2\na@b.com\nx\n\n")

		err := RunSetup(ctx, newTestVault(""), kms, discardLogger(), tuple, opts)
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidArgument)

		_, statErr := os.Stat(opts.CredentialsFile)
		assert.True(t, os.IsNotExist(statErr))
	})
}
