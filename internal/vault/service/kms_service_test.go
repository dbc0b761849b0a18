package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() { assert.NoError(t, keeper.Close()) }()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}

func TestKMSService_WrapUnwrapMasterPassword(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()
	keyURI := generateLocalSecretsURI(t)

	t.Run("Success_Roundtrip", func(t *testing.T) {
		wrapped, err := kmsService.WrapMasterPassword(ctx, keyURI, "masterpw")
		require.NoError(t, err)
		assert.NotContains(t, wrapped, "masterpw")

		unwrapped, err := kmsService.UnwrapMasterPassword(ctx, keyURI, wrapped)
		require.NoError(t, err)
		assert.Equal(t, "masterpw", unwrapped)
	})

	t.Run("Error_EmptyMasterPassword", func(t *testing.T) {
		_, err := kmsService.WrapMasterPassword(ctx, keyURI, "")
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidArgument)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		wrapped, err := kmsService.WrapMasterPassword(ctx, keyURI, "masterpw")
		require.NoError(t, err)

		_, err = kmsService.UnwrapMasterPassword(ctx, generateLocalSecretsURI(t), wrapped)
		assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
	})

	t.Run("Error_NotBase64", func(t *testing.T) {
		_, err := kmsService.UnwrapMasterPassword(ctx, keyURI, "%%%")
		assert.ErrorIs(t, err, vaultDomain.ErrMalformedEnvelope)
	})
}
