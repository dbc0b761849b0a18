package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens KMS keepers and uses them to wrap the master password, so that it can be
// kept in a .env file without being stored in cleartext.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI.
	// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)

	// WrapMasterPassword encrypts masterPassword with the keeper at keyURI and returns it base64 encoded.
	WrapMasterPassword(ctx context.Context, keyURI, masterPassword string) (string, error)

	// UnwrapMasterPassword reverses WrapMasterPassword.
	UnwrapMasterPassword(ctx context.Context, keyURI, wrapped string) (string, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper returns a KMSKeeper, which *secrets.Keeper implements.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

func (k *kmsService) WrapMasterPassword(ctx context.Context, keyURI, masterPassword string) (string, error) {
	if masterPassword == "" {
		return "", fmt.Errorf("%w: master password is required", vaultDomain.ErrInvalidArgument)
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, []byte(masterPassword))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt master password with KMS: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (k *kmsService) UnwrapMasterPassword(ctx context.Context, keyURI, wrapped string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return "", fmt.Errorf("%w: wrapped master password is not valid base64", vaultDomain.ErrMalformedEnvelope)
	}

	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: KMS could not unwrap master password", vaultDomain.ErrDecryptionFailed)
	}
	defer vaultDomain.Zero(plaintext)

	return string(plaintext), nil
}
