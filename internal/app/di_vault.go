package app

import (
	"fmt"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultService "github.com/allisson/credvault/internal/vault/service"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() vaultService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = vaultService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the PBKDF2 key deriver.
func (c *Container) KeyDeriver() vaultService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = vaultService.NewPBKDF2Deriver(vaultDomain.MinIterations)
	})
	return c.keyDeriver
}

// PasswordGenerator returns the secure password generator.
func (c *Container) PasswordGenerator() vaultService.PasswordGenerator {
	c.passwordGeneratorInit.Do(func() {
		c.passwordGenerator = vaultService.NewPasswordGenerator()
	})
	return c.passwordGenerator
}

// PasswordHasher returns the one-way password hasher.
func (c *Container) PasswordHasher() vaultService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = vaultService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// KMSService returns the KMS service.
func (c *Container) KMSService() vaultService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = vaultService.NewKMSService()
	})
	return c.kmsService
}

// VaultUseCase returns the vault use case.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// CredentialsLoader returns the test credentials loader.
func (c *Container) CredentialsLoader() (vaultUseCase.CredentialsLoader, error) {
	var err error
	c.credentialsLoaderInit.Do(func() {
		c.credentialsLoader, err = c.initCredentialsLoader()
		if err != nil {
			c.initErrors["credentialsLoader"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialsLoader"]; exists {
		return nil, storedErr
	}
	return c.credentialsLoader, nil
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	baseUseCase := vaultUseCase.NewVaultUseCase(
		vaultUseCase.Config{
			Algorithm:  vaultDomain.Algorithm(c.config.CipherAlgorithm),
			Iterations: c.config.KDFIterations,
			SaltSize:   c.config.SaltSize,
			IgnoreFile: c.config.IgnoreFile,
		},
		c.KeyDeriver(),
		c.AEADManager(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		return vaultUseCase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCredentialsLoader creates the credentials loader with all its dependencies.
func (c *Container) initCredentialsLoader() (vaultUseCase.CredentialsLoader, error) {
	vault, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for credentials loader: %w", err)
	}

	return vaultUseCase.NewCredentialsLoader(
		vaultUseCase.LoaderConfig{
			CredentialsFile:         c.config.CredentialsFile,
			MasterPassword:          c.config.MasterPassword,
			MasterPasswordEncrypted: c.config.MasterPasswordEncrypted,
			KMSKeyURI:               c.config.KMSKeyURI,
			Email:                   c.config.TestEmail,
			Password:                c.config.TestPassword,
			AltEmail:                c.config.TestAltEmail,
			AltPassword:             c.config.TestAltPassword,
		},
		vault,
		c.KMSService(),
		c.Logger(),
	), nil
}
