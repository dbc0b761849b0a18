package usecase

import (
	"context"
	"fmt"
	"log/slog"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// LoaderConfig lists the sources the credentials loader may draw from.
type LoaderConfig struct {
	// CredentialsFile is the vault file path.
	CredentialsFile string
	// MasterPassword is the cleartext master password, if provided.
	MasterPassword string
	// MasterPasswordEncrypted is the KMS-wrapped master password, if provided.
	MasterPasswordEncrypted string
	// KMSKeyURI is the keeper used to unwrap MasterPasswordEncrypted.
	KMSKeyURI string
	// Email and Password are the environment fallback (TEST_EMAIL, TEST_PASSWORD).
	Email    string
	Password string
	// AltEmail and AltPassword are the secondary account (ALT_TEST_EMAIL, ALT_TEST_PASSWORD).
	AltEmail    string
	AltPassword string
}

type credentialsLoader struct {
	cfg       LoaderConfig
	vault     VaultUseCase
	unwrapper MasterPasswordUnwrapper
	logger    *slog.Logger
}

// NewCredentialsLoader creates a CredentialsLoader. unwrapper may be nil when no KMS is used.
func NewCredentialsLoader(
	cfg LoaderConfig,
	vault VaultUseCase,
	unwrapper MasterPasswordUnwrapper,
	logger *slog.Logger,
) CredentialsLoader {
	return &credentialsLoader{
		cfg:       cfg,
		vault:     vault,
		unwrapper: unwrapper,
		logger:    logger,
	}
}

// Load returns the test account.
//
// The vault file wins when it exists and a master password is available. A vault file that
// cannot be opened is an error, not a reason to fall back: a wrong master password should be
// noticed. Otherwise the environment credentials are used. Either way the result is validated.
func (l *credentialsLoader) Load(ctx context.Context) (*vaultDomain.Credentials, error) {
	if l.vault.HasEncryptedCredentials(l.cfg.CredentialsFile) {
		masterPassword, err := l.masterPassword(ctx)
		if err != nil {
			return nil, err
		}

		if masterPassword != "" {
			creds, err := l.vault.ReadEncryptedCredentialsFile(ctx, masterPassword, l.cfg.CredentialsFile)
			if err != nil {
				return nil, err
			}
			if err := creds.Validate(); err != nil {
				return nil, err
			}
			l.logger.Debug("loaded credentials from vault file", slog.String("path", l.cfg.CredentialsFile))
			return creds, nil
		}

		l.logger.Debug(
			"vault file present but no master password configured, using environment",
			slog.String("path", l.cfg.CredentialsFile),
		)
	}

	creds, err := envCredentials(l.cfg.Email, l.cfg.Password)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded credentials from environment")
	return creds, nil
}

// LoadAlternative returns the secondary account used by multi-account scenarios. It never reads
// the vault file and has no built-in default.
func (l *credentialsLoader) LoadAlternative(ctx context.Context) (*vaultDomain.Credentials, error) {
	creds, err := envCredentials(l.cfg.AltEmail, l.cfg.AltPassword)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded alternative credentials from environment")
	return creds, nil
}

func envCredentials(email, password string) (*vaultDomain.Credentials, error) {
	if email == "" && password == "" {
		return nil, vaultDomain.ErrCredentialsNotConfigured
	}

	creds := &vaultDomain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}

func (l *credentialsLoader) masterPassword(ctx context.Context) (string, error) {
	if l.cfg.MasterPassword != "" {
		return l.cfg.MasterPassword, nil
	}
	if l.cfg.MasterPasswordEncrypted == "" {
		return "", nil
	}
	if l.cfg.KMSKeyURI == "" || l.unwrapper == nil {
		return "", fmt.Errorf(
			"%w: MASTER_PASSWORD_ENCRYPTED is set but KMS_KEY_URI is not",
			vaultDomain.ErrInvalidArgument,
		)
	}
	return l.unwrapper.UnwrapMasterPassword(ctx, l.cfg.KMSKeyURI, l.cfg.MasterPasswordEncrypted)
}
