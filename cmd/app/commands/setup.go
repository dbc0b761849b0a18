package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/allisson/credvault/internal/config"
	customValidation "github.com/allisson/credvault/internal/validation"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultService "github.com/allisson/credvault/internal/vault/service"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// Setup methods.
const (
	SetupMethodEnv  = "env"
	SetupMethodFile = "file"
	SetupMethodBoth = "both"
)

// masterPasswordPolicy is advisory: setup warns about weak master passwords but accepts them.
var masterPasswordPolicy = customValidation.PasswordStrength{
	MinLength:     12,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

// SetupOptions configures RunSetup. Empty Method and Email are prompted for.
type SetupOptions struct {
	Method          string
	Email           string
	CredentialsFile string
	EnvFile         string
	IgnoreFile      string
	KMSKeyURI       string
}

// RunSetup interactively stores the test account in the .env file, an encrypted vault file,
// or both.
//
// The master password is never written in cleartext. When KMSKeyURI is set it is wrapped by the
// KMS key and stored as MASTER_PASSWORD_ENCRYPTED; otherwise it must be supplied at test time
// through MASTER_PASSWORD.
func RunSetup(
	ctx context.Context,
	vault vaultUseCase.VaultUseCase,
	kmsService vaultService.KMSService,
	logger *slog.Logger,
	io IOTuple,
	opts SetupOptions,
) error {
	p := newPrompter(io)
	w := io.Writer

	_, _ = fmt.Fprintln(w, "Credential Setup Utility")
	_, _ = fmt.Fprintln(w, "========================")
	_, _ = fmt.Fprintln(w, "This tool helps you securely configure test credentials.")
	_, _ = fmt.Fprintln(w)

	method, err := resolveSetupMethod(p, opts.Method)
	if err != nil {
		return err
	}

	email := opts.Email
	if email == "" {
		email, err = p.line("Enter your account email: ")
		if err != nil {
			return err
		}
	}
	password, err := p.secret("Enter your account password/app password: ")
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", vaultDomain.ErrInvalidArgument)
	}

	creds := &vaultDomain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return err
	}

	if method == SetupMethodEnv || method == SetupMethodBoth {
		if err := config.UpdateDotEnv(opts.EnvFile, map[string]string{
			"TEST_EMAIL":    creds.Email,
			"TEST_PASSWORD": creds.Password,
		}); err != nil {
			return err
		}
		if err := ignoreEnvFile(opts); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Updated %s with credentials\n", opts.EnvFile)
		logger.Info("test credentials written to env file", slog.String("path", opts.EnvFile))
	}

	if method == SetupMethodFile || method == SetupMethodBoth {
		if err := setupVaultFile(ctx, vault, kmsService, p, w, creds, opts); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Security recommendations:")
	_, _ = fmt.Fprintf(w, "  - Keep %s and %s out of version control\n", opts.EnvFile, opts.CredentialsFile)
	_, _ = fmt.Fprintln(w, "  - Use an app password instead of your main account password")
	_, _ = fmt.Fprintln(w, "  - Keep a backup of the credentials in a secure location")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Credential setup completed successfully!")

	return nil
}

func setupVaultFile(
	ctx context.Context,
	vault vaultUseCase.VaultUseCase,
	kmsService vaultService.KMSService,
	p *prompter,
	w io.Writer,
	creds *vaultDomain.Credentials,
	opts SetupOptions,
) error {
	masterPassword, err := p.secret("Enter master password for encryption: ")
	if err != nil {
		return err
	}
	if masterPassword == "" {
		return fmt.Errorf("%w: master password is required for encryption", vaultDomain.ErrInvalidArgument)
	}
	if err := masterPasswordPolicy.Validate(masterPassword); err != nil {
		_, _ = fmt.Fprintf(w, "Warning: weak master password (%v)\n", err)
	}

	if err := vault.CreateEncryptedCredentialsFile(ctx, creds, masterPassword, opts.CredentialsFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Encrypted credentials file created: %s\n", opts.CredentialsFile)

	if opts.KMSKeyURI == "" {
		_, _ = fmt.Fprintln(w, "The master password was not stored. Set MASTER_PASSWORD when running tests.")
		return nil
	}

	wrapped, err := kmsService.WrapMasterPassword(ctx, opts.KMSKeyURI, masterPassword)
	if err != nil {
		return err
	}
	if err := config.UpdateDotEnv(opts.EnvFile, map[string]string{
		"MASTER_PASSWORD_ENCRYPTED": wrapped,
		"KMS_KEY_URI":               opts.KMSKeyURI,
	}); err != nil {
		return err
	}
	if err := ignoreEnvFile(opts); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Stored the KMS-wrapped master password in %s\n", opts.EnvFile)

	return nil
}

func resolveSetupMethod(p *prompter, method string) (string, error) {
	if method == "" {
		_, _ = fmt.Fprintln(p.writer, "Choose setup method:")
		_, _ = fmt.Fprintln(p.writer, "1. Environment variables (.env file)")
		_, _ = fmt.Fprintln(p.writer, "2. Encrypted credentials file")
		_, _ = fmt.Fprintln(p.writer, "3. Both (recommended)")

		choice, err := p.line("Enter your choice (1-3): ")
		if err != nil {
			return "", err
		}
		method = choice
	}

	switch strings.ToLower(method) {
	case "1", SetupMethodEnv:
		return SetupMethodEnv, nil
	case "2", SetupMethodFile:
		return SetupMethodFile, nil
	case "3", SetupMethodBoth:
		return SetupMethodBoth, nil
	default:
		return "", fmt.Errorf(
			"%w: invalid setup method %q (valid options: 1/env, 2/file, 3/both)",
			vaultDomain.ErrInvalidArgument,
			method,
		)
	}
}

func ignoreEnvFile(opts SetupOptions) error {
	if opts.IgnoreFile == "" {
		return nil
	}
	_, err := vaultUseCase.EnsureIgnored(opts.IgnoreFile, filepath.Base(opts.EnvFile), "Environment variables")
	return err
}
