// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/credvault/internal/validation"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// Config holds all application configuration.
type Config struct {
	// CredentialsFile is the path of the encrypted vault file.
	CredentialsFile string
	// IgnoreFile is the version-control ignore list vault and env files are added to.
	IgnoreFile string
	// EnvFile is the dotenv file setup writes test credentials to.
	EnvFile string

	// KDFIterations is the PBKDF2 iteration count for new envelopes.
	KDFIterations int
	// SaltSize is the salt length in bytes for new envelopes.
	SaltSize int
	// CipherAlgorithm is the AEAD for new envelopes ("aes-gcm" or "chacha20-poly1305").
	CipherAlgorithm string
	// PasswordLength is the default length of generated passwords.
	PasswordLength int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MasterPassword unlocks the vault file non-interactively.
	MasterPassword string
	// MasterPasswordEncrypted is MasterPassword wrapped by the KMS key at KMSKeyURI.
	MasterPasswordEncrypted string
	// KMSKeyURI is the gocloud.dev secrets URI of the key wrapping the master password.
	KMSKeyURI string

	// TestEmail and TestPassword are the environment fallback for the test account.
	TestEmail    string
	TestPassword string
	// TestAltEmail and TestAltPassword are the secondary test account.
	TestAltEmail    string
	TestAltPassword string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the prefix of every metric name.
	MetricsNamespace string
	// MetricsTextfile is where metrics are written at exit. Empty disables the export.
	MetricsTextfile string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Files
		CredentialsFile: env.GetString("CREDENTIALS_FILE", vaultDomain.DefaultCredentialsFile),
		IgnoreFile:      env.GetString("IGNORE_FILE", vaultDomain.DefaultIgnoreFile),
		EnvFile:         env.GetString("ENV_FILE", ".env"),

		// Cryptography
		KDFIterations:   env.GetInt("KDF_ITERATIONS", vaultDomain.DefaultIterations),
		SaltSize:        env.GetInt("SALT_SIZE", vaultDomain.DefaultSaltSize),
		CipherAlgorithm: env.GetString("CIPHER_ALGORITHM", string(vaultDomain.AESGCM)),
		PasswordLength:  env.GetInt("PASSWORD_LENGTH", vaultDomain.DefaultPasswordLength),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Master password
		MasterPassword:          env.GetString("MASTER_PASSWORD", ""),
		MasterPasswordEncrypted: env.GetString("MASTER_PASSWORD_ENCRYPTED", ""),
		KMSKeyURI:               env.GetString("KMS_KEY_URI", ""),

		// Test account fallback
		TestEmail:    env.GetString("TEST_EMAIL", ""),
		TestPassword: env.GetString("TEST_PASSWORD", ""),

		TestAltEmail:    env.GetString("ALT_TEST_EMAIL", ""),
		TestAltPassword: env.GetString("ALT_TEST_PASSWORD", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "credvault"),
		MetricsTextfile:  env.GetString("METRICS_TEXTFILE", ""),
	}
}

// Validate checks the configuration for values the vault cannot work with.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.CredentialsFile, validation.Required, customValidation.NotBlank),
		validation.Field(&c.EnvFile, validation.Required, customValidation.NotBlank),
		validation.Field(&c.KDFIterations,
			validation.Min(vaultDomain.MinIterations),
			validation.Max(vaultDomain.MaxIterations),
		),
		validation.Field(&c.SaltSize, validation.Min(vaultDomain.MinSaltSize)),
		validation.Field(&c.CipherAlgorithm, validation.In(
			string(vaultDomain.AESGCM),
			string(vaultDomain.ChaCha20),
		)),
		validation.Field(&c.PasswordLength, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MasterPasswordEncrypted, customValidation.Base64),
		validation.Field(&c.KMSKeyURI,
			validation.When(
				c.MasterPasswordEncrypted != "",
				validation.Required.Error("is required when MASTER_PASSWORD_ENCRYPTED is set"),
			),
			customValidation.KeeperURI,
		),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
	)
	if err != nil {
		return customValidation.WrapValidationError(fmt.Errorf("invalid configuration: %w", err))
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UpdateDotEnv sets values in the dotenv file at path, keeping the other keys.
// The file is created when missing and is always left with mode 0600.
func UpdateDotEnv(path string, values map[string]string) error {
	current := map[string]string{}

	if _, err := os.Stat(path); err == nil {
		current, err = godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	for key, value := range values {
		current[key] = value
	}

	if err := godotenv.Write(current, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict %s: %w", path, err)
	}
	return nil
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
