package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// DefaultViewAttempts is how many master passwords view accepts before giving up.
const DefaultViewAttempts = 3

// NewViewLimiter paces master password attempts to one per second.
func NewViewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 1)
}

// RunView decrypts the vault file and prints the email and a masked password.
// A wrong master password is re-prompted up to attempts times, paced by limiter.
func RunView(
	ctx context.Context,
	vault vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	io IOTuple,
	path string,
	attempts int,
	limiter *rate.Limiter,
) error {
	w := io.Writer

	_, _ = fmt.Fprintln(w, "View Current Credentials")
	_, _ = fmt.Fprintln(w, "========================")

	if !vault.HasEncryptedCredentials(path) {
		return fmt.Errorf("%w: %s (run setup first)", vaultDomain.ErrFileNotFound, path)
	}
	if attempts <= 0 {
		attempts = DefaultViewAttempts
	}

	p := newPrompter(io)

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		masterPassword, err := p.secret("Enter master password: ")
		if err != nil {
			return err
		}

		creds, err := vault.ReadEncryptedCredentialsFile(ctx, masterPassword, path)
		if err == nil {
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "Current credentials:")
			_, _ = fmt.Fprintf(w, "Email: %s\n", creds.Email)
			_, _ = fmt.Fprintf(w, "Password: %s\n", creds.MaskedPassword())
			return nil
		}

		if !apperrors.Is(err, vaultDomain.ErrDecryptionFailed) && !apperrors.Is(err, vaultDomain.ErrInvalidArgument) {
			return err
		}

		logger.Warn("master password rejected", slog.Int("attempt", attempt))
		if remaining := attempts - attempt; remaining > 0 {
			_, _ = fmt.Fprintf(w, "Failed to read credentials: %v (%d attempts left)\n", err, remaining)
		}
	}

	return fmt.Errorf("%w: too many failed attempts", vaultDomain.ErrDecryptionFailed)
}
