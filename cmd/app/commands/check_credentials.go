package commands

import (
	"context"
	"fmt"

	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// RunCheckCredentials resolves the test account the way the browser tests do and prints it
// with the password masked. alternative selects the secondary account.
func RunCheckCredentials(
	ctx context.Context,
	loader vaultUseCase.CredentialsLoader,
	io IOTuple,
	alternative bool,
) error {
	load := loader.Load
	if alternative {
		load = loader.LoadAlternative
	}

	creds, err := load(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", creds.Email)
	_, _ = fmt.Fprintf(io.Writer, "Password: %s\n", creds.MaskedPassword())
	return nil
}
