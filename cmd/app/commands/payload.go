package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// PayloadOptions configures RunEncrypt and RunDecrypt.
//
// The payload is read from InputPath, or from the reader when InputPath is empty. A missing
// MasterPassword is prompted for, which needs the reader and therefore an InputPath.
type PayloadOptions struct {
	InputPath      string
	MasterPassword string
}

// RunEncrypt seals an arbitrary payload and prints the envelope.
func RunEncrypt(
	ctx context.Context,
	vault vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	io IOTuple,
	opts PayloadOptions,
) error {
	data, masterPassword, err := readPayload(io, opts)
	if err != nil {
		return err
	}

	envelope, err := vault.Encrypt(ctx, data, masterPassword)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(io.Writer, envelope)
	logger.Debug("payload encrypted", slog.Int("bytes", len(data)))
	return nil
}

// RunDecrypt opens an envelope and prints the payload exactly as it was encrypted.
func RunDecrypt(
	ctx context.Context,
	vault vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	io IOTuple,
	opts PayloadOptions,
) error {
	envelope, masterPassword, err := readPayload(io, opts)
	if err != nil {
		return err
	}

	data, err := vault.Decrypt(ctx, strings.TrimSpace(envelope), masterPassword)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(io.Writer, data)
	logger.Debug("payload decrypted", slog.Int("bytes", len(data)))
	return nil
}

func readPayload(tuple IOTuple, opts PayloadOptions) (payload, masterPassword string, err error) {
	masterPassword = opts.MasterPassword

	if opts.InputPath == "" {
		if masterPassword == "" {
			return "", "", fmt.Errorf(
				"%w: MASTER_PASSWORD must be set when the payload is read from stdin",
				vaultDomain.ErrInvalidArgument,
			)
		}
		content, err := io.ReadAll(tuple.Reader)
		if err != nil {
			return "", "", fmt.Errorf("failed to read payload: %w", err)
		}
		return string(content), masterPassword, nil
	}

	content, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", opts.InputPath, err)
	}

	if masterPassword == "" {
		masterPassword, err = newPrompter(tuple).secret("Enter master password: ")
		if err != nil {
			return "", "", err
		}
	}

	return string(content), masterPassword, nil
}
