package usecase

import (
	"context"
	"time"

	"github.com/allisson/credvault/internal/metrics"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

const metricsDomain = "vault"

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	v.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Encrypt records metrics for raw payload encryption.
func (v *vaultUseCaseWithMetrics) Encrypt(ctx context.Context, data, masterPassword string) (string, error) {
	start := time.Now()
	envelope, err := v.next.Encrypt(ctx, data, masterPassword)
	v.record(ctx, "encrypt", start, err)
	return envelope, err
}

// Decrypt records metrics for raw payload decryption.
func (v *vaultUseCaseWithMetrics) Decrypt(ctx context.Context, envelope, masterPassword string) (string, error) {
	start := time.Now()
	data, err := v.next.Decrypt(ctx, envelope, masterPassword)
	v.record(ctx, "decrypt", start, err)
	return data, err
}

// CreateEncryptedCredentialsFile records metrics for vault file creation.
func (v *vaultUseCaseWithMetrics) CreateEncryptedCredentialsFile(
	ctx context.Context,
	creds *vaultDomain.Credentials,
	masterPassword, path string,
) error {
	start := time.Now()
	err := v.next.CreateEncryptedCredentialsFile(ctx, creds, masterPassword, path)
	v.record(ctx, "file_create", start, err)
	return err
}

// ReadEncryptedCredentialsFile records metrics for vault file reads.
func (v *vaultUseCaseWithMetrics) ReadEncryptedCredentialsFile(
	ctx context.Context,
	masterPassword, path string,
) (*vaultDomain.Credentials, error) {
	start := time.Now()
	creds, err := v.next.ReadEncryptedCredentialsFile(ctx, masterPassword, path)
	v.record(ctx, "file_read", start, err)
	return creds, err
}

// HasEncryptedCredentials is not instrumented; it is a stat call.
func (v *vaultUseCaseWithMetrics) HasEncryptedCredentials(path string) bool {
	return v.next.HasEncryptedCredentials(path)
}
