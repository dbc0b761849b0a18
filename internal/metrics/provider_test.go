package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_CreateProviderWithNamespace", func(t *testing.T) {
		provider, err := NewProvider("credvault")

		require.NoError(t, err)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
		assert.NotNil(t, provider.MeterProvider())
		assert.NotNil(t, provider.Gatherer())
	})

	t.Run("Success_CreateProviderWithEmptyNamespace", func(t *testing.T) {
		provider, err := NewProvider("")

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})
}

func TestProvider_WriteTextfile(t *testing.T) {
	provider, err := NewProvider("textfile_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "textfile_test")
	require.NoError(t, err)
	bm.RecordOperation(context.Background(), "vault", "encrypt", StatusSuccess)

	path := filepath.Join(t.TempDir(), "collector", "credvault.prom")
	require.NoError(t, provider.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assertBizMetricLine(
		t,
		string(content),
		`textfile_test_operations_total`,
		`domain="vault".*operation="encrypt".*status="success"`,
		`1`,
	)
	assert.Contains(t, string(content), `service_name="textfile_test"`)

	// Rewriting replaces the file.
	bm.RecordOperation(context.Background(), "vault", "encrypt", StatusSuccess)
	require.NoError(t, provider.WriteTextfile(path))

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assertBizMetricLine(
		t,
		string(content),
		`textfile_test_operations_total`,
		`domain="vault".*operation="encrypt".*status="success"`,
		`2`,
	)
}

func TestProvider_WriteTextfile_Error(t *testing.T) {
	provider, err := NewProvider("textfile_test")
	require.NoError(t, err)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err = provider.WriteTextfile(filepath.Join(blocker, "metrics.prom"))
	assert.Error(t, err)
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider("credvault")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
