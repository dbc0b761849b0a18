package metrics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the exposition output contains a sample with the given name,
// label pattern and value. The exporter adds OTel scope labels, hence the regex.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func gatherText(t *testing.T, provider *Provider) string {
	t.Helper()
	families, err := provider.Gatherer().Gather()
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, mf := range families {
		_, err := expfmt.MetricFamilyToText(&buf, mf)
		require.NoError(t, err)
	}
	return buf.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_Record(t *testing.T) {
	provider, err := NewProvider("vault_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "vault_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "vault", "encrypt", StatusSuccess)
	bm.RecordOperation(ctx, "vault", "encrypt", StatusSuccess)
	bm.RecordOperation(ctx, "vault", "decrypt", StatusError)
	bm.RecordDuration(ctx, "vault", "encrypt", 120*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "vault", "encrypt", 80*time.Millisecond, StatusSuccess)

	output := gatherText(t, provider)

	assertBizMetricLine(
		t,
		output,
		`vault_test_operations_total`,
		`domain="vault".*operation="encrypt".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`vault_test_operations_total`,
		`domain="vault".*operation="decrypt".*status="error"`,
		`1`,
	)
	assertBizMetricLine(
		t,
		output,
		`vault_test_operation_duration_seconds_count`,
		`domain="vault".*operation="encrypt".*status="success"`,
		`2`,
	)
	assertBizMetricLine(
		t,
		output,
		`vault_test_operation_duration_seconds_bucket`,
		`domain="vault".*operation="encrypt".*status="success".*le="0.25"`,
		`2`,
	)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)
	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "vault", "encrypt", StatusSuccess)
		noOp.RecordDuration(context.Background(), "vault", "encrypt", time.Second, StatusError)
	})
}
