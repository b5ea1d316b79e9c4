package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestParseSampler(t *testing.T) {
	tests := []struct {
		kind, arg string
		want      string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.25", "TraceIDRatioBased{0.25}"},
		{"traceidratio", "bogus", "AlwaysOnSampler"},
		{"traceidratio", "7", "AlwaysOnSampler"},
		{"parentbased_traceidratio", "0.5", "ParentBased{root:TraceIDRatioBased{0.5}"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"_"+tt.arg, func(t *testing.T) {
			assert.Contains(t, parseSampler(tt.kind, tt.arg).Description(), tt.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	shutdown, err := Init(context.Background())

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	shutdown, err := Init(context.Background())

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("OTEL_TEST_KEY", "")
	assert.Equal(t, "fallback", getEnv("OTEL_TEST_KEY", "fallback"))

	t.Setenv("OTEL_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("OTEL_TEST_KEY", "fallback"))
}
