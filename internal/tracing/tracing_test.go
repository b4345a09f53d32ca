package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
)

func TestSetup(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		shutdown, err := tracing.Setup(context.Background(), config.Tracing{}, "test")

		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
		_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.False(t, isSDK)
	})

	t.Run("Enabled", func(t *testing.T) {
		previous := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(previous) })

		shutdown, err := tracing.Setup(context.Background(), config.Tracing{
			Enabled:     true,
			Endpoint:    "localhost:4318",
			Insecure:    true,
			ServiceName: "storefront-test",
		}, "test")

		require.NoError(t, err)
		_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.True(t, isSDK)
		assert.NoError(t, shutdown(context.Background()))
	})
}
