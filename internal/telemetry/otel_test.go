package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupProvider_NoEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := SetupProvider(context.Background(), Config{ServiceName: "serology"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	assert.Same(t, before, otel.GetTracerProvider())
}

func TestSetupProvider_InstallsSDKProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := SetupProvider(context.Background(), Config{
		ServiceName: "serology",
		Endpoint:    "localhost:4317",
		Insecure:    true,
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "global provider should be the SDK provider")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

func TestNewTracerProvider_CarriesServiceResource(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp, err := NewTracerProvider(context.Background(), Config{ServiceName: "serology", ServiceVersion: "1.2.3"},
		sdktrace.WithSpanProcessor(rec))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "walk")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	attrs := map[string]string{}
	for _, kv := range spans[0].Resource().Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "serology", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}
