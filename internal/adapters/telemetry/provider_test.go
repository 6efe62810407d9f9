package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.rigtool.dev/rig/internal/adapters/telemetry"
)

// installRecorder wires a span recorder into the global provider and restores
// the previous provider when the test ends.
func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	recorder := installRecorder(t)
	tracer := telemetry.NewOTelTracer("rig-test")

	ctx, span := tracer.Start(context.Background(), "resolve")
	require.NotNil(t, ctx)
	span.SetAttribute("tool", "pytest")
	span.SetAttribute("candidates", 3)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "resolve", ended[0].Name())

	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.String("tool", "pytest"))
	assert.Contains(t, attrs, attribute.Int("candidates", 3))
}

func TestOTelTracer_RecordError(t *testing.T) {
	recorder := installRecorder(t)
	tracer := telemetry.NewOTelTracer("rig-test")

	_, span := tracer.Start(context.Background(), "lock")
	span.RecordError(errors.New("registry unreachable"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "registry unreachable", ended[0].Status().Description)
}

func TestOTelTracer_AttributeFallback(t *testing.T) {
	recorder := installRecorder(t)
	tracer := telemetry.NewOTelTracer("rig-test")

	_, span := tracer.Start(context.Background(), "check")
	span.SetAttribute("issues", []int{1, 2})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Contains(t, ended[0].Attributes(), attribute.String("issues", "[1 2]"))
}

func TestSetup_InstallsGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	shutdown := telemetry.Setup()
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "anything")
	assert.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
