package telemetry

import (
	"context"

	"go.rigtool.dev/rig/internal/core/ports"
)

// NoOpTracer is a Tracer that records nothing. It is the default when
// tracing is not enabled.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (t *NoOpTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noOpSpan{}
}

type noOpSpan struct{}

func (noOpSpan) End()                     {}
func (noOpSpan) RecordError(error)        {}
func (noOpSpan) SetAttribute(string, any) {}
