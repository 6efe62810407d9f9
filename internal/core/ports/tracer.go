package ports

import "context"

//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer is the entry point for creating spans around application operations.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
