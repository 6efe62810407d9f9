package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.rigtool.dev/rig/internal/core/ports"
)

// NodeID is the unique identifier for the tracer Graft node.
const NodeID graft.ID = "adapter.telemetry"

// TraceEnvVar enables span recording when set to a non-empty value.
const TraceEnvVar = "RIG_TRACE"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			if os.Getenv(TraceEnvVar) == "" {
				return NewNoOpTracer(), nil
			}
			Setup()
			return NewOTelTracer("rig"), nil
		},
	})
}
