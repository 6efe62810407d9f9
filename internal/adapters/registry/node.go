package registry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.rigtool.dev/rig/internal/adapters/catalog"
	"go.rigtool.dev/rig/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Registry, error) {
			if path := os.Getenv(catalog.PathEnvVar); path != "" {
				return catalog.Load(path)
			}
			return NewClient()
		},
	})
}
