package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.rigtool.dev/rig/internal/adapters/lockstore"
	"go.rigtool.dev/rig/internal/adapters/logger"
	"go.rigtool.dev/rig/internal/adapters/manifest"
	"go.rigtool.dev/rig/internal/adapters/registry"
	"go.rigtool.dev/rig/internal/adapters/telemetry"
	"go.rigtool.dev/rig/internal/adapters/watcher"
	"go.rigtool.dev/rig/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the App Graft node.
	NodeID graft.ID = "app"
	// ComponentsNodeID is the unique identifier for the Components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the fully wired application with the shared logger so
// main can report errors through the same sink the app uses.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			registry.NodeID,
			lockstore.NodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, reg, locks, watch, log, tracer), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}
