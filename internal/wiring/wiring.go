// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.rigtool.dev/rig/internal/adapters/lockstore"
	_ "go.rigtool.dev/rig/internal/adapters/logger"
	_ "go.rigtool.dev/rig/internal/adapters/manifest"
	_ "go.rigtool.dev/rig/internal/adapters/registry"
	_ "go.rigtool.dev/rig/internal/adapters/telemetry"
	_ "go.rigtool.dev/rig/internal/adapters/watcher"
	// Register app nodes.
	_ "go.rigtool.dev/rig/internal/app"
)
