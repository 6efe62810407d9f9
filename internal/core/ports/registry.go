package ports

import (
	"context"

	"go.rigtool.dev/rig/internal/core/domain"
)

// Registry defines the interface for listing the published versions of a tool.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Versions returns all known versions of the named tool, in no
	// particular order. It returns domain.ErrToolUnknown when the registry
	// has never heard of the tool.
	Versions(ctx context.Context, name string) ([]domain.Version, error)
}
