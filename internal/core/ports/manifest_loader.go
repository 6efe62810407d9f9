// Package ports defines the core interfaces for the application.
package ports

import "go.rigtool.dev/rig/internal/core/domain"

// ManifestLoader defines the interface for loading the tool manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest discovered from the given working directory.
	// It fails on the first problem it finds.
	Load(cwd string) (*domain.Manifest, error)

	// Lint reads the manifest but collects every problem instead of failing
	// on the first one. The returned manifest contains the declarations that
	// parsed cleanly.
	Lint(cwd string) (domain.LintResult, error)

	// DiscoverRoot walks up from cwd to find the directory containing the
	// manifest file.
	DiscoverRoot(cwd string) (string, error)
}
