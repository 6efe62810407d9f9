package ports

import "go.rigtool.dev/rig/internal/core/domain"

// LockStore defines the interface for reading and writing the lock file.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lock file from the given root directory.
	// Returns nil, nil if no lock file exists.
	Read(root string) (*domain.Lock, error)

	// Write persists the lock file to the given root directory.
	Write(root string, lock domain.Lock) error
}
