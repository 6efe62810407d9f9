// Package lockstore persists the lock file next to the manifest.
package lockstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockStore using a JSON file per project root.
type Store struct{}

// NewStore creates a new LockStore.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lock file from the given root directory. A missing lock
// file is not an error; it returns nil, nil.
func (s *Store) Read(root string) (*domain.Lock, error) {
	path := filepath.Join(root, domain.LockFileName)
	// #nosec G304 -- path is the project root joined with a fixed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrLockReadFailed.Error())
	}

	var lock domain.Lock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockUnmarshalFailed.Error())
	}

	return &lock, nil
}

// Write persists the lock file to the given root directory.
func (s *Store) Write(root string, lock domain.Lock) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockMarshalFailed.Error())
	}
	data = append(data, '\n')

	path := filepath.Join(root, domain.LockFileName)
	//nolint:gosec // Path is the project root joined with a fixed filename
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrLockWriteFailed.Error())
	}

	return nil
}
