package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when no rig.txt can be found walking up from the working directory.
	ErrManifestNotFound = zerr.New("could not find manifest file")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest file")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest file")

	// ErrManifestInvalid is returned when a check finds problems in the manifest.
	ErrManifestInvalid = zerr.New("manifest check failed")

	// ErrManifestWriteFailed is returned when a formatted manifest cannot be written back.
	ErrManifestWriteFailed = zerr.New("failed to write manifest file")

	// ErrEmptyDeclarationName is returned when a declaration has no name.
	ErrEmptyDeclarationName = zerr.New("declaration name is empty")

	// ErrInvalidDeclarationName is returned when a declaration name contains invalid characters.
	ErrInvalidDeclarationName = zerr.New("declaration name may only contain alphanumerics, dots, hyphens and underscores")

	// ErrDuplicateDeclaration is returned when a tool name is declared more than once.
	ErrDuplicateDeclaration = zerr.New("duplicate declaration")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidConstraint is returned when a version constraint cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrUnsatisfiableConstraint is returned when a constraint admits no version at all.
	ErrUnsatisfiableConstraint = zerr.New("constraint is unsatisfiable")

	// ErrLockReadFailed is returned when the lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockUnmarshalFailed is returned when the lock file cannot be unmarshaled.
	ErrLockUnmarshalFailed = zerr.New("failed to unmarshal lock file")

	// ErrLockMarshalFailed is returned when the lock file cannot be marshaled.
	ErrLockMarshalFailed = zerr.New("failed to marshal lock file")

	// ErrLockWriteFailed is returned when the lock file cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lock file")

	// ErrResolutionFailed is returned when one or more declarations cannot be resolved.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrToolUnknown is returned when the registry has no versions for a tool.
	ErrToolUnknown = zerr.New("tool not known to registry")

	// ErrRegistryRequestFailed is returned when a registry index request fails.
	ErrRegistryRequestFailed = zerr.New("failed to query registry index")

	// ErrRegistryParseFailed is returned when a registry index response cannot be parsed.
	ErrRegistryParseFailed = zerr.New("failed to parse registry index response")

	// ErrIndexCacheCreateFailed is returned when the index cache directory cannot be created.
	ErrIndexCacheCreateFailed = zerr.New("failed to create index cache directory")

	// ErrIndexCacheReadFailed is returned when reading from the index cache fails.
	ErrIndexCacheReadFailed = zerr.New("failed to read from index cache")

	// ErrIndexCacheWriteFailed is returned when writing to the index cache fails.
	ErrIndexCacheWriteFailed = zerr.New("failed to write to index cache")

	// ErrCatalogReadFailed is returned when a catalog file cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read catalog file")

	// ErrCatalogParseFailed is returned when a catalog file cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog file")
)
