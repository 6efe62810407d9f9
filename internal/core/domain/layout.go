package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the tool manifest file.
	ManifestFileName = "rig.txt"

	// LockFileName is the name of the lock file written next to the manifest.
	LockFileName = "rig.lock"

	// RigDirName is the name of the internal metadata directory.
	RigDirName = ".rig"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// IndexDirName is the name of the registry index cache directory.
	IndexDirName = "index"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultRigPath returns the default root directory for rig metadata.
func DefaultRigPath() string {
	return RigDirName
}

// DefaultIndexCachePath returns the default path for the registry index cache.
// It joins .rig, cache, and index.
func DefaultIndexCachePath() string {
	return filepath.Join(RigDirName, CacheDirName, IndexDirName)
}
