package manifest

import (
	"bytes"
	"os"
	"path/filepath"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestLoader against a FileSystem.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a Loader backed by the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{fs: NewOSFS(), logger: logger}
}

// newLoaderWithFS creates a Loader with a custom filesystem (used for testing).
func newLoaderWithFS(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads the manifest discovered from cwd, failing on the first problem.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	data, _, err := l.read(cwd)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// Lint reads the manifest discovered from cwd and collects every problem.
func (l *Loader) Lint(cwd string) (domain.LintResult, error) {
	data, path, err := l.read(cwd)
	if err != nil {
		return domain.LintResult{}, err
	}

	res, err := Lint(bytes.NewReader(data))
	if err != nil {
		return domain.LintResult{}, err
	}

	if res.Manifest.Len() == 0 && res.OK() {
		l.logger.Warn("manifest declares no tools: " + path)
	}

	return res, nil
}

// DiscoverRoot walks up from cwd until it finds a directory containing the
// manifest file.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := cwd

	for {
		manifestPath := filepath.Join(currentDir, domain.ManifestFileName)
		if _, err := l.fs.Stat(manifestPath); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
}

// read discovers and reads the manifest, returning its contents and path.
func (l *Loader) read(cwd string) ([]byte, string, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(root, domain.ManifestFileName)
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	return data, path, nil
}

// Format rewrites the manifest at the given path into canonical form.
// When write is false the canonical form is only computed, not persisted.
// The returned bool reports whether the canonical form differs from the
// current file contents.
func Format(path string, write bool) ([]byte, bool, error) {
	// #nosec G304 -- path comes from manifest discovery
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}

	canonical := Serialize(m)
	changed := !bytes.Equal(data, canonical)

	if write && changed {
		if err := os.WriteFile(path, canonical, domain.FilePerm); err != nil {
			return nil, false, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
		}
	}

	return canonical, changed, nil
}
