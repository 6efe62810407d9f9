package manifest_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.rigtool.dev/rig/internal/adapters/manifest"
	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestLoader(t *testing.T, files fstest.MapFS) *manifest.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return manifest.NewLoaderWithFS(manifest.NewMapFSAdapter("/repo", files), logger)
}

func TestLoader_DiscoverRoot(t *testing.T) {
	fsys := fstest.MapFS{
		"rig.txt":                     {Data: []byte("pytest>=6.2.4,<7.0.0\n")},
		"services/api/handlers/h.go":  {Data: []byte("package handlers\n")},
		"services/api/rig.txt":        {Data: []byte("mypy\n")},
		"services/worker/worker.go":   {Data: []byte("package worker\n")},
		"docs/architecture/README.md": {Data: []byte("docs\n")},
	}
	loader := newTestLoader(t, fsys)

	tests := []struct {
		name string
		cwd  string
		want string
	}{
		{
			name: "cwd is the root itself",
			cwd:  "/repo",
			want: "/repo",
		},
		{
			name: "nearest manifest wins over an ancestor",
			cwd:  "/repo/services/api/handlers",
			want: "/repo/services/api",
		},
		{
			name: "walks up past directories without a manifest",
			cwd:  "/repo/services/worker",
			want: "/repo",
		},
		{
			name: "deeply nested without intermediate manifest",
			cwd:  "/repo/docs/architecture",
			want: "/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := loader.DiscoverRoot(tt.cwd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, root)
		})
	}
}

func TestLoader_DiscoverRoot_NotFound(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"src/main.go": {Data: []byte("package main\n")},
	})

	_, err := loader.DiscoverRoot("/repo/src")
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestLoader_Load(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"rig.txt": {Data: []byte("# tools\npytest>=6.2.4,<7.0.0\nmypy\n")},
	})

	m, err := loader.Load("/repo")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	d, ok := m.Get("pytest")
	require.True(t, ok)
	assert.Equal(t, ">=6.2.4,<7.0.0", d.Constraint.String())
}

func TestLoader_Load_ParseError(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"rig.txt": {Data: []byte("pytest>=6.2.4\npytest<7.0.0\n")},
	})

	_, err := loader.Load("/repo")
	require.ErrorIs(t, err, domain.ErrDuplicateDeclaration)
}

func TestLoader_Lint_WarnsOnEmptyManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("manifest declares no tools: " + filepath.Join("/repo", "rig.txt"))

	loader := manifest.NewLoaderWithFS(manifest.NewMapFSAdapter("/repo", fstest.MapFS{
		"rig.txt": {Data: []byte("# nothing declared yet\n")},
	}), logger)

	res, err := loader.Lint("/repo")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, 0, res.Manifest.Len())
}

func TestLoader_Lint_CollectsIssues(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"rig.txt": {Data: []byte("pytest>=6.2.4\nbad name\npytest<7.0.0\n")},
	})

	res, err := loader.Lint("/repo")
	require.NoError(t, err)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, 2, res.Issues[0].Line)
	assert.Equal(t, 3, res.Issues[1].Line)
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ManifestFileName)
	messy := []byte("# tools\npytest >= 6.2.4 , < 7.0.0\n\nmypy\n")
	require.NoError(t, os.WriteFile(path, messy, 0o644))

	t.Run("dry run reports change without writing", func(t *testing.T) {
		canonical, changed, err := manifest.Format(path, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "pytest>=6.2.4,<7.0.0\nmypy\n", string(canonical))

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, messy, onDisk)
	})

	t.Run("write persists canonical form", func(t *testing.T) {
		_, changed, err := manifest.Format(path, true)
		require.NoError(t, err)
		assert.True(t, changed)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "pytest>=6.2.4,<7.0.0\nmypy\n", string(onDisk))
	})

	t.Run("already canonical is a no-op", func(t *testing.T) {
		_, changed, err := manifest.Format(path, true)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestFormat_MissingFile(t *testing.T) {
	_, _, err := manifest.Format(filepath.Join(t.TempDir(), domain.ManifestFileName), false)
	require.Error(t, err)
}
