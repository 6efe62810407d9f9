package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.rigtool.dev/rig/internal/core/domain"
)

func TestManifest_Add(t *testing.T) {
	t.Run("rejects duplicate names", func(t *testing.T) {
		m := domain.NewManifest()
		require.NoError(t, m.Add(domain.Declaration{Name: "pytest"}))

		err := m.Add(domain.Declaration{Name: "pytest", Constraint: domain.MustParseConstraint(">=7.0.0")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateDeclaration)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		for _, name := range []string{"", "py test", "-pytest", "py\ttest", "py/test"} {
			m := domain.NewManifest()
			err := m.Add(domain.Declaration{Name: name})
			require.Error(t, err, "name %q should be rejected", name)
		}
	})

	t.Run("preserves declaration order", func(t *testing.T) {
		m := domain.NewManifest()
		require.NoError(t, m.Add(domain.Declaration{Name: "pytest"}))
		require.NoError(t, m.Add(domain.Declaration{Name: "black"}))
		require.NoError(t, m.Add(domain.Declaration{Name: "mypy"}))

		var names []string
		for _, d := range m.Declarations() {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"pytest", "black", "mypy"}, names)
	})
}

func TestManifest_Get(t *testing.T) {
	m := domain.NewManifest()
	want := domain.Declaration{Name: "mypy", Constraint: domain.MustParseConstraint(">=0.910")}
	require.NoError(t, m.Add(want))

	got, ok := m.Get("mypy")
	require.True(t, ok)
	assert.Equal(t, want.String(), got.String())

	_, ok = m.Get("ruff")
	assert.False(t, ok)
}

func TestManifest_Fingerprint(t *testing.T) {
	build := func(names ...string) *domain.Manifest {
		m := domain.NewManifest()
		for _, n := range names {
			require.NoError(t, m.Add(domain.Declaration{Name: n, Constraint: domain.MustParseConstraint(">=1.0.0")}))
		}
		return m
	}

	t.Run("order irrelevant", func(t *testing.T) {
		a := build("pytest", "mypy", "black")
		b := build("black", "pytest", "mypy")
		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("changes on content", func(t *testing.T) {
		a := build("pytest", "mypy")
		b := build("pytest", "ruff")
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("changes on constraint", func(t *testing.T) {
		a := domain.NewManifest()
		require.NoError(t, a.Add(domain.Declaration{Name: "pytest", Constraint: domain.MustParseConstraint(">=6.2.4")}))
		b := domain.NewManifest()
		require.NoError(t, b.Add(domain.Declaration{Name: "pytest", Constraint: domain.MustParseConstraint(">=6.2.5")}))
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestDeclaration_String(t *testing.T) {
	d := domain.Declaration{Name: "pytest", Constraint: domain.MustParseConstraint(">=6.2.4, <7.0.0")}
	assert.Equal(t, "pytest>=6.2.4,<7.0.0", d.String())

	bare := domain.Declaration{Name: "mypy"}
	assert.Equal(t, "mypy", bare.String())
}
