package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/core/ports/mocks"
	"go.rigtool.dev/rig/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func buildManifest(t *testing.T, decls ...domain.Declaration) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest()
	for _, d := range decls {
		require.NoError(t, m.Add(d))
	}
	return m
}

func decl(t *testing.T, name, constraint string) domain.Declaration {
	t.Helper()
	return domain.Declaration{
		Name:       name,
		Constraint: domain.MustParseConstraint(constraint),
	}
}

func versions(t *testing.T, raw ...string) []domain.Version {
	t.Helper()
	out := make([]domain.Version, len(raw))
	for i, s := range raw {
		out[i] = domain.MustParseVersion(s)
	}
	return out
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("picks the highest satisfying version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		registry.EXPECT().Versions(gomock.Any(), "pytest").
			Return(versions(t, "6.2.3", "6.2.4", "6.2.5", "7.0.0"), nil)

		m := buildManifest(t, decl(t, "pytest", ">=6.2.4,<7.0.0"))

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.NoError(t, err)
		require.True(t, plan.Diagnostics.OK())
		require.Len(t, plan.Pins, 1)
		assert.Equal(t, domain.Pin{
			Name:       "pytest",
			Constraint: ">=6.2.4,<7.0.0",
			Version:    "6.2.5",
		}, plan.Pins[0])
	})

	t.Run("unconstrained declaration pins the latest version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		registry.EXPECT().Versions(gomock.Any(), "mypy").
			Return(versions(t, "0.971", "1.0.0", "0.910"), nil)

		m := buildManifest(t, decl(t, "mypy", ""))

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.NoError(t, err)
		require.Len(t, plan.Pins, 1)
		assert.Equal(t, "1.0.0", plan.Pins[0].Version)
		assert.Empty(t, plan.Pins[0].Constraint)
	})

	t.Run("pins stay in manifest order despite concurrency", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		names := []string{"alpha", "bravo", "charlie", "delta", "echo"}
		decls := make([]domain.Declaration, len(names))
		for i, name := range names {
			decls[i] = decl(t, name, "")
			registry.EXPECT().Versions(gomock.Any(), name).
				Return(versions(t, "1.0.0"), nil)
		}

		m := buildManifest(t, decls...)

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.NoError(t, err)
		require.Len(t, plan.Pins, len(names))
		for i, name := range names {
			assert.Equal(t, name, plan.Pins[i].Name)
		}
	})

	t.Run("unknown tool becomes a diagnostic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		registry.EXPECT().Versions(gomock.Any(), "ghost").
			Return(nil, domain.ErrToolUnknown)
		registry.EXPECT().Versions(gomock.Any(), "pytest").
			Return(versions(t, "6.2.4"), nil)

		m := buildManifest(t,
			decl(t, "ghost", ">=1.0.0"),
			decl(t, "pytest", ""),
		)

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.NoError(t, err)
		require.Len(t, plan.Pins, 1)
		require.Len(t, plan.Diagnostics.Unresolved, 1)
		assert.Equal(t, "ghost", plan.Diagnostics.Unresolved[0].Name)
		assert.Equal(t, "tool not known to registry", plan.Diagnostics.Unresolved[0].Reason)
	})

	t.Run("no satisfying version becomes a diagnostic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		registry.EXPECT().Versions(gomock.Any(), "pytest").
			Return(versions(t, "6.2.3", "7.0.0"), nil)

		m := buildManifest(t, decl(t, "pytest", ">=6.2.4,<7.0.0"))

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.NoError(t, err)
		assert.Empty(t, plan.Pins)
		require.Len(t, plan.Diagnostics.Unresolved, 1)
		assert.Equal(t, "no published version satisfies constraint", plan.Diagnostics.Unresolved[0].Reason)
		assert.Equal(t, ">=6.2.4,<7.0.0", plan.Diagnostics.Unresolved[0].Constraint)
	})

	t.Run("transport failure aborts resolution", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)
		transportErr := errors.New("connection refused")
		registry.EXPECT().Versions(gomock.Any(), "pytest").Return(nil, transportErr)

		m := buildManifest(t, decl(t, "pytest", ""))

		_, err := resolver.NewResolver(registry).Resolve(context.Background(), m)
		require.ErrorIs(t, err, domain.ErrResolutionFailed)
		require.ErrorIs(t, err, transportErr)
	})

	t.Run("empty manifest resolves to an empty plan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		registry := mocks.NewMockRegistry(ctrl)

		plan, err := resolver.NewResolver(registry).Resolve(context.Background(), domain.NewManifest())
		require.NoError(t, err)
		assert.Empty(t, plan.Pins)
		assert.True(t, plan.Diagnostics.OK())
	})
}
