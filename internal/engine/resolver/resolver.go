// Package resolver pins every manifest declaration to the highest published
// version that satisfies its constraint.
package resolver

import (
	"context"
	"errors"
	"runtime"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves manifests against a registry.
type Resolver struct {
	registry ports.Registry
}

// NewResolver creates a new Resolver backed by the given registry.
func NewResolver(registry ports.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// outcome is the per-declaration result of a registry lookup.
type outcome struct {
	pin        *domain.Pin
	unresolved *domain.UnresolvedDeclaration
}

// Resolve pins every declaration in the manifest. Registry lookups run
// concurrently; the plan lists pins and diagnostics in manifest order.
//
// A tool the registry does not know, or a constraint no published version
// satisfies, becomes a diagnostic rather than an error. Transport and cache
// failures abort the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, m *domain.Manifest) (domain.Plan, error) {
	decls := m.Declarations()
	outcomes := make([]outcome, len(decls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, d := range decls {
		g.Go(func() error {
			out, err := r.resolveOne(ctx, d)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Plan{}, errors.Join(domain.ErrResolutionFailed, err)
	}

	var plan domain.Plan
	for _, out := range outcomes {
		if out.unresolved != nil {
			plan.Diagnostics.Unresolved = append(plan.Diagnostics.Unresolved, *out.unresolved)
			continue
		}
		plan.Pins = append(plan.Pins, *out.pin)
	}

	return plan, nil
}

// resolveOne pins a single declaration.
func (r *Resolver) resolveOne(ctx context.Context, d domain.Declaration) (outcome, error) {
	versions, err := r.registry.Versions(ctx, d.Name)
	if err != nil {
		if errors.Is(err, domain.ErrToolUnknown) {
			return unresolved(d, "tool not known to registry"), nil
		}
		return outcome{}, zerr.With(err, "name", d.Name)
	}

	best, ok := domain.MaxSatisfying(d.Constraint, versions)
	if !ok {
		return unresolved(d, "no published version satisfies constraint"), nil
	}

	constraint := ""
	if !d.Constraint.IsAny() {
		constraint = d.Constraint.String()
	}

	return outcome{pin: &domain.Pin{
		Name:       d.Name,
		Constraint: constraint,
		Version:    best.String(),
	}}, nil
}

func unresolved(d domain.Declaration, reason string) outcome {
	return outcome{unresolved: &domain.UnresolvedDeclaration{
		Name:       d.Name,
		Constraint: d.Constraint.String(),
		Reason:     reason,
	}}
}
