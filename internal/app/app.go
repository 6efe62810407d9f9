// Package app implements the application layer for rig.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.rigtool.dev/rig/internal/adapters/manifest"
	"go.rigtool.dev/rig/internal/core/domain"
	"go.rigtool.dev/rig/internal/core/ports"
	"go.rigtool.dev/rig/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	registry  ports.Registry
	lockStore ports.LockStore
	watcher   ports.Watcher
	logger    ports.Logger
	tracer    ports.Tracer

	// getwd is swappable for tests.
	getwd func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	registry ports.Registry,
	lockStore ports.LockStore,
	watcher ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		loader:    loader,
		registry:  registry,
		lockStore: lockStore,
		watcher:   watcher,
		logger:    log,
		tracer:    tracer,
		getwd:     os.Getwd,
	}
}

// WithWorkingDir pins the working directory used for manifest discovery.
// This is primarily used for testing.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Check lints the manifest and reports every problem it finds.
//
// The returned error is domain.ErrManifestInvalid when issues exist; the
// issues themselves are in the result.
func (a *App) Check(ctx context.Context) (domain.LintResult, error) {
	_, span := a.tracer.Start(ctx, "check")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return domain.LintResult{}, err
	}

	res, err := a.loader.Lint(cwd)
	if err != nil {
		span.RecordError(err)
		return domain.LintResult{}, err
	}

	span.SetAttribute("tools", res.Manifest.Len())
	span.SetAttribute("issues", len(res.Issues))

	if !res.OK() {
		span.RecordError(domain.ErrManifestInvalid)
		return res, domain.ErrManifestInvalid
	}
	return res, nil
}

// List returns the manifest declarations in manifest order.
func (a *App) List(ctx context.Context) ([]domain.Declaration, error) {
	_, span := a.tracer.Start(ctx, "list")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return nil, err
	}

	m, err := a.loader.Load(cwd)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("tools", m.Len())
	return m.Declarations(), nil
}

// Lock resolves every declaration against the registry and writes the lock
// file next to the manifest.
//
// When declarations cannot be resolved the plan's diagnostics name them and
// the error is domain.ErrResolutionFailed; no lock file is written.
func (a *App) Lock(ctx context.Context) (domain.Plan, error) {
	ctx, span := a.tracer.Start(ctx, "lock")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return domain.Plan{}, err
	}

	m, err := a.loader.Load(cwd)
	if err != nil {
		span.RecordError(err)
		return domain.Plan{}, err
	}
	span.SetAttribute("tools", m.Len())

	plan, err := resolver.NewResolver(a.registry).Resolve(ctx, m)
	if err != nil {
		span.RecordError(err)
		return domain.Plan{}, err
	}

	if !plan.Diagnostics.OK() {
		span.RecordError(domain.ErrResolutionFailed)
		span.SetAttribute("unresolved", len(plan.Diagnostics.Unresolved))
		return plan, domain.ErrResolutionFailed
	}

	root, err := a.loader.DiscoverRoot(cwd)
	if err != nil {
		span.RecordError(err)
		return domain.Plan{}, err
	}

	// The lock file is diffable: pins are sorted by name regardless of
	// manifest order.
	pins := slices.Clone(plan.Pins)
	slices.SortFunc(pins, func(a, b domain.Pin) int {
		return strings.Compare(a.Name, b.Name)
	})

	lock := domain.Lock{
		CreatedAt:   time.Now().UTC(),
		Fingerprint: m.Fingerprint(),
		Pins:        pins,
	}
	if err := a.lockStore.Write(root, lock); err != nil {
		span.RecordError(err)
		return domain.Plan{}, err
	}

	a.logger.Info(fmt.Sprintf("locked %d tools", len(plan.Pins)))
	return plan, nil
}

// StatusResult reports how the lock file relates to the current manifest.
type StatusResult struct {
	State domain.LockState
	Lock  *domain.Lock
	Tools int
}

// Status compares the lock file against the current manifest.
func (a *App) Status(ctx context.Context) (StatusResult, error) {
	_, span := a.tracer.Start(ctx, "status")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return StatusResult{}, err
	}

	m, err := a.loader.Load(cwd)
	if err != nil {
		span.RecordError(err)
		return StatusResult{}, err
	}

	root, err := a.loader.DiscoverRoot(cwd)
	if err != nil {
		span.RecordError(err)
		return StatusResult{}, err
	}

	lock, err := a.lockStore.Read(root)
	if err != nil {
		span.RecordError(err)
		return StatusResult{}, err
	}

	res := StatusResult{Lock: lock, Tools: m.Len()}
	switch {
	case lock == nil:
		res.State = domain.LockMissing
	case lock.Fingerprint != m.Fingerprint():
		res.State = domain.LockStale
	default:
		res.State = domain.LockFresh
	}

	span.SetAttribute("state", res.State.String())
	return res, nil
}

// FormatResult reports the outcome of canonicalizing the manifest.
type FormatResult struct {
	Path      string
	Changed   bool
	Canonical []byte
}

// Format rewrites the manifest into canonical form. With write false it only
// reports whether the file would change.
func (a *App) Format(ctx context.Context, write bool) (FormatResult, error) {
	_, span := a.tracer.Start(ctx, "format")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return FormatResult{}, err
	}

	root, err := a.loader.DiscoverRoot(cwd)
	if err != nil {
		span.RecordError(err)
		return FormatResult{}, err
	}

	path := filepath.Join(root, domain.ManifestFileName)
	canonical, changed, err := manifest.Format(path, write)
	if err != nil {
		span.RecordError(err)
		return FormatResult{}, err
	}

	span.SetAttribute("changed", changed)
	return FormatResult{Path: path, Changed: changed, Canonical: canonical}, nil
}

// Watch re-checks the manifest whenever it changes, until the context is
// cancelled. Results are reported through the logger.
func (a *App) Watch(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "watch")
	defer span.End()

	cwd, err := a.getwd()
	if err != nil {
		return err
	}

	root, err := a.loader.DiscoverRoot(cwd)
	if err != nil {
		span.RecordError(err)
		return err
	}
	path := filepath.Join(root, domain.ManifestFileName)

	if err := a.watcher.Start(ctx, path); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to start manifest watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info("watching " + path)
	a.recheck(ctx)

	for event := range a.watcher.Events() {
		if event.Operation == ports.OpRemove {
			a.logger.Warn("manifest removed: " + event.Path)
			continue
		}
		a.recheck(ctx)
	}

	// Cancellation is the normal way to leave watch mode.
	return nil
}

// recheck lints the manifest once and logs the outcome.
func (a *App) recheck(ctx context.Context) {
	res, err := a.Check(ctx)
	switch {
	case err != nil && !res.OK():
		for _, issue := range res.Issues {
			a.logger.Warn(issue.String())
		}
	case err != nil:
		a.logger.Error(err)
	default:
		a.logger.Info(fmt.Sprintf("manifest ok: %d tools", res.Manifest.Len()))
	}
}
