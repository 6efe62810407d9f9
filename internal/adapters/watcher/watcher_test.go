package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.rigtool.dev/rig/internal/adapters/watcher"
	"go.rigtool.dev/rig/internal/core/ports"
)

func collectEvents(w ports.Watcher) <-chan ports.WatchEvent {
	out := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(out)
		for event := range w.Events() {
			out <- event
		}
	}()
	return out
}

func waitForEvent(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "event stream closed before an event arrived")
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return ports.WatchEvent{}
	}
}

func TestWatcher_EmitsWriteOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest\n"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, path))
	events := collectEvents(w)

	require.NoError(t, os.WriteFile(path, []byte("pytest>=6.2.4\n"), 0o644))

	event := waitForEvent(t, events)
	assert.Equal(t, path, event.Path)
	assert.Equal(t, ports.OpWrite, event.Operation)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest\n"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, path))
	events := collectEvents(w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case event := <-events:
		t.Fatalf("unexpected event for sibling file: %+v", event)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_EmitsRemoveOnDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest\n"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, path))
	events := collectEvents(w)

	require.NoError(t, os.Remove(path))

	event := waitForEvent(t, events)
	assert.Equal(t, ports.OpRemove, event.Operation)
}

func TestWatcher_RenameReplaceIsAWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest\n"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, path))
	events := collectEvents(w)

	// Simulate an editor save: write a temp file, rename it over the target.
	tmp := filepath.Join(dir, "rig.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("pytest>=6.2.4\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	event := waitForEvent(t, events)
	assert.Equal(t, ports.OpWrite, event.Operation)
}

func TestWatcher_StopClosesEventStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rig.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest\n"), 0o644))

	w, err := watcher.NewWatcher()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, path))
	events := collectEvents(w)

	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		assert.False(t, ok, "expected event stream to close")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event stream to close")
	}
}
