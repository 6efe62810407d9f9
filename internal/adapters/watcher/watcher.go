// Package watcher implements manifest file watching using fsnotify.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.rigtool.dev/rig/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher emits a coalesced event whenever the watched manifest changes.
// fsnotify watches the parent directory rather than the file itself so that
// editors which replace the file on save (write to temp, rename over) keep
// being observed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates a new manifest watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the file at path. Events for other files in the same
// directory are ignored.
func (w *Watcher) Start(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := w.fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	go w.processEvents(ctx, absPath)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of coalesced manifest events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents filters raw fsnotify events down to the watched file and
// debounces them into single change notifications.
func (w *Watcher) processEvents(ctx context.Context, path string) {
	debouncer := NewDebouncer(DefaultDebounceWindow, func() {
		w.emit(ctx, path)
	})
	defer func() {
		// Stop before close so a pending timer cannot emit on a closed channel.
		debouncer.Stop()
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !sameFile(event.Name, path) {
				continue
			}
			debouncer.Add()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// emit sends one event for the watched file. A save that replaces the file
// shows up as rename+create; statting after the debounce window settles on
// the real outcome.
func (w *Watcher) emit(ctx context.Context, path string) {
	op := ports.OpWrite
	if _, err := os.Stat(path); err != nil {
		op = ports.OpRemove
	}

	if ctx.Err() != nil {
		return
	}

	// Non-blocking send: with a slow consumer the pending event already
	// signals a change, dropping the extra one loses nothing.
	select {
	case w.events <- ports.WatchEvent{Path: path, Operation: op}:
	default:
	}
}

func sameFile(eventName, path string) bool {
	abs, err := filepath.Abs(eventName)
	if err != nil {
		return false
	}
	return abs == path
}
