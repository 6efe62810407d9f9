package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer coalesces rapid file system events into a single callback.
// An editor saving a file can produce several raw events back to back;
// only one notification should reach the consumer.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
	window   time.Duration
	callback func()
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Add records an event and (re)starts the debounce window.
func (d *Debouncer) Add() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires. The callback runs under
// the lock so Stop can block until an in-flight callback completes.
func (d *Debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.timer = nil
	d.callback()
}

// Stop cancels any pending callback and waits for an in-flight one to
// complete. After Stop returns the callback will never be invoked again.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
