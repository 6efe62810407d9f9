package domain

import "time"

// Pin records the exact version a declaration resolved to.
// Constraint holds the canonical constraint text at resolution time.
type Pin struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
	Version    string `json:"version"`
}

// Lock is the persisted result of resolving a manifest against a registry.
//
// Fingerprint ties the lock to the manifest contents it was generated from;
// when the manifest changes, the fingerprints diverge and the lock is stale.
type Lock struct {
	CreatedAt   time.Time `json:"created_at"`
	Fingerprint string    `json:"fingerprint"`
	Pins        []Pin     `json:"pins"`
}

// LockState describes how a lock file relates to the current manifest.
type LockState int

const (
	// LockMissing means no lock file exists.
	LockMissing LockState = iota
	// LockStale means the lock was generated from a different manifest.
	LockStale
	// LockFresh means the lock matches the current manifest.
	LockFresh
)

// String returns a human-readable name for the state.
func (s LockState) String() string {
	switch s {
	case LockMissing:
		return "missing"
	case LockStale:
		return "stale"
	case LockFresh:
		return "fresh"
	default:
		return "unknown"
	}
}
