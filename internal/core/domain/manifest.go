package domain

import (
	"encoding/hex"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Manifest is the set of tool declarations read from a rig.txt file.
//
// Declaration order is preserved for faithful re-serialization, but the set
// semantics are order-irrelevant: two manifests with the same declarations in
// a different order have the same fingerprint.
type Manifest struct {
	decls []Declaration
	index map[string]int
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// Add appends a declaration, enforcing the name invariants and the
// at-most-once rule.
func (m *Manifest) Add(d Declaration) error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if _, exists := m.index[d.Name]; exists {
		return zerr.With(ErrDuplicateDeclaration, "name", d.Name)
	}
	m.index[d.Name] = len(m.decls)
	m.decls = append(m.decls, d)
	return nil
}

// Get returns the declaration for the given name, if present.
func (m *Manifest) Get(name string) (Declaration, bool) {
	i, ok := m.index[name]
	if !ok {
		return Declaration{}, false
	}
	return m.decls[i], true
}

// Declarations returns the declarations in manifest order.
func (m *Manifest) Declarations() []Declaration {
	out := make([]Declaration, len(m.decls))
	copy(out, m.decls)
	return out
}

// Len returns the number of declarations.
func (m *Manifest) Len() int {
	return len(m.decls)
}

// Fingerprint returns a stable hash of the manifest contents.
//
// The hash covers the canonical form of every declaration, sorted by name, so
// reordering lines or reformatting whitespace does not change it. It is used
// to detect a lock file that no longer matches its manifest.
func (m *Manifest) Fingerprint() string {
	lines := make([]string, len(m.decls))
	for i, d := range m.decls {
		lines[i] = d.String()
	}
	slices.Sort(lines)

	digest := xxhash.New()
	_, _ = digest.WriteString(strings.Join(lines, "\n"))
	return hex.EncodeToString(digest.Sum(nil))
}
