package manifest

import (
	"bytes"

	"go.rigtool.dev/rig/internal/core/domain"
)

// Serialize renders the manifest in canonical form: one declaration per line
// in manifest order, no comments, no spaces inside constraints, and a
// trailing newline. Parsing the output yields an identical set of
// declarations.
func Serialize(m *domain.Manifest) []byte {
	var buf bytes.Buffer
	for _, d := range m.Declarations() {
		buf.WriteString(d.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
