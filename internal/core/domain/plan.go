package domain

// Plan is the output of resolving a manifest against a registry.
type Plan struct {
	// Pins holds one entry per resolved declaration, in manifest order.
	Pins []Pin

	// Diagnostics captures the declarations that could not be resolved.
	Diagnostics Diagnostics
}

// Diagnostics captures human-readable information about resolution.
type Diagnostics struct {
	Unresolved []UnresolvedDeclaration
}

// OK reports whether every declaration resolved.
func (d Diagnostics) OK() bool {
	return len(d.Unresolved) == 0
}

// UnresolvedDeclaration names a declaration that resolution could not pin,
// with the reason.
type UnresolvedDeclaration struct {
	Name       string
	Constraint string
	Reason     string
}
