package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// Declaration names a development tool together with the version range the
// project accepts for it. An any-version constraint means the name alone was
// declared.
type Declaration struct {
	Name       string
	Constraint Constraint
}

// String returns the canonical manifest line for the declaration.
func (d Declaration) String() string {
	return d.Name + d.Constraint.String()
}

// validNameRegex restricts tool names to a conservative charset so a name can
// never be confused with a constraint operator or a comment marker.
var validNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName checks the declaration-name invariants: non-empty, no
// whitespace, and limited to alphanumerics plus ".", "_" and "-".
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyDeclarationName
	}
	if !validNameRegex.MatchString(name) {
		return zerr.With(ErrInvalidDeclarationName, "name", name)
	}
	return nil
}
