package domain

import (
	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a semantic version of a tool.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3 so the rest
// of the codebase never handles the library types directly.
type Version struct {
	v *mm.Version
}

// ParseVersion parses a version string like "6.2.4".
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", raw)
	}
	return Version{v: v}, nil
}

// MustParseVersion parses a version string and panics on failure.
// Intended for tests and package-level fixtures.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether the version is the uninitialized zero value.
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the canonical string form of the version.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// CompareVersions compares a and b, returning:
//
//	-1 if a < b
//	 0 if a == b
//	 1 if a > b
//
// The zero Version sorts before any parsed version.
func CompareVersions(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// MaxSatisfying returns the highest version in candidates that satisfies c.
// The second return value is false when no candidate satisfies the constraint.
func MaxSatisfying(c Constraint, candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !c.Check(candidate) {
			continue
		}
		if !found || CompareVersions(candidate, best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}
