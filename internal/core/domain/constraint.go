package domain

import (
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Op is a version comparison operator in a constraint clause.
type Op string

// Supported constraint operators, ordered so that two-character operators
// are matched before their one-character prefixes.
const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpGreaterEqual Op = ">="
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpLess         Op = "<"
)

// operators lists all operators in prefix-match order.
var operators = []Op{OpEqual, OpNotEqual, OpGreaterEqual, OpLessEqual, OpGreater, OpLess}

// Clause is a single comparison within a constraint, e.g. ">=6.2.4".
type Clause struct {
	Op      Op
	Version Version
}

// String returns the canonical form of the clause, without spaces.
func (c Clause) String() string {
	return string(c.Op) + c.Version.String()
}

// Constraint is a version range: the conjunction of one or more clauses.
// The zero Constraint matches any version.
type Constraint struct {
	clauses  []Clause
	compiled *mm.Constraints
}

// ParseConstraint parses a comma-separated clause list like ">=6.2.4,<7.0.0".
// An empty string yields the any-version constraint.
func ParseConstraint(raw string) (Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Constraint{}, nil
	}

	parts := strings.Split(raw, ",")
	clauses := make([]Clause, 0, len(parts))
	for _, part := range parts {
		clause, err := parseClause(strings.TrimSpace(part))
		if err != nil {
			return Constraint{}, err
		}
		clauses = append(clauses, clause)
	}

	compiled, err := compile(clauses)
	if err != nil {
		return Constraint{}, zerr.With(zerr.Wrap(err, ErrInvalidConstraint.Error()), "constraint", raw)
	}

	return Constraint{clauses: clauses, compiled: compiled}, nil
}

// MustParseConstraint parses a constraint and panics on failure.
// Intended for tests and package-level fixtures.
func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func parseClause(raw string) (Clause, error) {
	if raw == "" {
		return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "empty clause")
	}

	for _, op := range operators {
		rest, ok := strings.CutPrefix(raw, string(op))
		if !ok {
			continue
		}
		version, err := ParseVersion(strings.TrimSpace(rest))
		if err != nil {
			return Clause{}, zerr.Wrap(err, ErrInvalidConstraint.Error())
		}
		return Clause{Op: op, Version: version}, nil
	}

	return Clause{}, zerr.With(ErrInvalidConstraint, "clause", raw)
}

// compile translates the clause list into a Masterminds constraint set.
// The manifest operator "==" is spelled "=" there; all others match.
func compile(clauses []Clause) (*mm.Constraints, error) {
	parts := make([]string, len(clauses))
	for i, clause := range clauses {
		op := string(clause.Op)
		if clause.Op == OpEqual {
			op = "="
		}
		parts[i] = op + clause.Version.String()
	}
	return mm.NewConstraint(strings.Join(parts, ", "))
}

// IsAny reports whether the constraint matches every version.
func (c Constraint) IsAny() bool {
	return len(c.clauses) == 0
}

// Clauses returns a copy of the constraint's clauses.
func (c Constraint) Clauses() []Clause {
	out := make([]Clause, len(c.clauses))
	copy(out, c.clauses)
	return out
}

// Check reports whether v satisfies the constraint.
func (c Constraint) Check(v Version) bool {
	if v.IsZero() {
		return false
	}
	if c.IsAny() {
		return true
	}
	return c.compiled.Check(v.v)
}

// String returns the canonical form: clauses joined by "," with no spaces.
// The any-version constraint serializes to the empty string.
func (c Constraint) String() string {
	if c.IsAny() {
		return ""
	}
	parts := make([]string, len(c.clauses))
	for i, clause := range c.clauses {
		parts[i] = clause.String()
	}
	return strings.Join(parts, ",")
}

// Satisfiable reports whether any version at all can satisfy the constraint.
// A range is unsatisfiable when its effective lower bound lies above its
// effective upper bound, when two exact pins disagree, or when an exclusion
// removes the only admissible version.
func (c Constraint) Satisfiable() bool {
	if c.IsAny() {
		return true
	}

	// An exact pin wins: the pin must satisfy every other clause.
	for _, clause := range c.clauses {
		if clause.Op != OpEqual {
			continue
		}
		for _, other := range c.clauses {
			if !clauseAdmits(other, clause.Version) {
				return false
			}
		}
		return true
	}

	var (
		lower, upper         Version
		lowerIncl, upperIncl bool
		hasLower, hasUpper   bool
	)

	for _, clause := range c.clauses {
		switch clause.Op {
		case OpGreater, OpGreaterEqual:
			incl := clause.Op == OpGreaterEqual
			cmp := CompareVersions(clause.Version, lower)
			if !hasLower || cmp > 0 || (cmp == 0 && !incl) {
				lower, lowerIncl, hasLower = clause.Version, incl, true
			}
		case OpLess, OpLessEqual:
			incl := clause.Op == OpLessEqual
			cmp := CompareVersions(clause.Version, upper)
			if !hasUpper || cmp < 0 || (cmp == 0 && !incl) {
				upper, upperIncl, hasUpper = clause.Version, incl, true
			}
		case OpEqual, OpNotEqual:
			// Pins are handled above; exclusions below.
		}
	}

	if hasLower && hasUpper {
		cmp := CompareVersions(lower, upper)
		if cmp > 0 {
			return false
		}
		if cmp == 0 {
			if !lowerIncl || !upperIncl {
				return false
			}
			// The range collapses to a single point; an exclusion of that
			// point empties it.
			for _, clause := range c.clauses {
				if clause.Op == OpNotEqual && CompareVersions(clause.Version, lower) == 0 {
					return false
				}
			}
		}
	}

	return true
}

// clauseAdmits reports whether a single clause admits the given version.
func clauseAdmits(clause Clause, v Version) bool {
	cmp := CompareVersions(v, clause.Version)
	switch clause.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	default:
		return false
	}
}
