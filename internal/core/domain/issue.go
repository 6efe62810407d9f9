package domain

import "fmt"

// Issue is a single problem found while checking a manifest.
// Line is 1-based; 0 means the issue is not tied to a specific line.
type Issue struct {
	Line    int
	Message string
}

// String formats the issue for terminal output.
func (i Issue) String() string {
	if i.Line == 0 {
		return i.Message
	}
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

// LintResult pairs the declarations that parsed cleanly with the issues
// found alongside them.
type LintResult struct {
	Manifest *Manifest
	Issues   []Issue
}

// OK reports whether the lint pass found no issues.
func (r LintResult) OK() bool {
	return len(r.Issues) == 0
}
