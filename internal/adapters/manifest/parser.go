// Package manifest implements parsing, serialization and loading of the
// rig.txt tool manifest.
//
// The format is line-oriented: blank lines are ignored, "#" starts a comment
// (whole-line, or trailing when preceded by whitespace), and every other line
// declares a tool name optionally followed by comma-separated version
// constraint clauses, e.g.:
//
//	# test tooling
//	pytest>=6.2.4,<7.0.0
//	mypy
//	ruff==0.4.2   # pinned until the formatter settles
package manifest

import (
	"bufio"
	"io"
	"strings"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

const commentMarker = "#"

// Parse reads a manifest strictly, failing on the first problem.
func Parse(r io.Reader) (*domain.Manifest, error) {
	m := domain.NewManifest()

	err := scanLines(r, func(lineNo int, line string) error {
		decl, ok, err := parseLine(line)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "line", lineNo)
		}
		if !ok {
			return nil
		}
		if err := m.Add(decl); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "line", lineNo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Lint reads a manifest leniently, collecting every problem it finds.
// Declarations that parse cleanly are kept; an unsatisfiable constraint is
// reported but the declaration is still kept, since it is syntactically valid.
// The returned error covers read failures only.
func Lint(r io.Reader) (domain.LintResult, error) {
	m := domain.NewManifest()
	var issues []domain.Issue

	err := scanLines(r, func(lineNo int, line string) error {
		decl, ok, err := parseLine(line)
		if err != nil {
			issues = append(issues, domain.Issue{Line: lineNo, Message: err.Error()})
			return nil
		}
		if !ok {
			return nil
		}

		if !decl.Constraint.Satisfiable() {
			issues = append(issues, domain.Issue{
				Line:    lineNo,
				Message: domain.ErrUnsatisfiableConstraint.Error() + ": " + decl.Constraint.String(),
			})
		}

		if err := m.Add(decl); err != nil {
			issues = append(issues, domain.Issue{Line: lineNo, Message: err.Error()})
		}
		return nil
	})
	if err != nil {
		return domain.LintResult{}, err
	}

	return domain.LintResult{Manifest: m, Issues: issues}, nil
}

// scanLines feeds every line of r, with its 1-based number, to fn.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	return nil
}

// parseLine parses a single manifest line. The second return value is false
// for blank and comment-only lines.
func parseLine(raw string) (domain.Declaration, bool, error) {
	line := stripComment(raw)
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Declaration{}, false, nil
	}

	name, constraintRaw := splitEntry(line)
	name = strings.TrimSpace(name)

	if err := domain.ValidateName(name); err != nil {
		return domain.Declaration{}, false, err
	}

	constraint, err := domain.ParseConstraint(constraintRaw)
	if err != nil {
		return domain.Declaration{}, false, err
	}

	return domain.Declaration{Name: name, Constraint: constraint}, true, nil
}

// stripComment removes a comment from the line. A whole line is a comment
// when its first non-blank character is "#"; a trailing comment must be
// preceded by whitespace so names containing "#" never parse silently.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, commentMarker) {
		return ""
	}

	for i := range len(line) {
		if line[i] == '#' && i > 0 && isSpace(line[i-1]) {
			return line[:i]
		}
	}
	return line
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// splitEntry separates the tool name from the constraint expression at the
// first operator character.
func splitEntry(line string) (name, constraint string) {
	if i := strings.IndexAny(line, "<>!="); i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}
