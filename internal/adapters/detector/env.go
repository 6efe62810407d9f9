// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for command output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeStyled renders with colors and icons for interactive terminals.
	ModeStyled
	// ModePlain renders unstyled text for CI and piped output.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the
// environment. It checks if stdout is a TTY and if CI environment variables
// are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeStyled
}

// ResolveMode applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "styled", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "plain", "ci":
		return ModePlain
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
