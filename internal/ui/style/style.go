// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Teal   = lipgloss.Color("#0E9F8C")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Shared styles for command output.
var (
	// Name renders a tool name.
	Name = lipgloss.NewStyle().Bold(true)

	// Subtle renders secondary detail like constraints and paths.
	Subtle = lipgloss.NewStyle().Foreground(Slate)

	// OK renders success markers.
	OK = lipgloss.NewStyle().Foreground(Green)

	// Fail renders failure markers.
	Fail = lipgloss.NewStyle().Foreground(Red)

	// Warn renders warning markers.
	Warn = lipgloss.NewStyle().Foreground(Yellow)
)
