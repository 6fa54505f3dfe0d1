// Package style holds the colors and markers shared by trail's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Moss  = lipgloss.Color("#4D7C0F")
	Stone = lipgloss.Color("#78716C")
	Amber = lipgloss.Color("#D97706")
	Rust  = lipgloss.Color("#B91C1C")
	Sky   = lipgloss.Color("#0284C7")
)

// Markers.
const (
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Cached  = "◆"
)
