// Package style holds the colors and glyphs shared by the logger and the renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Blue   = lipgloss.Color("#3B82F6")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Star    = "★"
	Pointer = "›"
	Dot     = "●"
	Circle  = "○"
)
