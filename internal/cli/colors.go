package cli

import "github.com/charmbracelet/lipgloss"

// Scope colour palette 📈
// Phosphor greens of an analogue oscilloscope, shared by help and messages
var (
	TraceGreen = lipgloss.Color("#39FF14") // Bright trace
	ScopeGreen = lipgloss.Color("#00C853") // Graticule
	ScopeTeal  = lipgloss.Color("#00897B") // Dim trace
	AlertRed   = lipgloss.Color("#E53935") // Errors

	// Accent colours
	BezelGray  = lipgloss.Color("#9E9E9E") // Subtle text
	LabelWhite = lipgloss.Color("#FFFFFF")
)
