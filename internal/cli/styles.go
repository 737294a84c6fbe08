package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle       = "Jivescope 📈"
	appDescription = "Find the dominant frequency, harmonics and rough SNR of a .wav capture, and plot its spectrum."
)

// Styles
var (
	// Title style - bold trace green
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TraceGreen).
			MarginBottom(1)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AlertRed)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(BezelGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LabelWhite)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(appTitle))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintUsage prints the one-line usage message on stderr
func PrintUsage(name string) {
	fmt.Fprintf(os.Stderr, "%s %s <file.wav>\n", KeyStyle.Render("Usage:"), name)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintFileNotFound reports an input path that does not exist
func PrintFileNotFound(path string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("File not found:"), path)
}
