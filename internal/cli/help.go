package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles - scope theme
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TraceGreen)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ScopeGreen).
			Italic(true)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ScopeGreen)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(TraceGreen).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(ScopeTeal).
			Bold(true)
)

// helpRow is one "label  description" line of the help screen
type helpRow struct {
	label string
	help  string
}

// StyledHelpPrinter creates a custom help printer with Lipgloss styling
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		_, err := fmt.Fprint(ctx.Stdout, renderHelp(ctx.Model))
		return err
	}
}

// renderHelp lays out title, usage, arguments and flags of the model
func renderHelp(app *kong.Application) string {
	args := positionalRows(app.Node)
	flags := flagRows(app.Node)

	// Labels share one column across both sections
	width := 0
	for _, row := range append(append([]helpRow{}, args...), flags...) {
		width = max(width, len(row.label))
	}

	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render(appTitle) + "\n\n")
	sb.WriteString(helpDescStyle.Render(appDescription) + "\n\n")

	sb.WriteString(helpSectionStyle.Render("Usage:") + "\n")
	sb.WriteString("  " + usageLine(app.Node) + "\n")

	writeSection(&sb, "Arguments:", args, width, helpArgStyle)
	writeSection(&sb, "Flags:", flags, width, helpFlagStyle)

	sb.WriteString("\n")
	return sb.String()
}

// usageLine builds "<name> <positional>... [flags]" from the model
func usageLine(node *kong.Node) string {
	parts := []string{node.Name}
	for _, arg := range node.Positional {
		parts = append(parts, arg.Summary())
	}
	if len(node.Flags) > 0 {
		parts = append(parts, "[flags]")
	}
	return strings.Join(parts, " ")
}

func positionalRows(node *kong.Node) []helpRow {
	rows := make([]helpRow, 0, len(node.Positional))
	for _, arg := range node.Positional {
		rows = append(rows, helpRow{label: arg.Summary(), help: arg.Help})
	}
	return rows
}

// flagRows lists visible flags; every jivescope flag is a switch, so no
// value placeholders are shown
func flagRows(node *kong.Node) []helpRow {
	rows := make([]helpRow, 0, len(node.Flags))
	for _, f := range node.Flags {
		if f.Hidden {
			continue
		}

		label := "--" + f.Name
		if f.Short != 0 {
			label = fmt.Sprintf("-%c, %s", f.Short, label)
		}
		rows = append(rows, helpRow{label: label, help: f.Help})
	}
	return rows
}

func writeSection(sb *strings.Builder, title string, rows []helpRow, width int, style lipgloss.Style) {
	if len(rows) == 0 {
		return
	}

	sb.WriteString("\n" + helpSectionStyle.Render(title) + "\n")
	for _, row := range rows {
		// Pad before styling so escape codes do not skew the column
		padding := strings.Repeat(" ", width-len(row.label)+2)
		sb.WriteString("  " + style.Render(row.label) + padding + row.help + "\n")
	}
}
