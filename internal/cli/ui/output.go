package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Out receives every message printed by this package
var Out io.Writer = os.Stdout

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
)

func printLine(c *color.Color, symbol, format string, args ...interface{}) {
	c.Fprintf(Out, "%s %s\n", symbol, fmt.Sprintf(format, args...))
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	printLine(successColor, "✓", format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	printLine(errorColor, "✗", format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	printLine(warningColor, "⚠", format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	printLine(infoColor, "ℹ", format, args...)
}

// PrintBold prints a bold line
func PrintBold(format string, args ...interface{}) {
	boldColor.Fprintln(Out, fmt.Sprintf(format, args...))
}

// PrintFormBanner prints the header of an interactive encoding session
func PrintFormBanner(server string) {
	width := 60
	content := lipgloss.JoinVertical(lipgloss.Center,
		Styles.Title.Width(width).Align(lipgloss.Center).Render("Event Log Preparation"),
		Styles.Key.Width(width).Align(lipgloss.Center).Render(server),
	)
	banner := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(0, 2).
		Render(content)
	fmt.Fprintln(Out, banner)
}

// PrintSuccessBox prints a titled message in a green box
func PrintSuccessBox(title, content string) {
	fmt.Fprintln(Out, Styles.SuccessBox.Render(successColor.Sprint(title)+"\n\n"+content))
}

// PrintErrorBox prints a titled message in a red box
func PrintErrorBox(title, content string) {
	fmt.Fprintln(Out, Styles.ErrorBox.Render(errorColor.Sprint(title)+"\n\n"+content))
}
