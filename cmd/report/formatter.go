package report

import (
	"fmt"
	"io"
	"os"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// ConsoleFormatter handles all terminal output formatting
type ConsoleFormatter struct {
	out     io.Writer
	noColor bool
}

// NewConsoleFormatter creates a new console formatter writing to stdout
func NewConsoleFormatter(noColor bool) *ConsoleFormatter {
	return NewConsoleFormatterTo(os.Stdout, noColor)
}

// NewConsoleFormatterTo creates a console formatter writing to out
func NewConsoleFormatterTo(out io.Writer, noColor bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		out:     out,
		noColor: noColor,
	}
}

// PrintSectionHeader prints a formatted section header
func (f *ConsoleFormatter) PrintSectionHeader(title string) {
	if f.noColor {
		fmt.Fprintf(f.out, "\n=== %s ===\n\n", title)
	} else {
		fmt.Fprintf(f.out, "\n%s%s=== %s ===%s\n\n", ColorCyan, ColorBold, title, ColorReset)
	}
}

// PrintError prints an error message with formatting
func (f *ConsoleFormatter) PrintError(message string) {
	f.print(ColorRed+ColorBold, "ERROR", message)
}

// PrintSuccess prints a success message with formatting
func (f *ConsoleFormatter) PrintSuccess(message string) {
	f.print(ColorGreen+ColorBold, "SUCCESS", message)
}

// PrintInfo prints an info message with formatting
func (f *ConsoleFormatter) PrintInfo(message string) {
	f.print(ColorBlue, "INFO", message)
}

// PrintWarning prints a warning message with formatting
func (f *ConsoleFormatter) PrintWarning(message string) {
	f.print(ColorYellow+ColorBold, "WARNING", message)
}

// PrintItem prints an indented list entry
func (f *ConsoleFormatter) PrintItem(item string) {
	fmt.Fprintf(f.out, "       - %s\n", item)
}

func (f *ConsoleFormatter) print(color, label, message string) {
	if f.noColor {
		color = ""
	}
	reset := ColorReset
	if color == "" {
		reset = ""
	}
	fmt.Fprintf(f.out, "%s[%s] %s%s\n", color, label, message, reset)
}
