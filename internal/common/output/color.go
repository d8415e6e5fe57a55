package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Operation colors
	Install = color.New(color.FgGreen)
	Upgrade = color.New(color.FgCyan)
	Remove  = color.New(color.FgRed)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header  = color.New(color.FgWhite, color.Bold)
	Package = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// OperationColor returns the color for a plan operation
func OperationColor(op string) *color.Color {
	switch op {
	case "install":
		return Install
	case "upgrade":
		return Upgrade
	case "remove":
		return Remove
	default:
		return color.New(color.Reset)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// Sprint returns a colored string without printing
func Sprint(c *color.Color, a ...interface{}) string {
	return c.Sprint(a...)
}

// FormatOperation formats an operation tag like "[install]"
func FormatOperation(op string) string {
	return OperationColor(op).Sprintf("[%s]", op)
}

// FormatPackage formats a package name, with its architecture when known
func FormatPackage(name, arch string) string {
	if arch != "" {
		return Package.Sprint(name) + Dim.Sprint(":"+arch)
	}
	return Package.Sprint(name)
}

// FormatVersionChange formats "old → new", omitting empty sides
func FormatVersionChange(from, to string) string {
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return Success.Sprint(to)
	case to == "":
		return Dim.Sprint(from)
	default:
		return fmt.Sprintf("%s → %s", Dim.Sprint(from), Success.Sprint(to))
	}
}

// Box prints a boxed message, one boxed line per line of content
func Box(title, content string) {
	fmt.Println()
	Header.Println("┌─ " + title + " ─")
	fmt.Println("│")
	for _, line := range strings.Split(content, "\n") {
		fmt.Println("│  " + line)
	}
	fmt.Println("│")
	Header.Println("└────────────────")
	fmt.Println()
}
