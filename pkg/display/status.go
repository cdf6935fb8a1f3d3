// Package display prints the colored status lines that end every run.
//
// Colors are dropped automatically when the destination is not a terminal or
// NO_COLOR is set.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Success writes msg as a bold green line.
func Success(w io.Writer, msg string) {
	_, _ = successColor.Fprintln(w, msg)
}

// Successf writes a formatted green line.
func Successf(w io.Writer, format string, args ...any) {
	Success(w, fmt.Sprintf(format, args...))
}

// Error writes msg as a bold red line.
func Error(w io.Writer, msg string) {
	_, _ = errorColor.Fprintln(w, msg)
}

// SetColorEnabled forces colors on or off and returns a restore function.
func SetColorEnabled(enabled bool) func() {
	previous := color.NoColor
	color.NoColor = !enabled
	return func() { color.NoColor = previous }
}
