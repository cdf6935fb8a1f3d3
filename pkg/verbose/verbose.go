// Package verbose provides the --verbose debug logger.
//
// Messages are written with a [DEBUG] prefix to stderr (or the writer set with
// SetWriter) only while logging is enabled. All functions are safe for
// concurrent use; the update checker logs from several goroutines.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
// A nil writer leaves the current writer unchanged.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// emit writes one prefixed line while holding the lock so lines from
// concurrent callers never interleave.
func emit(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(writer, "[DEBUG] "+format+"\n", args...)
}

// Printf prints a formatted verbose message if enabled.
func Printf(format string, args ...any) {
	emit(format, args...)
}

// Info prints a verbose message if enabled.
func Info(msg string) {
	emit("%s", msg)
}

// Infof prints a formatted verbose message if enabled.
func Infof(format string, args ...any) {
	emit(format, args...)
}

// CommandExec logs a command line and its working directory.
//
// Parameters:
//   - argv: The command and its arguments
//   - workDir: The working directory the command runs in
func CommandExec(argv []string, workDir string) {
	emit("Executing: %s\n        Working dir: %s", strings.Join(argv, " "), workDir)
}

// CommandResult logs the outcome of a command.
//
// At most five output lines are shown; longer output is cut to the first
// three plus a count of the remaining lines.
//
// Parameters:
//   - argv: The command that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - output: The command output
func CommandResult(argv []string, exitCode int, output string) {
	if !IsEnabled() {
		return
	}

	cmd := truncate(strings.Join(argv, " "), 60)
	var b strings.Builder
	if exitCode == 0 {
		fmt.Fprintf(&b, "Command succeeded: %s", cmd)
	} else {
		fmt.Fprintf(&b, "Command failed (exit %d): %s", exitCode, cmd)
	}

	if trimmed := strings.TrimSpace(output); trimmed != "" {
		lines := strings.Split(trimmed, "\n")
		shown := lines
		if len(lines) > 5 {
			shown = lines[:3]
		}
		for _, line := range shown {
			fmt.Fprintf(&b, "\n        | %s", truncate(line, 100))
		}
		if len(shown) < len(lines) {
			fmt.Fprintf(&b, "\n        | ... (%d more lines)", len(lines)-len(shown))
		}
	}

	emit("%s", b.String())
}

// ConfigLoaded logs which config file was loaded.
func ConfigLoaded(path string) {
	emit("Config loaded: %s", path)
}

// PackageFiltered logs that a package was skipped and why.
func PackageFiltered(name, reason string) {
	emit("Package '%s' filtered: %s", name, reason)
}

// VersionSelected logs the version chosen for a package.
func VersionSelected(pkg, current, target, reason string) {
	emit("Version selected for '%s': %s -> %s (%s)", pkg, current, target, reason)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
