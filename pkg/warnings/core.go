// Package warnings writes non-fatal diagnostics that are shown regardless of
// --verbose, such as packages skipped during enumeration or lookup.
package warnings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.Mutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes a formatted warning line prefixed with "Warning: ".
// A trailing newline is added when the message does not end in one.
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	mu.Lock()
	defer mu.Unlock()
	_, _ = io.WriteString(warnWriter, "Warning: "+msg)
}

// WarningWriter returns the currently configured warning writer.
func WarningWriter() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
