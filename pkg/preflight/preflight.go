// Package preflight checks that the listing command can be found before the
// pipeline starts, so a missing package manager is reported with an
// installation hint instead of a bare exec error.
package preflight

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ajxudir/pinlock/pkg/verbose"
)

// CommandResolutionHints maps command names to installation instructions.
var CommandResolutionHints = map[string]string{
	"npm":  "Install Node.js: https://nodejs.org/",
	"npx":  "Install Node.js: https://nodejs.org/",
	"node": "Install Node.js: https://nodejs.org/",
	"yarn": "Install Yarn: https://yarnpkg.com/getting-started/install",
	"pnpm": "Install pnpm: https://pnpm.io/installation",
	"bun":  "Install Bun: https://bun.sh/",
}

// lookPathFunc is swapped in tests.
var lookPathFunc = exec.LookPath

// ValidationError is a command that could not be found.
type ValidationError struct {
	Command string
	Hint    string
}

// Error returns the missing command and how to resolve it.
func (e *ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("command not found: %s\n  Resolution: %s", e.Command, e.Hint)
	}
	return fmt.Sprintf("command not found: %s\n  Resolution: Ensure '%s' is installed and available in your PATH, or set list_command in .pinlock.yml.", e.Command, e.Command)
}

// ValidateCommand checks that argv[0] resolves to an executable.
//
// Parameters:
//   - argv: Command and arguments as they will be executed
//
// Returns:
//   - error: *ValidationError when the executable is missing, or a plain
//     error for an empty command
func ValidateCommand(argv []string) error {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return fmt.Errorf("empty command")
	}
	name := argv[0]

	path, err := lookPathFunc(name)
	if err != nil {
		verbose.Infof("Preflight: %s not found: %v", name, err)
		return &ValidationError{Command: name, Hint: CommandResolutionHints[commandBase(name)]}
	}
	verbose.Infof("Preflight: %s resolved to %s", name, path)
	return nil
}

// commandBase strips directories and a Windows executable suffix so
// "/usr/local/bin/npm" and "npm.cmd" both look up the "npm" hint.
func commandBase(name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".exe", ".cmd", ".bat"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}
