// Package cmdexec runs package manager commands for pinlock.
//
// Commands are executed directly (no shell) from an argument vector, inside a
// working directory, with an optional timeout. The command runs in its own
// process group so a timed out listing cannot leave orphaned children behind.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/pinlock/pkg/verbose"
)

// ExecuteFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Context for cancellation
//   - argv: Command name followed by its arguments
//   - dir: Working directory for command execution (empty for the current directory)
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - []byte: Stdout of the command
//   - error: *CommandError when the command ran and failed, or another error
type ExecuteFunc func(ctx context.Context, argv []string, dir string, timeoutSeconds int) ([]byte, error)

// waitDelay bounds how long Run waits for I/O after the process group is killed.
const waitDelay = 2 * time.Second

// Execute is the default command execution function.
var Execute ExecuteFunc = executeCommand

// CommandError describes a command that started but did not succeed.
//
// Fields:
//   - ExitCode: Process exit code, or -1 if the process did not exit normally
//   - Stderr: Trimmed stderr output (stdout when stderr was empty)
//   - TimedOut: Whether the command was killed because of the timeout
//   - Err: Underlying error from os/exec
type CommandError struct {
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Stderr)
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// executeCommand runs argv and returns its stdout.
//
// A non-zero exit is reported as a *CommandError carrying the captured
// stderr. When the timeout elapses the whole process group is killed and the
// error reads "command timed out after N seconds".
func executeCommand(ctx context.Context, argv []string, dir string, timeoutSeconds int) ([]byte, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("empty command")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	verbose.CommandExec(argv, displayDir(dir))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if dir != "" {
		cmd.Dir = dir
	}
	setProcGroup(cmd)
	// Cancellation kills the whole group; WaitDelay stops Run from waiting on
	// pipes still held by orphaned grandchildren.
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		verbose.CommandResult(argv, 0, "")
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && timeoutSeconds > 0 {
		return nil, &CommandError{
			ExitCode: -1,
			TimedOut: true,
			Err:      fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, err),
		}
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The process never started (missing binary, bad directory).
		return nil, err
	}

	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		msg = strings.TrimSpace(stdout.String())
	}
	verbose.CommandResult(argv, exitErr.ExitCode(), msg)

	return nil, &CommandError{ExitCode: exitErr.ExitCode(), Stderr: msg, Err: err}
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// ParseCommandArgs splits a command line into arguments, respecting single and
// double quotes and backslash escapes. It lets configuration carry a command as
// one string ("npm ls --depth=0 --json").
//
// Parameters:
//   - cmdStr: Command string to parse into arguments
//
// Returns:
//   - []string: Parsed arguments, nil for blank input
func ParseCommandArgs(cmdStr string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)
	hasToken := false

	runes := []rune(cmdStr)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' || next == ' ' {
				current.WriteRune(next)
				hasToken = true
				i++
				continue
			}
		}

		if r == '"' || r == '\'' {
			switch {
			case !inQuote:
				inQuote = true
				quoteChar = r
				hasToken = true
			case r == quoteChar:
				inQuote = false
			default:
				current.WriteRune(r)
			}
			continue
		}

		if !inQuote && (r == ' ' || r == '\t') {
			if hasToken {
				args = append(args, current.String())
				current.Reset()
				hasToken = false
			}
			continue
		}

		current.WriteRune(r)
		hasToken = true
	}

	if hasToken {
		args = append(args, current.String())
	}

	return args
}
