package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates the pin pipeline or the update check failed.
	ExitFailure = 1

	// ExitConfigError indicates invalid configuration or flag usage.
	// The command could not start.
	ExitConfigError = 2
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (ExitFailure or ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess. If err is (or wraps) an ExitError,
// returns its code. Any other error is ExitFailure, so a failed run never
// exits with zero.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != ExitSuccess {
		return exitErr.Code
	}

	return ExitFailure
}

// SubprocessError reports a failed or unparsable run of the listing command.
//
// Fields:
//   - Command: The command line that was executed
//   - Dir: Working directory the command ran in
//   - Output: Trimmed output captured from the command, if any
//   - Err: Underlying exec or decode error
type SubprocessError struct {
	Command []string
	Dir     string
	Output  string
	Err     error
}

// Error implements the error interface.
func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("%s failed in %s: %v", strings.Join(e.Command, " "), e.Dir, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SubprocessError) Unwrap() error { return e.Err }

// FileReadError reports a manifest that is missing or unreadable.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FileParseError reports a manifest that is not a valid JSON object.
type FileParseError struct {
	Path string
	Err  error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *FileParseError) Unwrap() error { return e.Err }

// FileWriteError reports a failure serializing or writing the manifest.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// MissingPackageError reports an installed package that the manifest does not
// declare in any of the searched sections.
//
// Fields:
//   - Package: Name of the installed package
//   - Path: Manifest that was searched
//   - Sections: Section names that were searched, in lookup order
type MissingPackageError struct {
	Package  string
	Path     string
	Sections []string
}

// Error implements the error interface.
func (e *MissingPackageError) Error() string {
	return fmt.Sprintf("package %s not found in %s of %s", e.Package, strings.Join(e.Sections, " or "), e.Path)
}

// RegistryError reports a failed upstream lookup for a package.
type RegistryError struct {
	Package string
	Err     error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry lookup for %s failed: %v", e.Package, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// IsMissingPackage checks if err is (or wraps) a MissingPackageError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *MissingPackageError: The error if found, nil otherwise
//   - bool: true if err is a MissingPackageError
func IsMissingPackage(err error) (*MissingPackageError, bool) {
	var missing *MissingPackageError
	if errors.As(err, &missing) {
		return missing, true
	}
	return nil, false
}

// IsSubprocessError checks if err is (or wraps) a SubprocessError and returns it.
func IsSubprocessError(err error) (*SubprocessError, bool) {
	var sub *SubprocessError
	if errors.As(err, &sub) {
		return sub, true
	}
	return nil, false
}
