package errors

import (
	"strings"
)

// ErrorHint provides an actionable resolution hint for a common error.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "executable file not found",
		Hint:       "Package manager is not installed",
		Resolution: "Install Node.js: https://nodejs.org/ or set list_command in .pinlock.yml",
	},
	{
		Pattern:    "not found in dependencies or devDependencies",
		Hint:       "Installed package is not declared in the manifest",
		Resolution: "Add it to package.json, remove it with npm uninstall, or add it to the denylist",
	},
	{
		Pattern:    "failed to parse",
		Hint:       "Check file syntax",
		Resolution: "Validate the JSON syntax using a linter or online validator",
	},
	{
		Pattern:    "command timed out",
		Hint:       "Package manager command took too long",
		Resolution: "Increase timeout_seconds in .pinlock.yml",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Verify the path exists and you have read permissions",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "network error",
		Hint:       "Network connectivity issue",
		Resolution: "Check internet connection, proxy settings and the registry URL",
	},
}

// GetHint returns an actionable hint for the given error.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// EnhanceErrorWithHint appends the matching hint, if any, to the error message.
//
// Example:
//
//	fmt.Fprintf(os.Stderr, "Error: %s\n", errors.EnhanceErrorWithHint(err))
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	if hint := GetHint(err); hint != "" {
		return err.Error() + "\n  \U0001F4A1 " + hint
	}
	return err.Error()
}
