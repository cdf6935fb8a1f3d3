// Package errors provides the error types and exit codes used by pinlock.
//
// Every stage of the pin pipeline fails with one of the typed errors below so
// the CLI can classify and report the failure once:
//   - SubprocessError: the listing command failed or printed unparsable output
//   - FileReadError: the manifest could not be read
//   - FileParseError: the manifest is not a JSON object
//   - MissingPackageError: an installed package is declared in neither section
//   - FileWriteError: the manifest could not be written back
//   - RegistryError: an upstream version lookup failed
//
// Error Checking:
//
// All types support errors.As, and the Is* helpers wrap it:
//
//	if missing, ok := errors.IsMissingPackage(err); ok {
//	    fmt.Println(missing.Package)
//	}
//
// Exit Codes:
//   - ExitSuccess (0): The operation completed
//   - ExitFailure (1): The operation failed
//   - ExitConfigError (2): Invalid configuration or command-line usage
package errors
