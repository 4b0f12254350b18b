// Package errors provides error handling conventions for the reqy CLI.
//
// It re-exports the cockroachdb/errors constructors used across the
// commands, defines sentinel errors for common failure conditions, an
// ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error or failed validation
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. [ExitCode] and [Suggestion] extract both from any error chain:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	if s := errors.Suggestion(err); s != "" {
//	    fmt.Println("Suggestion:", s)
//	}
//	os.Exit(errors.ExitCode(err))
package errors
