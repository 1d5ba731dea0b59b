// Package errors provides error handling conventions for the extcheck CLI.
//
// This package defines sentinel errors for the failure kinds the tool
// reports, an ExitError type for CLI exit code handling, and exit code
// constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, exterrors.ErrCLIConflict) {
//	    // tell the user to reinstall the shell command
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every checked editor has all required extensions
//   - ExitUser (1): missing extensions, failed queries, no editor, CLI conflict
//   - ExitSystem (2): I/O or permission failures outside the check itself
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. Use [Code] to recover the exit status from any error chain:
//
//	if err := commands.Execute(); err != nil {
//	    os.Exit(exterrors.Code(err))
//	}
package errors
