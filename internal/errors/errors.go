package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates the run found work to do or could not resolve an
	// editor (missing extensions, failed queries, no editor, CLI conflict).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the failure kinds surfaced by extcheck.
var (
	// ErrNoEditorFound indicates no supported editor produced a verified command.
	ErrNoEditorFound = errors.New("no editor CLI found")

	// ErrCLIConflict indicates the tool runs inside a generic editor terminal
	// but the generic command on the search path belongs to another editor.
	ErrCLIConflict = errors.New("editor CLI conflict")

	// ErrExtensionQuery indicates an editor's extension listing failed.
	ErrExtensionQuery = errors.New("extension query failed")

	// ErrMissingExtensions indicates at least one required extension is absent.
	ErrMissingExtensions = errors.New("missing required extensions")

	// ErrInstallFailed indicates at least one extension install did not succeed.
	ErrInstallFailed = errors.New("extension install failed")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// New is re-exported so callers importing this package under the name
// "errors" keep access to plain error construction.
func New(msg string) error {
	return errors.New(msg)
}

// Newf formats an error message.
func Newf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with msg. A nil err stays nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. A nil err stays nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string

	// Reported marks errors whose message has already been shown.
	Reported bool
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: extcheck doctor",
	}
}

// NewReportedError creates an ExitError for a failure the command has
// already presented to the user.
func NewReportedError(err error, code int) *ExitError {
	return &ExitError{
		Err:      err,
		Code:     code,
		Reported: true,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Code extracts the exit code carried by err. Errors that are not an
// ExitError map to ExitUser; a nil error maps to ExitSuccess.
func Code(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
