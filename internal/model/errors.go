package model

import "fmt"

// ExitCode defines the process exit codes of the dev-tools CLI.
// Scripts can branch on these to tell configuration problems from git
// failures.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully. A picker
	// dismissed by the user also exits with this code.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigNotFound indicates the copy-config or settings file could
	// not be located or parsed.
	ExitConfigNotFound ExitCode = 2

	// ExitManifestInvalid indicates package.json is missing or lacks the
	// "name" or "files" property.
	ExitManifestInvalid ExitCode = 3

	// ExitGitError indicates a git command failed.
	ExitGitError ExitCode = 5

	// ExitNodeNotFound indicates the requested worktree node id is not in
	// the current tree.
	ExitNodeNotFound ExitCode = 6

	// ExitUserCancelled indicates the user declined a confirmation.
	ExitUserCancelled ExitCode = 7

	// ExitFilesystemError indicates a directory read, glob expansion or
	// copy failed during propagation.
	ExitFilesystemError ExitCode = 8
)

// CLIError is the error type returned by every dev-tools operation that
// can fail. It carries the exit code the CLI should terminate with and a
// user-facing message.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the user-facing description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error if present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
