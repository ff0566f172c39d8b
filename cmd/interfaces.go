// Package cmd provides the nghint command line interface.
//
// Commands depend on small interfaces (Linter, Initializer) so they can be
// exercised without touching the file system; Engine is the implementation
// the binary uses.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/lex00/nghint/config"
	"github.com/lex00/nghint/lint"
	"github.com/lex00/nghint/logging"
)

// Process exit codes.
const (
	ExitOK       = 0 // no error-severity diagnostics
	ExitProblems = 1 // error diagnostics, too many warnings or unreadable files
	ExitInput    = 2 // invalid configuration or input
)

// LintOptions contains options for the lint command.
type LintOptions struct {
	Config *config.Config
	Log    *logging.Logger
}

// InitOptions contains options for the init command.
type InitOptions struct {
	Files []string
	Force bool
}

// Linter lints the files named by a configuration.
type Linter interface {
	Lint(ctx context.Context, opts LintOptions) ([]lint.FileResult, error)
}

// Initializer writes a starter configuration file.
type Initializer interface {
	Init(ctx context.Context, path string, opts InitOptions) error
}

// ExitError carries the exit code a failed command should produce.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func inputError(err error) error {
	return &ExitError{Code: ExitInput, Err: err}
}

func problems(format string, args ...any) error {
	return &ExitError{Code: ExitProblems, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors that carry no code, such as flag parsing errors, are input errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitInput
}
