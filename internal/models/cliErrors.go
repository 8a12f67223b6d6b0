package models

import (
	"errors"
	"fmt"
)

// Common exit codes (keep small + consistent).
const (
	ExitOK       = 0
	ExitRuntime  = 1 // generic runtime failure
	ExitUsage    = 2 // invalid flags / bad CLI usage
	ExitConfig   = 3 // invalid config / validation failure
	ExitIO       = 4 // local filesystem / stdout issues
	ExitExternal = 6 // remote page could not be fetched
	ExitParse    = 7 // page fetched but its table could not be parsed
)

// Stable error codes used for matching and logging.
const (
	CodeFetchFailed    = "FETCH_FAILED"
	CodeParseStructure = "PARSE_STRUCTURE"
	CodeMalformedRow   = "PARSE_MALFORMED_ROW"
	CodeConfigInvalid  = "CFG_INVALID"
	CodeUsage          = "USAGE"
	CodeIOFailed       = "IO_FAILED"
)

// CLIError is a user-facing error with optional hint + wrapped cause.
// Message/Hint are intended to be printed to the terminal.
type CLIError struct {
	Code     string // stable identifier (e.g. "FETCH_FAILED")
	Message  string // user-facing message
	Hint     string // optional "try this"
	ExitCode int    // process exit code

	Cause error // underlying error (optional)
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *CLIError) WithHint(h string) *CLIError {
	if e == nil {
		return nil
	}
	e.Hint = h
	return e
}

func (e *CLIError) WithCause(err error) *CLIError {
	if e == nil {
		return nil
	}
	e.Cause = err
	return e
}

func NewCLIError(code string, exitCode int, msg string) *CLIError {
	if exitCode == 0 {
		exitCode = ExitRuntime
	}
	return &CLIError{
		Code:     code,
		Message:  msg,
		ExitCode: exitCode,
	}
}

// Wrap creates a CLIError while preserving an underlying cause.
func Wrap(code string, exitCode int, msg string, cause error) *CLIError {
	return NewCLIError(code, exitCode, msg).WithCause(cause)
}

// IsCode checks whether err (or any wrapped error) is a CLIError with the given code.
func IsCode(err error, code string) bool {
	var ce *CLIError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// FormatForUser builds the terminal output string for an error.
// The cause is included on its own line so "could not fetch" and
// "could not parse" stay distinguishable at a glance.
func FormatForUser(err error) (text string, exitCode int) {
	if err == nil {
		return "", ExitOK
	}

	var ce *CLIError
	if errors.As(err, &ce) {
		exit := ce.ExitCode
		if exit == 0 {
			exit = ExitRuntime
		}

		text = "error: " + ce.Message
		if ce.Cause != nil {
			text += "\ncause: " + ce.Cause.Error()
		}
		if ce.Hint != "" {
			text += "\nhint: " + ce.Hint
		}
		return text, exit
	}

	return "error: " + err.Error(), ExitRuntime
}
