package main

// Exit codes for the aihelp CLI.
const (
	ExitOK            = 0 // Reply written.
	ExitInvalidArgs   = 1 // Bad flags, config or missing prompt.
	ExitRequestFailed = 2 // The provider call returned an error reply.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

func exitError(code int, msg string) *exitCodeError {
	return &exitCodeError{code: code, msg: msg}
}
