package models

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a successful response carries no text.
var ErrEmptyResponse = errors.New("Empty response from API") //nolint:staticcheck // shown to users verbatim

// StatusError is returned for any non-success HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status code %d\n%s", e.StatusCode, e.Body)
}

// ClientError wraps failures raised while a provider client library performs a call.
type ClientError struct {
	Provider string
	Err      error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ClientError) Unwrap() error { return e.Err }

// UnavailableError reports that a provider client could not be initialised.
// Reason tells the user what to fix.
type UnavailableError struct {
	Provider string
	Reason   string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s client unavailable: %s", e.Provider, e.Reason)
}
