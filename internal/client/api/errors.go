package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions callers branch on. Typed errors below
// wrap these, so errors.Is works regardless of which layer produced the value.
var (
	// ErrUnavailable means no usable response arrived (connection refused,
	// DNS failure, context deadline, malformed body).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers HTTP 401 and 403.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers HTTP 404 on single-resource reads.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response from the server. Message carries the
// server's "detail" field when the error body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d", e.Status)
}

// Unwrap maps well-known statuses onto sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}

// TransportError is a request that produced no HTTP response at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return ErrUnavailable }

// ValidationError is a client-side payload check that failed before any
// request was sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
