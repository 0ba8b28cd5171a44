package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without
// leaking infrastructure or provider transport details.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrTimeout      = errors.New("timeout")
	ErrUnavailable  = errors.New("service unavailable")
)

// Error pairs a machine-checkable kind (one of the sentinels above) with the
// human-readable message shown to the caller. errors.Is against the sentinel
// still works through Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// E builds a tagged error.
func E(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
