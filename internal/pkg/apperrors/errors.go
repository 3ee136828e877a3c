// Package apperrors declares the error kinds shared by every domain package.
// Domain sentinels wrap one of these kinds so the transport layer can map
// failures to status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrInvalid marks input that fails validation or business preconditions.
	ErrInvalid = errors.New("invalid request")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks missing or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller acting outside its rights.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks an operation rejected by the current state of a record.
	ErrConflict = errors.New("conflict")
)

// Kind wraps a kind with a domain specific message.
func Kind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
