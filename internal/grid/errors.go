package grid

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a table or row lookup miss.
var ErrNotFound = errors.New("not found")

// ValidationError reports a config or input that violates a model
// invariant: empty table name, zero columns, duplicate column key,
// unrecognized kind.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// BackendError wraps a remote-store failure, carrying the store's
// message verbatim. Use errors.Unwrap to reach the underlying error.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *BackendError) Unwrap() error { return e.Err }

// Backend wraps err as a BackendError unless it already carries domain
// meaning (ErrNotFound passes through unchanged).
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &BackendError{Op: op, Err: err}
}

// ParseError reports malformed JSON on import.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }
