package tools

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when no grant is available to bind a
// backend to. It is a configuration problem and is never retried.
var ErrMissingCredentials = errors.New("missing credentials: no Google grant is bound to this request")

// UnknownOperationError reports an operation name outside the catalog.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// InvalidArgumentsError reports an argument bag that could not be decoded
// into, or validated against, an operation's argument type.
type InvalidArgumentsError struct {
	Operation string
	Err       error
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Operation, e.Err)
}

func (e *InvalidArgumentsError) Unwrap() error {
	return e.Err
}

// BackendOperationError wraps any failure of the delegated backend call,
// including a failed credential refresh. Its message is the backend's.
type BackendOperationError struct {
	Operation string
	Err       error
}

func (e *BackendOperationError) Error() string {
	return e.Err.Error()
}

func (e *BackendOperationError) Unwrap() error {
	return e.Err
}

// classify leaves typed errors untouched and wraps everything else as a
// BackendOperationError for op.
func classify(op string, err error) error {
	var (
		unknown *UnknownOperationError
		invalid *InvalidArgumentsError
		backend *BackendOperationError
	)
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.As(err, &unknown),
		errors.As(err, &invalid),
		errors.As(err, &backend):
		return err
	default:
		return &BackendOperationError{Operation: op, Err: err}
	}
}
