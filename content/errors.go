package content

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed marks a store response that could not be decoded or a
	// record that failed shape validation.
	ErrMalformed = errors.New("malformed record")

	// ErrUnavailable marks a call rejected without reaching the store because
	// the circuit breaker is open.
	ErrUnavailable = errors.New("content store unavailable")
)

// RepositoryError is returned by every Repository operation that fails.
// Op names the operation, Err holds the cause.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("content: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repoErr(op string, err error) error {
	return &RepositoryError{Op: op, Err: err}
}
