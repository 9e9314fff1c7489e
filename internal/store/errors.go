package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// pq unique_violation, the one driver error with a distinct outward meaning.
const uniqueViolationCode = "23505"

// ConflictError reports a uniqueness-constraint violation. Message is safe
// to show to the user.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageError wraps any other persistence failure. The cause is for
// server-side logs only; user-facing surfaces render a generic message.
type StorageError struct {
	cause error
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.cause.Error()
}

func (e *StorageError) Unwrap() error {
	return e.cause
}

// classify translates a driver error into the store taxonomy. Raw driver
// errors never leave this package.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
		return &ConflictError{Message: conflictMessage(pqErr.Detail)}
	}
	return &StorageError{cause: err}
}

// conflictMessage extracts the offending value from a unique-violation
// detail line such as `Key (username)=(bob) already exists.`.
func conflictMessage(detail string) string {
	if _, value, ok := strings.Cut(detail, "="); ok && value != "" {
		return value
	}
	return "The given value already exists while it must be unique!"
}
