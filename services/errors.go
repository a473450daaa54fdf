// services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the appointment does not exist or belongs to
	// another tailor.
	ErrNotFound = errors.New("appointment not found")

	// ErrConflict means the requested interval overlaps an active
	// appointment. Nothing was written.
	ErrConflict = errors.New("time slot is not available")

	// ErrStoreUnavailable means the database could not be reached or the
	// query failed. Callers must not treat this as "slot booked".
	ErrStoreUnavailable = errors.New("appointment store unavailable")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
