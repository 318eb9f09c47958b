// internal/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateName       = errors.New("player name already registered")
	ErrUnknownPlayer       = errors.New("player not found")
	ErrUnknownCourt        = errors.New("court not found")
	ErrCourtFull           = errors.New("court is full")
	ErrAlreadyOnCourt      = errors.New("player is already on that court")
	ErrCourtNotEmpty       = errors.New("court still has players")
	// ErrNonEmptyCourtRemoval blocks a court-count decrease as a whole when any
	// court in the removal set still holds players.
	ErrNonEmptyCourtRemoval = errors.New("courts to remove still have players")
)

// ValidationError marks failures detected before any write is attempted.
// Operations returning one leave the store untouched.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }

func (e ValidationError) Unwrap() error { return e.Err }

func validationf(format string, args ...any) error {
	return ValidationError{Err: fmt.Errorf(format, args...)}
}

func validation(err error) error {
	return ValidationError{Err: err}
}

// IsValidation reports whether err was rejected before touching the store.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
