package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrEditConflict    = errors.New("edit conflict")
	ErrSeatAlreadyHeld = errors.New("seat(s) are already held by another session")
	ErrHoldNotFound    = errors.New("seat hold not found or has expired")
	ErrBookingTimeout  = errors.New("booking could not be completed in time")
)

// InvalidBookingError reports a malformed booking request, detected before
// any transaction is started.
type InvalidBookingError struct {
	Reason string
}

func (e InvalidBookingError) Error() string {
	return fmt.Sprintf("invalid booking request: %s", e.Reason)
}

// InvalidSeatError reports a requested seat label that does not exist in the
// hall layout of the booking's screening.
type InvalidSeatError struct {
	Label string
}

func (e InvalidSeatError) Error() string {
	return fmt.Sprintf("seat %q does not exist in this hall", e.Label)
}

// SeatConflictError reports the first requested seat that is already booked
// for the same screening. Seat inserts run in request order, so the reported
// label is deterministic for a given request.
type SeatConflictError struct {
	Label string
}

func (e SeatConflictError) Error() string {
	return fmt.Sprintf("seat %q is already booked for this screening", e.Label)
}
