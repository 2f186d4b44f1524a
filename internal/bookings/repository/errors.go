package repository

import "errors"

var (
	// ErrNotFound is returned when no booking matches the given ID.
	ErrNotFound = errors.New("booking not found")

	// ErrAlreadyConverted is returned when the enquiry already has a booking.
	ErrAlreadyConverted = errors.New("enquiry already has a booking")

	// ErrWriteConflict is returned when the store rejects a commit because a
	// concurrent writer took the slot or changed the row first.
	ErrWriteConflict = errors.New("write conflict")
)
