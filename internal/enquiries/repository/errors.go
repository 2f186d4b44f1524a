package repository

import "errors"

var (
	// ErrNotFound is returned when no enquiry matches the given ID.
	ErrNotFound = errors.New("enquiry not found")

	// ErrWriteConflict is returned when the store rejects a commit because
	// another writer took the slot or changed the row first. Callers must
	// surface this as a fresh conflict, not a generic failure.
	ErrWriteConflict = errors.New("write conflict")

	// ErrSessionsLocked is returned when session edits target an enquiry
	// whose sessions are superseded by a booking.
	ErrSessionsLocked = errors.New("enquiry sessions are superseded by its booking")
)
