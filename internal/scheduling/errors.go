package scheduling

import (
	"fmt"
	"strings"

	"venuedesk_backend/platform/apperr"
)

// FieldError reports one invalid or missing field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldErrors aggregates field-level validation failures. The whole set is
// reported to the caller; nothing is partially applied.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AppErr maps the validation failures to a typed application error.
func (fe FieldErrors) AppErr() *apperr.Error {
	return apperr.Validation("validation failed").WithDetails(fe)
}

// TransitionError reports a status edit that is not in the transition table.
// It is always fatal to the request and never retried.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}

// AppErr maps the illegal transition to a typed application error.
func (e *TransitionError) AppErr() *apperr.Error {
	return apperr.Forbidden(e.Error()).WithDetails(map[string]string{
		"from": string(e.From),
		"to":   string(e.To),
	})
}

// ConflictError carries the conflict report that stopped a transition.
// Blocking conflicts are never bypassable; advisory conflicts fail only
// when the caller has not supplied the one-shot bypass flag.
type ConflictError struct {
	Report   Report
	Blocking bool
}

func (e *ConflictError) Error() string {
	if e.Blocking {
		return "blocking scheduling conflict"
	}
	return "advisory scheduling conflict requires acknowledgement"
}

// AppErr maps the conflict to a typed application error carrying the report.
func (e *ConflictError) AppErr() *apperr.Error {
	return apperr.Conflict(e.Error()).WithDetails(e.Report)
}

// AvailabilityError means the availability snapshot could not be fetched, so
// the absence of conflicts cannot be guaranteed. It is surfaced distinctly
// from "no conflict found" so callers can block by default.
type AvailabilityError struct {
	Err error
}

func (e *AvailabilityError) Error() string {
	return "availability unknown: " + e.Err.Error()
}

func (e *AvailabilityError) Unwrap() error {
	return e.Err
}

// AppErr maps the unknown availability to a typed application error.
func (e *AvailabilityError) AppErr() *apperr.Error {
	return apperr.Unavailable("availability could not be verified, try again")
}
