// Package scheduling contains the scheduling-integrity core: the session
// model, the overlap evaluator, the conflict classifier, and the status
// transition guard. Everything in this package is a pure computation over
// immutable value snapshots; persistence stays behind the repository layer.
package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the atomic schedulable unit: a venue, a calendar date and a
// time window, owned by exactly one enquiry or booking.
type Session struct {
	ID                  uuid.UUID
	Name                string
	Label               string
	Venue               string
	Date                time.Time // calendar date; any embedded clock/zone is ignored
	StartTime           string    // "HH:MM", 24h, zero-padded
	EndTime             string    // "HH:MM", 24h, zero-padded
	PaxCount            int
	SpecialInstructions string
}

// Schedulable reports whether the session carries every field the overlap
// evaluator needs. Sessions missing a field never overlap anything; they are
// not yet schedulable rather than wildcard-conflicting.
func (s Session) Schedulable() bool {
	return s.Venue != "" && !s.Date.IsZero() && s.StartTime != "" && s.EndTime != ""
}

// Normalize zero-pads the time fields and truncates the date to midnight UTC.
// Invalid time strings are left untouched; Validate reports them.
func (s Session) Normalize() Session {
	s.StartTime = normalizeClock(s.StartTime)
	s.EndTime = normalizeClock(s.EndTime)
	if !s.Date.IsZero() {
		y, m, d := s.Date.Date()
		s.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return s
}

// Validate checks the session invariants and returns one FieldError per
// violated field. A nil return means the session is fully schedulable.
func (s Session) Validate() FieldErrors {
	var errs FieldErrors

	if s.Name == "" {
		errs = append(errs, FieldError{Field: "sessionName", Reason: "session name is required"})
	}
	if s.Venue == "" {
		errs = append(errs, FieldError{Field: "venue", Reason: "venue is required"})
	} else if !IsKnownVenue(s.Venue) {
		errs = append(errs, FieldError{Field: "venue", Reason: fmt.Sprintf("unknown venue %q", s.Venue)})
	}
	if s.Date.IsZero() {
		errs = append(errs, FieldError{Field: "sessionDate", Reason: "session date is required"})
	}

	startOK := validClock(s.StartTime)
	endOK := validClock(s.EndTime)
	if !startOK {
		errs = append(errs, FieldError{Field: "startTime", Reason: "start time must be HH:MM in 24h format"})
	}
	if !endOK {
		errs = append(errs, FieldError{Field: "endTime", Reason: "end time must be HH:MM in 24h format"})
	}
	if startOK && endOK && s.StartTime >= s.EndTime {
		errs = append(errs, FieldError{Field: "endTime", Reason: "end time must be after start time"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// sameCalendarDate compares dates only, discarding clock and zone offset.
func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// normalizeClock reformats a parseable clock value to zero-padded "HH:MM".
func normalizeClock(value string) string {
	if value == "" {
		return value
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		t, err = time.Parse("3:04", value)
		if err != nil {
			return value
		}
	}
	return t.Format("15:04")
}

func validClock(value string) bool {
	if len(value) != 5 {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}
