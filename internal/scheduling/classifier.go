package scheduling

import (
	"github.com/google/uuid"
)

// Severity classifies a collision by the counterpart's lifecycle state.
type Severity string

const (
	// SeverityBlocking marks an overlap against a committed (converted or
	// booked) record. The transition that triggered the check must be
	// rejected; there is no override.
	SeverityBlocking Severity = "blocking"
	// SeverityAdvisory marks an overlap against a still-tentative record.
	// The caller may proceed with an explicit acknowledgement.
	SeverityAdvisory Severity = "advisory"
)

// RecordKind distinguishes enquiry counterparts from booking counterparts.
type RecordKind string

const (
	RecordEnquiry RecordKind = "enquiry"
	RecordBooking RecordKind = "booking"
)

// Record is an immutable snapshot of one enquiry or booking as the
// classifier sees it: identity, lifecycle state and owned sessions.
type Record struct {
	ID         uuid.UUID
	Kind       RecordKind
	ClientName string
	Status     Status
	Sessions   []Session
}

// Conflict describes one collision for operator display.
type Conflict struct {
	Severity          Severity   `json:"severity"`
	Venue             string     `json:"venue"`
	Date              string     `json:"date"` // YYYY-MM-DD
	CandidateStart    string     `json:"candidateStart"`
	CandidateEnd      string     `json:"candidateEnd"`
	CounterpartStart  string     `json:"counterpartStart"`
	CounterpartEnd    string     `json:"counterpartEnd"`
	CounterpartID     uuid.UUID  `json:"counterpartId"`
	CounterpartKind   RecordKind `json:"counterpartKind"`
	CounterpartName   string     `json:"counterpartName"`
	CounterpartStatus Status     `json:"counterpartStatus"`
}

// Report aggregates all collisions found for a candidate session set.
type Report struct {
	Blocking  bool       `json:"blocking"`
	Advisory  bool       `json:"advisory"`
	Conflicts []Conflict `json:"conflicts"`
}

// Clean reports whether no collision of any severity was found.
func (r Report) Clean() bool {
	return !r.Blocking && !r.Advisory
}

// Classify tests every candidate session against every session of every
// other record and tags each collision by the counterpart's status:
//
//   - counterpart booked (a booking) or converted: blocking
//   - counterpart new, ongoing or quotation_sent: advisory
//   - counterpart lost, closed or cancelled: skipped, withdrawn commitments
//     never conflict
//   - counterpart enquiry already booked: skipped, its booking is the
//     scheduling source of truth and appears separately in the snapshot
//
// The record owning the candidates is excluded; sessions of one record never
// conflict with each other. Classify is a pure function over the snapshot
// and never mutates stored state.
func Classify(candidates []Session, ownerID uuid.UUID, counterparts []Record) Report {
	var report Report

	for _, rec := range counterparts {
		if rec.ID == ownerID {
			continue
		}
		if rec.Status.Withdrawn() {
			continue
		}
		if rec.Kind == RecordEnquiry && rec.Status == StatusBooked {
			continue
		}

		severity := SeverityAdvisory
		if rec.Status.Committed() {
			severity = SeverityBlocking
		}

		for _, candidate := range candidates {
			for _, counterpart := range rec.Sessions {
				if !Overlaps(candidate, counterpart) {
					continue
				}

				report.Conflicts = append(report.Conflicts, Conflict{
					Severity:          severity,
					Venue:             candidate.Venue,
					Date:              candidate.Date.Format("2006-01-02"),
					CandidateStart:    candidate.StartTime,
					CandidateEnd:      candidate.EndTime,
					CounterpartStart:  counterpart.StartTime,
					CounterpartEnd:    counterpart.EndTime,
					CounterpartID:     rec.ID,
					CounterpartKind:   rec.Kind,
					CounterpartName:   rec.ClientName,
					CounterpartStatus: rec.Status,
				})

				if severity == SeverityBlocking {
					report.Blocking = true
				} else {
					report.Advisory = true
				}
			}
		}
	}

	return report
}
