package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
)

type stubSource struct {
	records []scheduling.Record
	err     error
}

func (s stubSource) SnapshotRecords(ctx context.Context) ([]scheduling.Record, error) {
	return s.records, s.err
}

func snapshotSession(venue, start, end string) scheduling.Session {
	return scheduling.Session{
		ID:        uuid.New(),
		Name:      "Reception",
		Venue:     venue,
		Date:      time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
	}
}

func TestEvaluateMergesAllSources(t *testing.T) {
	enquirySource := stubSource{records: []scheduling.Record{{
		ID:       uuid.New(),
		Kind:     scheduling.RecordEnquiry,
		Status:   scheduling.StatusOngoing,
		Sessions: []scheduling.Session{snapshotSession(scheduling.VenueLawn, "10:00", "12:00")},
	}}}
	bookingSource := stubSource{records: []scheduling.Record{{
		ID:       uuid.New(),
		Kind:     scheduling.RecordBooking,
		Status:   scheduling.StatusBooked,
		Sessions: []scheduling.Session{snapshotSession(scheduling.VenueLawn, "11:00", "13:00")},
	}}}

	svc := NewAvailabilityService(enquirySource)
	svc.AddSource(bookingSource)

	report, err := svc.Evaluate(context.Background(),
		[]scheduling.Session{snapshotSession(scheduling.VenueLawn, "11:30", "12:30")}, uuid.New())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if !report.Blocking {
		t.Error("overlap with a booked record should be blocking")
	}
	if !report.Advisory {
		t.Error("overlap with an ongoing enquiry should be advisory")
	}
	if len(report.Conflicts) != 2 {
		t.Errorf("got %d conflicts, want one per counterpart", len(report.Conflicts))
	}
}

func TestEvaluateFailsClosedOnSnapshotError(t *testing.T) {
	svc := NewAvailabilityService(stubSource{err: errors.New("connection refused")})

	_, err := svc.Evaluate(context.Background(),
		[]scheduling.Session{snapshotSession(scheduling.VenueLawn, "10:00", "11:00")}, uuid.Nil)

	var availErr *scheduling.AvailabilityError
	if !errors.As(err, &availErr) {
		t.Fatalf("expected *scheduling.AvailabilityError, got %v", err)
	}
}

func TestEvaluateExcludesTheOwner(t *testing.T) {
	ownerID := uuid.New()
	svc := NewAvailabilityService(stubSource{records: []scheduling.Record{{
		ID:       ownerID,
		Kind:     scheduling.RecordEnquiry,
		Status:   scheduling.StatusOngoing,
		Sessions: []scheduling.Session{snapshotSession(scheduling.VenueLawn, "10:00", "12:00")},
	}}})

	report, err := svc.Evaluate(context.Background(),
		[]scheduling.Session{snapshotSession(scheduling.VenueLawn, "10:00", "12:00")}, ownerID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !report.Clean() {
		t.Errorf("a record must not conflict with itself: %+v", report.Conflicts)
	}
}
