package scheduling

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func record(kind RecordKind, status Status, name string, sessions ...Session) Record {
	return Record{
		ID:         uuid.New(),
		Kind:       kind,
		ClientName: name,
		Status:     status,
		Sessions:   sessions,
	}
}

func TestClassifyBlockingAgainstConvertedEnquiry(t *testing.T) {
	counterpart := record(RecordEnquiry, StatusConverted, "Mehta Wedding",
		session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00"))
	candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "13:00", "16:00")}

	report := Classify(candidates, uuid.New(), []Record{counterpart})

	if !report.Blocking {
		t.Fatalf("expected blocking conflict against converted enquiry")
	}
	if report.Advisory {
		t.Fatalf("did not expect advisory flag, got %+v", report)
	}
	if len(report.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(report.Conflicts))
	}

	c := report.Conflicts[0]
	if c.Severity != SeverityBlocking {
		t.Errorf("expected blocking severity, got %q", c.Severity)
	}
	if c.CounterpartName != "Mehta Wedding" || c.CounterpartStatus != StatusConverted {
		t.Errorf("unexpected counterpart identity: %+v", c)
	}
	if c.Venue != VenueBanquetHallA || c.Date != "2025-06-01" {
		t.Errorf("unexpected conflict location: %+v", c)
	}
}

func TestClassifyAdvisoryAgainstTentativeEnquiry(t *testing.T) {
	for _, status := range []Status{StatusNew, StatusOngoing, StatusQuotationSent} {
		counterpart := record(RecordEnquiry, status, "Sharma Reception",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00"))
		candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "13:00", "16:00")}

		report := Classify(candidates, uuid.New(), []Record{counterpart})

		if report.Blocking {
			t.Errorf("status %q: expected no blocking conflict", status)
		}
		if !report.Advisory {
			t.Errorf("status %q: expected advisory conflict", status)
		}
	}
}

func TestClassifyBlockingAgainstBooking(t *testing.T) {
	counterpart := record(RecordBooking, StatusBooked, "Corporate Offsite",
		session(VenueConferenceRoom, "2025-07-10", "09:00", "18:00"))
	candidates := []Session{session(VenueConferenceRoom, "2025-07-10", "17:00", "20:00")}

	report := Classify(candidates, uuid.New(), []Record{counterpart})

	if !report.Blocking {
		t.Fatalf("expected blocking conflict against booking")
	}
}

func TestClassifyWithdrawnRecordsNeverConflict(t *testing.T) {
	candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")}

	counterparts := []Record{
		record(RecordEnquiry, StatusLost, "Lost Deal",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")),
		record(RecordEnquiry, StatusClosed, "Closed Deal",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")),
		record(RecordBooking, StatusCancelled, "Cancelled Event",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")),
		record(RecordBooking, StatusClosed, "Finished Event",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")),
	}

	report := Classify(candidates, uuid.New(), counterparts)

	if !report.Clean() {
		t.Fatalf("expected withdrawn records to never conflict, got %+v", report)
	}
}

func TestClassifyExcludesOwnRecord(t *testing.T) {
	ownerID := uuid.New()
	self := Record{
		ID:     ownerID,
		Kind:   RecordEnquiry,
		Status: StatusConverted,
		Sessions: []Session{
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00"),
		},
	}
	candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")}

	report := Classify(candidates, ownerID, []Record{self})

	if !report.Clean() {
		t.Fatalf("expected self-comparison to be excluded, got %+v", report)
	}
}

func TestClassifySkipsBookedEnquiries(t *testing.T) {
	// A booked enquiry's sessions are superseded by its booking, which is a
	// separate record in the snapshot. Counting both would double-report.
	booked := record(RecordEnquiry, StatusBooked, "Already Booked",
		session(VenueLawn, "2025-06-01", "10:00", "14:00"))
	candidates := []Session{session(VenueLawn, "2025-06-01", "11:00", "12:00")}

	report := Classify(candidates, uuid.New(), []Record{booked})

	if !report.Clean() {
		t.Fatalf("expected booked enquiry to be skipped, got %+v", report)
	}
}

func TestClassifyBoundaryScenarioNoConflict(t *testing.T) {
	counterpart := record(RecordEnquiry, StatusConverted, "Morning Event",
		session(VenueBanquetHallA, "2025-06-01", "10:00", "12:00"))
	candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "12:00", "14:00")}

	report := Classify(candidates, uuid.New(), []Record{counterpart})

	if !report.Clean() {
		t.Fatalf("expected back-to-back sessions to be conflict-free, got %+v", report)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	ownerID := uuid.New()
	counterparts := []Record{
		record(RecordEnquiry, StatusConverted, "Mehta Wedding",
			session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")),
		record(RecordEnquiry, StatusNew, "Sharma Reception",
			session(VenueBanquetHallA, "2025-06-01", "13:30", "15:00")),
	}
	candidates := []Session{session(VenueBanquetHallA, "2025-06-01", "13:00", "16:00")}

	first := Classify(candidates, ownerID, counterparts)
	second := Classify(candidates, ownerID, counterparts)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports for identical inputs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if !first.Blocking || !first.Advisory {
		t.Fatalf("expected both severities present, got %+v", first)
	}
}
