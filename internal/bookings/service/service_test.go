package service

import (
	"strings"
	"testing"
	"time"

	"venuedesk_backend/internal/bookings/transport"
	"venuedesk_backend/internal/scheduling"
)

func validSession(date string) scheduling.Session {
	d, _ := time.Parse("2006-01-02", date)
	return scheduling.Session{
		Name:      "Reception",
		Venue:     scheduling.VenueGrandBallroom,
		Date:      d,
		StartTime: "18:00",
		EndTime:   "22:00",
		PaxCount:  120,
	}
}

func TestRejectionReasonsListsEveryFailedPrecondition(t *testing.T) {
	req := transport.ConvertRequest{ContractSigned: false, AdvanceReceived: false}

	reasons := rejectionReasons(req, nil)

	if len(reasons) != 3 {
		t.Fatalf("got %d reasons, want 3: %v", len(reasons), reasons)
	}
	for _, want := range []string{"contract", "advance", "sessions"} {
		found := false
		for _, r := range reasons {
			if strings.Contains(r, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("no reason mentions %q: %v", want, reasons)
		}
	}
}

func TestRejectionReasonsPassesWhenPreconditionsHold(t *testing.T) {
	req := transport.ConvertRequest{ContractSigned: true, AdvanceReceived: true}

	reasons := rejectionReasons(req, []scheduling.Session{validSession("2026-06-01")})

	if len(reasons) != 0 {
		t.Errorf("expected no reasons, got %v", reasons)
	}
}

func TestRejectionReasonsReportsInvalidSessionsByPosition(t *testing.T) {
	req := transport.ConvertRequest{ContractSigned: true, AdvanceReceived: true}
	broken := validSession("2026-06-01")
	broken.EndTime = "17:00" // before start

	reasons := rejectionReasons(req, []scheduling.Session{validSession("2026-06-01"), broken})

	if len(reasons) == 0 {
		t.Fatal("expected at least one reason for the invalid session")
	}
	for _, r := range reasons {
		if !strings.HasPrefix(r, "session 2:") {
			t.Errorf("reason %q not attributed to session 2", r)
		}
	}
}

func TestNormalizeConversionDatesSingleDay(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	sessions := []scheduling.Session{
		validSession("2026-06-01"),
		validSession("2026-06-03"),
	}

	out := normalizeConversionDates(sessions, eventDate, nil)

	for i, s := range out {
		if !s.Date.Equal(eventDate) {
			t.Errorf("session %d date = %v, want event date %v", i, s.Date, eventDate)
		}
	}
}

func TestNormalizeConversionDatesMultiDayKeepsOffsets(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC)
	sessions := []scheduling.Session{
		validSession("2026-06-01"),
		validSession("2026-06-02"),
		validSession("2026-06-03"),
	}

	out := normalizeConversionDates(sessions, eventDate, &endDate)

	want := []time.Time{
		time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC),
	}
	for i := range want {
		if !out[i].Date.Equal(want[i]) {
			t.Errorf("session %d date = %v, want %v", i, out[i].Date, want[i])
		}
	}
}

func TestNormalizeConversionDatesCapsAtEventEnd(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC)
	sessions := []scheduling.Session{
		validSession("2026-06-01"),
		validSession("2026-06-09"), // offset 8 days, event only spans 2
	}

	out := normalizeConversionDates(sessions, eventDate, &endDate)

	if !out[1].Date.Equal(endDate) {
		t.Errorf("overflowing session date = %v, want capped to %v", out[1].Date, endDate)
	}
}

func TestNormalizeConversionDatesDoesNotMutateInput(t *testing.T) {
	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	original := validSession("2026-06-01")
	sessions := []scheduling.Session{original}

	normalizeConversionDates(sessions, eventDate, nil)

	if !sessions[0].Date.Equal(original.Date) {
		t.Errorf("input session date changed to %v", sessions[0].Date)
	}
}
