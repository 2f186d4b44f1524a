package scheduling

import (
	"testing"
	"time"
)

func TestSessionNormalizeZeroPadsClockAndTruncatesDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	s := Session{
		Name:      "Mehndi",
		Venue:     VenueLawn,
		Date:      time.Date(2025, 6, 1, 18, 30, 0, 0, loc),
		StartTime: "9:00",
		EndTime:   "13:30",
	}

	n := s.Normalize()

	if n.StartTime != "09:00" {
		t.Errorf("expected start 09:00, got %q", n.StartTime)
	}
	if n.EndTime != "13:30" {
		t.Errorf("expected end 13:30, got %q", n.EndTime)
	}
	if !n.Date.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected date truncated to midnight UTC, got %v", n.Date)
	}
}

func TestSessionValidateReportsEveryMissingField(t *testing.T) {
	errs := Session{}.Validate()
	if errs == nil {
		t.Fatalf("expected validation failures for empty session")
	}

	fields := make(map[string]bool)
	for _, fe := range errs {
		fields[fe.Field] = true
	}
	for _, want := range []string{"sessionName", "venue", "sessionDate", "startTime", "endTime"} {
		if !fields[want] {
			t.Errorf("expected failure for field %q, got %+v", want, errs)
		}
	}
}

func TestSessionValidateRejectsUnknownVenue(t *testing.T) {
	s := session("Secret Cellar", "2025-06-01", "10:00", "12:00")
	errs := s.Validate()
	if errs == nil {
		t.Fatalf("expected unknown venue to fail validation")
	}
}

func TestSessionValidateRejectsInvertedWindow(t *testing.T) {
	s := session(VenueLawn, "2025-06-01", "14:00", "10:00")
	errs := s.Validate()
	if errs == nil {
		t.Fatalf("expected inverted time window to fail validation")
	}

	s = session(VenueLawn, "2025-06-01", "10:00", "10:00")
	if s.Validate() == nil {
		t.Fatalf("expected zero-length window to fail validation")
	}
}

func TestSessionValidateAcceptsCompleteSession(t *testing.T) {
	s := session(VenueGrandBallroom, "2025-06-01", "10:00", "14:00")
	if errs := s.Validate(); errs != nil {
		t.Fatalf("expected valid session, got %v", errs)
	}
}
