package scheduling

import (
	"testing"
	"time"
)

func session(venue, date, start, end string) Session {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return Session{
		Name:      "Test Session",
		Venue:     venue,
		Date:      d,
		StartTime: start,
		EndTime:   end,
	}
}

func TestOverlapsDetectsCollisionOnSameVenueAndDate(t *testing.T) {
	a := session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")
	b := session(VenueBanquetHallA, "2025-06-01", "13:00", "16:00")

	if !Overlaps(a, b) {
		t.Fatalf("expected overlap for 10:00-14:00 vs 13:00-16:00")
	}
	if !Overlaps(b, a) {
		t.Fatalf("expected overlap to be symmetric")
	}
}

func TestOverlapsDifferentVenueNeverConflicts(t *testing.T) {
	a := session(VenueBanquetHallA, "2025-06-01", "10:00", "14:00")
	b := session(VenueBanquetHallB, "2025-06-01", "10:00", "14:00")

	if Overlaps(a, b) {
		t.Fatalf("expected no overlap across venues")
	}
}

func TestOverlapsDifferentDateNeverConflicts(t *testing.T) {
	a := session(VenueLawn, "2025-06-01", "10:00", "14:00")
	b := session(VenueLawn, "2025-06-02", "10:00", "14:00")

	if Overlaps(a, b) {
		t.Fatalf("expected no overlap across dates")
	}
}

func TestOverlapsBackToBackSessionsDoNotConflict(t *testing.T) {
	a := session(VenueGrandBallroom, "2025-06-01", "10:00", "12:00")
	b := session(VenueGrandBallroom, "2025-06-01", "12:00", "14:00")

	if Overlaps(a, b) {
		t.Fatalf("expected touching windows to be conflict-free")
	}
	if Overlaps(b, a) {
		t.Fatalf("expected touching windows to be conflict-free in both orders")
	}
}

func TestOverlapsEqualStartsConflict(t *testing.T) {
	a := session(VenueGrandBallroom, "2025-06-01", "10:00", "11:00")
	b := session(VenueGrandBallroom, "2025-06-01", "10:00", "15:00")

	if !Overlaps(a, b) {
		t.Fatalf("expected equal starts with positive-length windows to conflict")
	}
}

func TestOverlapsMissingFieldsNeverConflict(t *testing.T) {
	complete := session(VenueLawn, "2025-06-01", "10:00", "14:00")

	cases := []struct {
		name   string
		mutate func(*Session)
	}{
		{"missing venue", func(s *Session) { s.Venue = "" }},
		{"missing date", func(s *Session) { s.Date = time.Time{} }},
		{"missing start", func(s *Session) { s.StartTime = "" }},
		{"missing end", func(s *Session) { s.EndTime = "" }},
	}

	for _, tc := range cases {
		incomplete := session(VenueLawn, "2025-06-01", "10:00", "14:00")
		tc.mutate(&incomplete)
		if Overlaps(complete, incomplete) {
			t.Errorf("%s: expected incomplete session to never overlap", tc.name)
		}
	}
}

func TestOverlapsComparesCalendarDateOnly(t *testing.T) {
	a := session(VenueLawn, "2025-06-01", "10:00", "14:00")
	b := session(VenueLawn, "2025-06-01", "11:00", "12:00")

	// An embedded clock or zone offset on the stored date must not matter.
	loc := time.FixedZone("IST", 5*3600+1800)
	b.Date = time.Date(2025, 6, 1, 23, 45, 0, 0, loc)

	if !Overlaps(a, b) {
		t.Fatalf("expected overlap when calendar dates match regardless of embedded clock")
	}
}
