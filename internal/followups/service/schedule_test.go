package service

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueState(t *testing.T) {
	now := day(2026, time.March, 10)

	cases := []struct {
		name string
		date time.Time
		want string
	}{
		{"yesterday is overdue", day(2026, time.March, 9), DueStateOverdue},
		{"today is due", day(2026, time.March, 10), DueStateDue},
		{"tomorrow is upcoming", day(2026, time.March, 11), DueStateUpcoming},
		{"clock on the date is ignored", time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC), DueStateDue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DueState(tc.date, now); got != tc.want {
				t.Errorf("DueState(%v) = %q, want %q", tc.date, got, tc.want)
			}
		})
	}
}

func TestExpandRepeatsWeekly(t *testing.T) {
	start := day(2026, time.April, 1)
	end := day(2026, time.April, 30)

	dates := ExpandRepeats(start, "weekly", end, end)

	want := []time.Time{
		day(2026, time.April, 1),
		day(2026, time.April, 8),
		day(2026, time.April, 15),
		day(2026, time.April, 22),
		day(2026, time.April, 29),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %v", len(dates), len(want), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestExpandRepeatsCappedAtEventDate(t *testing.T) {
	start := day(2026, time.April, 1)
	repeatEnd := day(2026, time.December, 31)
	eventDate := day(2026, time.April, 10)

	dates := ExpandRepeats(start, "daily", repeatEnd, eventDate)

	if len(dates) != 10 {
		t.Fatalf("got %d occurrences, want 10", len(dates))
	}
	last := dates[len(dates)-1]
	if last.After(eventDate) {
		t.Errorf("last occurrence %v is past the event date %v", last, eventDate)
	}
}

func TestExpandRepeatsBounded(t *testing.T) {
	start := day(2026, time.January, 1)
	farFuture := day(2030, time.January, 1)

	dates := ExpandRepeats(start, "daily", farFuture, farFuture)

	if len(dates) != maxRepeatOccurrences {
		t.Errorf("got %d occurrences, want the %d cap", len(dates), maxRepeatOccurrences)
	}
}

func TestExpandRepeatsMonthly(t *testing.T) {
	start := day(2026, time.January, 15)
	end := day(2026, time.April, 20)

	dates := ExpandRepeats(start, "monthly", end, end)

	want := []time.Time{
		day(2026, time.January, 15),
		day(2026, time.February, 15),
		day(2026, time.March, 15),
		day(2026, time.April, 15),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %v, want %v", dates, want)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestExpandRepeatsUnknownIntervalYieldsStartOnly(t *testing.T) {
	start := day(2026, time.May, 1)

	dates := ExpandRepeats(start, "yearly", day(2027, time.May, 1), day(2027, time.May, 1))

	if len(dates) != 1 || !dates[0].Equal(start) {
		t.Errorf("got %v, want just the start date", dates)
	}
}
