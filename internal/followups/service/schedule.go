package service

import "time"

// Due states derived from the server clock.
const (
	DueStateUpcoming = "upcoming"
	DueStateDue      = "due"
	DueStateOverdue  = "overdue"
)

// maxRepeatOccurrences bounds a repeat expansion regardless of the dates
// supplied, so a wide window never creates an unbounded series.
const maxRepeatOccurrences = 26

// DueState classifies a follow-up date against the given clock: before
// today is overdue, today is due, after today is upcoming.
func DueState(followUpDate, now time.Time) string {
	fy, fm, fd := followUpDate.Date()
	ny, nm, nd := now.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	switch {
	case f.Before(n):
		return DueStateOverdue
	case f.Equal(n):
		return DueStateDue
	default:
		return DueStateUpcoming
	}
}

// ExpandRepeats returns the full occurrence series for a repeating
// follow-up: the start date itself plus every interval step up to and
// including the earliest of repeatEnd and cap. Unknown intervals yield just
// the start date.
func ExpandRepeats(start time.Time, interval string, repeatEnd, cap time.Time) []time.Time {
	limit := repeatEnd
	if cap.Before(limit) {
		limit = cap
	}

	dates := []time.Time{start}
	current := start
	for len(dates) < maxRepeatOccurrences {
		next := advance(current, interval)
		if next.Equal(current) || next.After(limit) {
			break
		}
		dates = append(dates, next)
		current = next
	}
	return dates
}

func advance(date time.Time, interval string) time.Time {
	switch interval {
	case "daily":
		return date.AddDate(0, 0, 1)
	case "weekly":
		return date.AddDate(0, 0, 7)
	case "biweekly":
		return date.AddDate(0, 0, 14)
	case "monthly":
		return date.AddDate(0, 1, 0)
	default:
		return date
	}
}
