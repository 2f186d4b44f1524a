package scheduling

// Overlaps reports whether two sessions occupy the same venue at overlapping
// times on the same calendar date. Time windows are half-open: a session
// ending at 12:00 does not collide with one starting at 12:00.
//
// Sessions missing any required field never overlap. The zero-padded HH:MM
// comparison is equivalent to comparing minutes of day.
func Overlaps(a, b Session) bool {
	if !a.Schedulable() || !b.Schedulable() {
		return false
	}
	if a.Venue != b.Venue {
		return false
	}
	if !sameCalendarDate(a.Date, b.Date) {
		return false
	}
	return a.StartTime < b.EndTime && a.EndTime > b.StartTime
}
