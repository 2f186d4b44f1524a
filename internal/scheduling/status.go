package scheduling

// Status is the lifecycle state of an enquiry or booking. Modeling it as a
// closed set with a lookup table makes illegal transitions a data question
// rather than string comparisons scattered through services.
type Status string

const (
	StatusNew           Status = "new"
	StatusQuotationSent Status = "quotation_sent"
	StatusOngoing       Status = "ongoing"
	StatusConverted     Status = "converted"
	StatusLost          Status = "lost"
	StatusClosed        Status = "closed"
	StatusBooked        Status = "booked"

	// Booking-only state.
	StatusCancelled Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusNew:           {},
	StatusQuotationSent: {},
	StatusOngoing:       {},
	StatusConverted:     {},
	StatusLost:          {},
	StatusClosed:        {},
	StatusBooked:        {},
	StatusCancelled:     {},
}

// IsKnownStatus reports whether s is a recognized lifecycle state.
func IsKnownStatus(s Status) bool {
	_, ok := knownStatuses[s]
	return ok
}

// Withdrawn reports whether the status represents a withdrawn commitment.
// Withdrawn records never conflict with anything.
func (s Status) Withdrawn() bool {
	return s == StatusLost || s == StatusClosed || s == StatusCancelled
}

// Committed reports whether the status represents a real-world commitment.
// Overlaps against committed records are blocking.
func (s Status) Committed() bool {
	return s == StatusConverted || s == StatusBooked
}

// enquiryTransitions is the legal forward-edge table for enquiry statuses.
// Reopen (lost/closed back to ongoing) is a separate explicit operation and
// deliberately not part of this table. The booked state is reached only
// through booking conversion.
var enquiryTransitions = map[Status][]Status{
	StatusNew:           {StatusQuotationSent, StatusLost, StatusClosed},
	StatusQuotationSent: {StatusOngoing, StatusLost, StatusClosed},
	StatusOngoing:       {StatusConverted, StatusLost, StatusClosed},
	StatusConverted:     {StatusBooked, StatusLost, StatusClosed},
	StatusBooked:        {},
	StatusLost:          {},
	StatusClosed:        {},
}

// CanTransition reports whether the enquiry status edge from → to is in the
// legal transition table.
func CanTransition(from, to Status) bool {
	for _, next := range enquiryTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanReopen reports whether an enquiry in the given state may be reopened.
func CanReopen(from Status) bool {
	return from == StatusLost || from == StatusClosed
}
