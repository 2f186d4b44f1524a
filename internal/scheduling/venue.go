package scheduling

// The venue set is fixed for the property. Session validation rejects any
// venue outside this list.
const (
	VenueGrandBallroom  = "Grand Ballroom"
	VenueBanquetHallA   = "Banquet Hall A"
	VenueBanquetHallB   = "Banquet Hall B"
	VenueLawn           = "Lawn"
	VenueConferenceRoom = "Conference Room"
	VenueRooftopTerrace = "Rooftop Terrace"
	VenuePoolside       = "Poolside"
)

var knownVenues = map[string]struct{}{
	VenueGrandBallroom:  {},
	VenueBanquetHallA:   {},
	VenueBanquetHallB:   {},
	VenueLawn:           {},
	VenueConferenceRoom: {},
	VenueRooftopTerrace: {},
	VenuePoolside:       {},
}

// IsKnownVenue reports whether venue is part of the property's venue set.
func IsKnownVenue(venue string) bool {
	_, ok := knownVenues[venue]
	return ok
}

// Venues returns the fixed venue set in display order.
func Venues() []string {
	return []string{
		VenueGrandBallroom,
		VenueBanquetHallA,
		VenueBanquetHallB,
		VenueLawn,
		VenueConferenceRoom,
		VenueRooftopTerrace,
		VenuePoolside,
	}
}
