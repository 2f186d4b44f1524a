// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"venuedesk_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Enquiry Domain Events
// =============================================================================

// EnquiryCreated is published when a new enquiry is submitted.
type EnquiryCreated struct {
	BaseEvent
	EnquiryID  uuid.UUID `json:"enquiryId"`
	ClientName string    `json:"clientName"`
	EventDate  time.Time `json:"eventDate"`
	Sessions   int       `json:"sessions"`
}

func (e EnquiryCreated) EventName() string { return "enquiries.created" }

// EnquiryStatusChanged is published after an accepted status transition.
type EnquiryStatusChanged struct {
	BaseEvent
	EnquiryID        uuid.UUID `json:"enquiryId"`
	ClientName       string    `json:"clientName"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	AdvisoryBypassed bool      `json:"advisoryBypassed"`
}

func (e EnquiryStatusChanged) EventName() string { return "enquiries.status.changed" }

// EnquiryReopened is published when a lost or closed enquiry returns to ongoing.
type EnquiryReopened struct {
	BaseEvent
	EnquiryID uuid.UUID `json:"enquiryId"`
	Reason    string    `json:"reason"`
}

func (e EnquiryReopened) EventName() string { return "enquiries.reopened" }

// =============================================================================
// Booking Domain Events
// =============================================================================

// BookingConfirmed is published when an enquiry is converted into a booking.
type BookingConfirmed struct {
	BaseEvent
	BookingID     uuid.UUID `json:"bookingId"`
	BookingNumber string    `json:"bookingNumber"`
	EnquiryID     uuid.UUID `json:"enquiryId"`
	ClientName    string    `json:"clientName"`
}

func (e BookingConfirmed) EventName() string { return "bookings.confirmed" }

// =============================================================================
// Follow-up Domain Events
// =============================================================================

// FollowUpDue is published by the reminder worker when a follow-up comes due.
type FollowUpDue struct {
	BaseEvent
	FollowUpID uuid.UUID `json:"followUpId"`
	EnquiryID  uuid.UUID `json:"enquiryId"`
	DueDate    time.Time `json:"dueDate"`
	Notes      string    `json:"notes"`
}

func (e FollowUpDue) EventName() string { return "followups.due" }

// FollowUpCompleted is published when a follow-up is marked done.
type FollowUpCompleted struct {
	BaseEvent
	FollowUpID uuid.UUID `json:"followUpId"`
	EnquiryID  uuid.UUID `json:"enquiryId"`
}

func (e FollowUpCompleted) EventName() string { return "followups.completed" }
