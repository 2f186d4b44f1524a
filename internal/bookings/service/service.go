// Package service implements booking conversion and post-conversion edits.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuedesk_backend/internal/bookings/repository"
	"venuedesk_backend/internal/bookings/transport"
	enqrepo "venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/scheduling"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for bookings.
type Service struct {
	repo      *repository.Repository
	enquiries *enqrepo.Repository
	guard     *scheduling.Guard
	checker   scheduling.AvailabilityChecker
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new bookings service. The checker must be the same instance
// the enquiries guard uses, so both paths see one availability snapshot.
func New(repo *repository.Repository, enquiries *enqrepo.Repository, checker scheduling.AvailabilityChecker, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		enquiries: enquiries,
		guard:     scheduling.NewGuard(checker),
		checker:   checker,
		bus:       bus,
		log:       log,
	}
}

// Convert materializes a booking from a converted enquiry. Every failed
// precondition is reported individually; the transition to booked re-runs
// the conflict check, and the store serializes the final write.
func (s *Service) Convert(ctx context.Context, enquiryID uuid.UUID, req transport.ConvertRequest) (*transport.BookingResponse, error) {
	enquiry, sessions, err := s.enquiries.GetWithSessions(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}

	if reasons := rejectionReasons(req, sessions); len(reasons) > 0 {
		return nil, apperr.Validation("conversion rejected").WithDetails(map[string]any{
			"reasons": reasons,
		})
	}

	candidates := normalizeConversionDates(sessions, enquiry.EventDate, enquiry.EventEndDate)

	decision, err := s.guard.Authorize(ctx, scheduling.TransitionRequest{
		EnquiryID:      enquiryID,
		Current:        enquiry.Status,
		Target:         scheduling.StatusBooked,
		Sessions:       candidates,
		BypassAdvisory: req.BypassAdvisory,
	})
	if err != nil {
		return nil, mapSchedulingErr(err)
	}
	if decision.Report != nil {
		s.log.ConflictDecision(enquiryID.String(), decision.Report.Blocking, decision.Report.Advisory, len(decision.Report.Conflicts))
	}

	booking := repository.Booking{
		ID:               uuid.New(),
		EnquiryID:        enquiryID,
		ClientName:       enquiry.ClientName,
		ContractSignedAt: time.Now().UTC(),
	}

	owned := make([]scheduling.Session, len(candidates))
	for i, c := range candidates {
		c.ID = uuid.New()
		owned[i] = c
	}

	saved, err := s.repo.CreateFromEnquiry(ctx, booking, owned, enquiry.Version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyConverted):
			return nil, apperr.Conflict("enquiry already has a booking")
		case errors.Is(err, repository.ErrWriteConflict):
			// The slot was taken between the check and this commit.
			return nil, apperr.Conflict("the requested slot was taken by a concurrent change, re-evaluate and retry")
		default:
			s.log.DatabaseError("bookings.convert", err)
			return nil, apperr.Wrap(apperr.KindInternal, "failed to create booking", err)
		}
	}

	s.addEnquiryActivity(ctx, enquiryID, "converted_to_booking", map[string]any{
		"bookingId":     saved.ID.String(),
		"bookingNumber": saved.BookingNumber,
	})
	if decision.AdvisoryBypassed {
		s.addEnquiryActivity(ctx, enquiryID, "advisory_override", map[string]any{
			"target":    string(scheduling.StatusBooked),
			"conflicts": decision.Report.Conflicts,
		})
	}

	s.bus.Publish(ctx, events.BookingConfirmed{
		BaseEvent:     events.NewBaseEvent(),
		BookingID:     saved.ID,
		BookingNumber: saved.BookingNumber,
		EnquiryID:     enquiryID,
		ClientName:    saved.ClientName,
	})

	resp := toBookingResponse(saved, owned)
	return &resp, nil
}

// Get returns one booking with its sessions.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	sessions, err := s.repo.ListSessions(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load booking sessions", err)
	}

	resp := toBookingResponse(booking, sessions)
	return &resp, nil
}

// List returns all bookings with their sessions embedded.
func (s *Service) List(ctx context.Context) ([]transport.BookingResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("bookings.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list bookings", err)
	}

	out := make([]transport.BookingResponse, 0, len(items))
	for _, b := range items {
		sessions, err := s.repo.ListSessions(ctx, b.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to load booking sessions", err)
		}
		out = append(out, toBookingResponse(b, sessions))
	}
	return out, nil
}

// ReplaceSessions swaps the booking's session set. The booking is the
// scheduling source of truth for its client, so the new set passes the same
// conflict gate as a conversion.
func (s *Service) ReplaceSessions(ctx context.Context, id uuid.UUID, req transport.ReplaceSessionsRequest) (*transport.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if booking.Status != scheduling.StatusBooked {
		return nil, apperr.Forbidden("sessions of a withdrawn booking cannot be edited")
	}

	sessions, ferrs := buildSessions(req.Sessions)
	if ferrs != nil {
		return nil, ferrs.AppErr()
	}

	report, err := s.checker.Evaluate(ctx, sessions, id)
	if err != nil {
		return nil, mapSchedulingErr(err)
	}
	s.log.ConflictDecision(id.String(), report.Blocking, report.Advisory, len(report.Conflicts))
	if report.Blocking {
		return nil, mapSchedulingErr(&scheduling.ConflictError{Report: report, Blocking: true})
	}
	if report.Advisory && !req.BypassAdvisory {
		return nil, mapSchedulingErr(&scheduling.ConflictError{Report: report})
	}

	if err := s.repo.ReplaceSessions(ctx, id, sessions); err != nil {
		if errors.Is(err, repository.ErrWriteConflict) {
			return nil, apperr.Conflict("the requested slot was taken by a concurrent change, re-evaluate and retry")
		}
		return nil, mapRepoErr(err)
	}

	return s.Get(ctx, id)
}

// ChangeStatus withdraws a booking: booked → cancelled or closed. Bookings
// never return to booked and accept no other edits to status.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, req transport.StatusChangeRequest) (*transport.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	target := scheduling.Status(req.Target)
	if booking.Status != scheduling.StatusBooked ||
		(target != scheduling.StatusCancelled && target != scheduling.StatusClosed) {
		return nil, (&scheduling.TransitionError{From: booking.Status, To: target}).AppErr()
	}
	if target == scheduling.StatusCancelled && req.Reason == "" {
		return nil, scheduling.FieldErrors{{Field: "reason", Reason: "a cancellation reason is required"}}.AppErr()
	}

	saved, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	s.addEnquiryActivity(ctx, saved.EnquiryID, "booking_status_changed", map[string]any{
		"bookingId": saved.ID.String(),
		"from":      string(booking.Status),
		"to":        string(target),
		"reason":    req.Reason,
	})

	resp := toBookingResponse(saved, nil)
	return &resp, nil
}

func (s *Service) addEnquiryActivity(ctx context.Context, enquiryID uuid.UUID, activityType string, metadata map[string]any) {
	err := s.enquiries.AddActivity(ctx, enqrepo.Activity{
		ID:           uuid.New(),
		EnquiryID:    enquiryID,
		ActivityType: activityType,
		Metadata:     metadata,
	})
	if err != nil {
		s.log.DatabaseError("bookings.activity.add", err)
	}
}

// rejectionReasons returns one entry per failed conversion precondition.
func rejectionReasons(req transport.ConvertRequest, sessions []scheduling.Session) []string {
	var reasons []string
	if !req.ContractSigned {
		reasons = append(reasons, "contract is not signed")
	}
	if !req.AdvanceReceived {
		reasons = append(reasons, "advance payment has not been received")
	}
	if len(sessions) == 0 {
		reasons = append(reasons, "enquiry has no sessions")
	}
	for i, s := range sessions {
		if ferrs := s.Validate(); ferrs != nil {
			for _, fe := range ferrs {
				reasons = append(reasons, fmt.Sprintf("session %d: %s", i+1, fe.Reason))
			}
		}
	}
	return reasons
}

// normalizeConversionDates pins session dates to the enquiry's event window:
// single-day events place every session on the event date; multi-day events
// keep each session's day offset from the earliest session, capped at the
// event's last day.
func normalizeConversionDates(sessions []scheduling.Session, eventDate time.Time, eventEndDate *time.Time) []scheduling.Session {
	out := make([]scheduling.Session, len(sessions))
	copy(out, sessions)

	if eventEndDate == nil || sameDay(eventDate, *eventEndDate) {
		for i := range out {
			out[i].Date = dateOnly(eventDate)
		}
		return out
	}

	lastOffset := int(dateOnly(*eventEndDate).Sub(dateOnly(eventDate)).Hours() / 24)

	earliest := sessions[0].Date
	for _, s := range sessions[1:] {
		if s.Date.Before(earliest) {
			earliest = s.Date
		}
	}

	for i := range out {
		offset := int(dateOnly(out[i].Date).Sub(dateOnly(earliest)).Hours() / 24)
		if offset > lastOffset {
			offset = lastOffset
		}
		out[i].Date = dateOnly(eventDate).AddDate(0, 0, offset)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func buildSessions(reqs []transport.SessionRequest) ([]scheduling.Session, scheduling.FieldErrors) {
	var errs scheduling.FieldErrors
	sessions := make([]scheduling.Session, 0, len(reqs))

	for i, r := range reqs {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			errs = append(errs, scheduling.FieldError{
				Field:  fmt.Sprintf("sessions[%d].date", i),
				Reason: "date must be YYYY-MM-DD",
			})
			continue
		}

		session := scheduling.Session{
			ID:                  uuid.New(),
			Name:                r.Name,
			Label:               r.Label,
			Venue:               r.Venue,
			Date:                date,
			StartTime:           r.StartTime,
			EndTime:             r.EndTime,
			PaxCount:            r.PaxCount,
			SpecialInstructions: r.SpecialInstructions,
		}.Normalize()

		if ferrs := session.Validate(); ferrs != nil {
			for _, fe := range ferrs {
				fe.Field = fmt.Sprintf("sessions[%d].%s", i, fe.Field)
				errs = append(errs, fe)
			}
			continue
		}

		sessions = append(sessions, session)
	}

	if errs != nil {
		return nil, errs
	}
	return sessions, nil
}

func mapSchedulingErr(err error) error {
	switch e := err.(type) {
	case scheduling.FieldErrors:
		return e.AppErr()
	case *scheduling.TransitionError:
		return e.AppErr()
	case *scheduling.ConflictError:
		return e.AppErr()
	case *scheduling.AvailabilityError:
		return e.AppErr()
	default:
		return apperr.Wrap(apperr.KindInternal, "transition failed", err)
	}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("booking not found")
	case errors.Is(err, repository.ErrWriteConflict):
		return apperr.Conflict("booking was modified concurrently, retry")
	default:
		return apperr.Wrap(apperr.KindInternal, "storage operation failed", err)
	}
}

func toBookingResponse(b repository.Booking, sessions []scheduling.Session) transport.BookingResponse {
	resp := transport.BookingResponse{
		ID:               b.ID,
		BookingNumber:    b.BookingNumber,
		EnquiryID:        b.EnquiryID,
		ClientName:       b.ClientName,
		Status:           string(b.Status),
		ContractSignedAt: b.ContractSignedAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, transport.SessionResponse{
			ID:                  s.ID,
			Name:                s.Name,
			Label:               s.Label,
			Venue:               s.Venue,
			Date:                s.Date.Format("2006-01-02"),
			StartTime:           s.StartTime,
			EndTime:             s.EndTime,
			PaxCount:            s.PaxCount,
			SpecialInstructions: s.SpecialInstructions,
		})
	}
	return resp
}
