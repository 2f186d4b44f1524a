// Package service implements the enquiry business logic: intake, session
// edits, the status pipeline and conflict previews.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/enquiries/transport"
	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/scheduling"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"
	"venuedesk_backend/platform/phone"

	"github.com/google/uuid"
)

// FollowUpReader is the narrow interface for surfacing follow-ups that are
// still open when an enquiry leaves the active pipeline. Implemented by an
// adapter over the followups repository.
type FollowUpReader interface {
	ListPendingForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]transport.PendingFollowUp, error)
}

// Store is the persistence surface the service depends on. Implemented by
// the enquiries repository; narrowed to an interface so the status pipeline
// is testable without a database.
type Store interface {
	Create(ctx context.Context, enquiry repository.Enquiry, sessions []scheduling.Session) (repository.Enquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Enquiry, error)
	GetWithSessions(ctx context.Context, id uuid.UUID) (repository.Enquiry, []scheduling.Session, error)
	List(ctx context.Context) ([]repository.Enquiry, error)
	Assign(ctx context.Context, id, salespersonID uuid.UUID) (repository.Enquiry, error)
	ReplaceSessions(ctx context.Context, id uuid.UUID, sessions []scheduling.Session) error
	UpdateStatus(ctx context.Context, id uuid.UUID, update repository.StatusUpdate) (repository.Enquiry, error)
	Reopen(ctx context.Context, id uuid.UUID, notes *string) (repository.Enquiry, error)
	AddActivity(ctx context.Context, activity repository.Activity) error
	ListActivity(ctx context.Context, enquiryID uuid.UUID) ([]repository.Activity, error)
}

// Service provides business logic for enquiries.
type Service struct {
	repo        Store
	guard       *scheduling.Guard
	checker     scheduling.AvailabilityChecker
	bus         events.Bus
	log         *logger.Logger
	phoneRegion string
	followups   FollowUpReader // optional, set after construction
}

// New creates a new enquiries service. The guard and the checker share the
// same availability source so previews and commits see the same snapshot.
func New(repo Store, checker scheduling.AvailabilityChecker, bus events.Bus, log *logger.Logger, phoneRegion string) *Service {
	return &Service{
		repo:        repo,
		guard:       scheduling.NewGuard(checker),
		checker:     checker,
		bus:         bus,
		log:         log,
		phoneRegion: phoneRegion,
	}
}

// SetFollowUpReader injects the follow-up lookup (set after construction to
// break the module cycle with followups).
func (s *Service) SetFollowUpReader(r FollowUpReader) {
	s.followups = r
}

// Create validates and stores a new enquiry with its sessions.
func (s *Service) Create(ctx context.Context, req transport.CreateEnquiryRequest) (*transport.EnquiryResponse, error) {
	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		return nil, apperr.Validation("eventDate must be YYYY-MM-DD")
	}

	var eventEndDate *time.Time
	if req.EventEndDate != "" {
		end, err := parseDate(req.EventEndDate)
		if err != nil {
			return nil, apperr.Validation("eventEndDate must be YYYY-MM-DD")
		}
		if end.Before(eventDate) {
			return nil, apperr.Validation("eventEndDate must not precede eventDate")
		}
		eventEndDate = &end
	}

	sessions, ferrs := buildSessions(req.Sessions)
	if ferrs != nil {
		return nil, ferrs.AppErr()
	}

	enquiry := repository.Enquiry{
		ID:               uuid.New(),
		ClientName:       req.ClientName,
		ClientPhone:      phone.NormalizeE164(req.ClientPhone, s.phoneRegion),
		ClientEmail:      req.ClientEmail,
		EventDate:        eventDate,
		EventEndDate:     eventEndDate,
		Status:           scheduling.StatusNew,
		AssignmentStatus: "unassigned",
		Notes:            nilIfEmpty(req.Notes),
	}

	saved, err := s.repo.Create(ctx, enquiry, sessions)
	if err != nil {
		s.log.DatabaseError("enquiries.create", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create enquiry", err)
	}

	s.bus.Publish(ctx, events.EnquiryCreated{
		BaseEvent:  events.NewBaseEvent(),
		EnquiryID:  saved.ID,
		ClientName: saved.ClientName,
		EventDate:  saved.EventDate,
		Sessions:   len(sessions),
	})

	resp := toEnquiryResponse(saved, sessions)
	return &resp, nil
}

// Get returns one enquiry with its sessions.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.EnquiryResponse, error) {
	enquiry, sessions, err := s.repo.GetWithSessions(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	resp := toEnquiryResponse(enquiry, sessions)
	return &resp, nil
}

// List returns all enquiries ordered by event date.
func (s *Service) List(ctx context.Context) ([]transport.EnquiryResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("enquiries.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list enquiries", err)
	}

	out := make([]transport.EnquiryResponse, len(items))
	for i, e := range items {
		out[i] = toEnquiryResponse(e, nil)
	}
	return out, nil
}

// Assign hands the enquiry to a salesperson.
func (s *Service) Assign(ctx context.Context, id uuid.UUID, req transport.AssignRequest) (*transport.EnquiryResponse, error) {
	enquiry, err := s.repo.Assign(ctx, id, req.SalespersonID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	s.addActivity(ctx, id, "assigned", map[string]any{
		"salespersonId": req.SalespersonID.String(),
	})

	resp := toEnquiryResponse(enquiry, nil)
	return &resp, nil
}

// ReplaceSessions swaps the enquiry's session set. Edits on a booked enquiry
// are rejected; its booking owns the schedule.
func (s *Service) ReplaceSessions(ctx context.Context, id uuid.UUID, req transport.ReplaceSessionsRequest) (*transport.EnquiryResponse, error) {
	sessions, ferrs := buildSessions(req.Sessions)
	if ferrs != nil {
		return nil, ferrs.AppErr()
	}

	if err := s.repo.ReplaceSessions(ctx, id, sessions); err != nil {
		return nil, mapRepoErr(err)
	}

	s.addActivity(ctx, id, "sessions_replaced", map[string]any{
		"sessionCount": len(sessions),
	})

	return s.Get(ctx, id)
}

// EvaluateConflicts runs the classifier over candidate sessions without
// changing any state. The report is advisory input for the operator.
func (s *Service) EvaluateConflicts(ctx context.Context, req transport.ConflictPreviewRequest) (*scheduling.Report, error) {
	sessions, ferrs := buildSessions(req.Sessions)
	if ferrs != nil {
		return nil, ferrs.AppErr()
	}

	ownerID := uuid.Nil
	if req.EnquiryID != nil {
		ownerID = *req.EnquiryID
	}

	report, err := s.checker.Evaluate(ctx, sessions, ownerID)
	if err != nil {
		return nil, mapSchedulingErr(err)
	}

	s.log.ConflictDecision(ownerID.String(), report.Blocking, report.Advisory, len(report.Conflicts))
	return &report, nil
}

// RequestStatusChange drives the enquiry through one guarded transition.
// Transitions into converted consult the availability checker; an advisory
// hit requires the caller's one-shot bypass and is recorded in the activity
// log when used.
func (s *Service) RequestStatusChange(ctx context.Context, id uuid.UUID, req transport.StatusChangeRequest) (*transport.StatusChangeResponse, error) {
	enquiry, sessions, err := s.repo.GetWithSessions(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	target := scheduling.Status(req.Target)

	// The booked state is reachable only through booking conversion, which
	// creates the booking row and enforces the contract and advance
	// preconditions. A direct status edit never lands there.
	if target == scheduling.StatusBooked {
		return nil, (&scheduling.TransitionError{From: enquiry.Status, To: target}).AppErr()
	}

	var followUpDate *time.Time
	if req.FollowUpDate != "" {
		d, err := parseDate(req.FollowUpDate)
		if err != nil {
			return nil, apperr.Validation("followUpDate must be YYYY-MM-DD")
		}
		followUpDate = &d
	}

	decision, err := s.guard.Authorize(ctx, scheduling.TransitionRequest{
		EnquiryID:       id,
		Current:         enquiry.Status,
		Target:          target,
		Sessions:        sessions,
		LossReason:      req.LossReason,
		ClosureReason:   req.ClosureReason,
		Notes:           req.Notes,
		FollowUpDateSet: followUpDate != nil || enquiry.FollowUpDate != nil,
		BypassAdvisory:  req.BypassAdvisory,
	})
	if err != nil {
		return nil, mapSchedulingErr(err)
	}

	if decision.Report != nil {
		s.log.ConflictDecision(id.String(), decision.Report.Blocking, decision.Report.Advisory, len(decision.Report.Conflicts))
	}

	saved, err := s.repo.UpdateStatus(ctx, id, repository.StatusUpdate{
		Target:          target,
		LossReason:      nilIfEmpty(req.LossReason),
		ClosureReason:   nilIfEmpty(req.ClosureReason),
		Notes:           nilIfEmpty(req.Notes),
		FollowUpDate:    followUpDate,
		ExpectedVersion: enquiry.Version,
	})
	if err != nil {
		if errors.Is(err, repository.ErrWriteConflict) {
			// Another writer took the slot between the check and this
			// commit. Surface it exactly like a blocking conflict.
			return nil, apperr.Conflict("the requested slot was taken by a concurrent change, re-evaluate and retry")
		}
		return nil, mapRepoErr(err)
	}

	s.addActivity(ctx, id, "status_changed", map[string]any{
		"from": string(enquiry.Status),
		"to":   string(target),
	})
	if decision.AdvisoryBypassed {
		s.addActivity(ctx, id, "advisory_override", map[string]any{
			"target":    string(target),
			"conflicts": decision.Report.Conflicts,
		})
	}

	s.bus.Publish(ctx, events.EnquiryStatusChanged{
		BaseEvent:        events.NewBaseEvent(),
		EnquiryID:        id,
		ClientName:       saved.ClientName,
		From:             string(enquiry.Status),
		To:               string(target),
		AdvisoryBypassed: decision.AdvisoryBypassed,
	})

	resp := &transport.StatusChangeResponse{
		Enquiry:          toEnquiryResponse(saved, sessions),
		Report:           decision.Report,
		AdvisoryBypassed: decision.AdvisoryBypassed,
	}

	// Every accepted transition leaves open follow-ups in place; surface
	// them so the operator can complete or reschedule them deliberately.
	if s.followups != nil {
		pending, err := s.followups.ListPendingForEnquiry(ctx, id)
		if err != nil {
			s.log.Warn("failed to list pending follow-ups", "enquiry_id", id.String(), "error", err.Error())
		} else {
			resp.PendingFollowUps = pending
		}
	}

	return resp, nil
}

// Reopen returns a lost or closed enquiry to ongoing with a recorded reason.
func (s *Service) Reopen(ctx context.Context, id uuid.UUID, req transport.ReopenRequest) (*transport.EnquiryResponse, error) {
	enquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if err := s.guard.AuthorizeReopen(enquiry.Status, req.Reason); err != nil {
		return nil, mapSchedulingErr(err)
	}

	saved, err := s.repo.Reopen(ctx, id, nilIfEmpty(req.Notes))
	if err != nil {
		return nil, mapRepoErr(err)
	}

	s.addActivity(ctx, id, "reopened", map[string]any{
		"from":   string(enquiry.Status),
		"reason": req.Reason,
	})

	s.bus.Publish(ctx, events.EnquiryReopened{
		BaseEvent: events.NewBaseEvent(),
		EnquiryID: id,
		Reason:    req.Reason,
	})

	resp := toEnquiryResponse(saved, nil)
	return &resp, nil
}

// ListActivity returns the enquiry's audit timeline, newest first.
func (s *Service) ListActivity(ctx context.Context, id uuid.UUID) ([]transport.ActivityResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, mapRepoErr(err)
	}

	items, err := s.repo.ListActivity(ctx, id)
	if err != nil {
		s.log.DatabaseError("enquiries.activity.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list activity", err)
	}

	out := make([]transport.ActivityResponse, len(items))
	for i, a := range items {
		out[i] = transport.ActivityResponse{
			ID:           a.ID,
			ActorID:      a.ActorID,
			ActivityType: a.ActivityType,
			Metadata:     a.Metadata,
			CreatedAt:    a.CreatedAt,
		}
	}
	return out, nil
}

func (s *Service) addActivity(ctx context.Context, enquiryID uuid.UUID, activityType string, metadata map[string]any) {
	var actorID *uuid.UUID
	if v, ok := ctx.Value(logger.ActorIDKey).(string); ok {
		if parsed, err := uuid.Parse(v); err == nil {
			actorID = &parsed
		}
	}

	err := s.repo.AddActivity(ctx, repository.Activity{
		ID:           uuid.New(),
		EnquiryID:    enquiryID,
		ActorID:      actorID,
		ActivityType: activityType,
		Metadata:     metadata,
	})
	if err != nil {
		// The audit write never fails the main operation.
		s.log.DatabaseError("enquiries.activity.add", err)
	}
}

// buildSessions normalizes and validates the requested sessions, assigning
// fresh IDs. All field errors across all sessions are reported together.
func buildSessions(reqs []transport.SessionRequest) ([]scheduling.Session, scheduling.FieldErrors) {
	var errs scheduling.FieldErrors
	sessions := make([]scheduling.Session, 0, len(reqs))

	for i, r := range reqs {
		date, err := parseDate(r.Date)
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

// mapSchedulingErr converts the guard's typed errors into application errors.
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
		return apperr.NotFound("enquiry not found")
	case errors.Is(err, repository.ErrSessionsLocked):
		return apperr.Conflict("enquiry sessions are managed by its booking")
	case errors.Is(err, repository.ErrWriteConflict):
		return apperr.Conflict("enquiry was modified concurrently, retry")
	default:
		return apperr.Wrap(apperr.KindInternal, "storage operation failed", err)
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toEnquiryResponse(e repository.Enquiry, sessions []scheduling.Session) transport.EnquiryResponse {
	resp := transport.EnquiryResponse{
		ID:               e.ID,
		ClientName:       e.ClientName,
		ClientPhone:      e.ClientPhone,
		ClientEmail:      e.ClientEmail,
		EventDate:        e.EventDate.Format("2006-01-02"),
		Status:           string(e.Status),
		AssignmentStatus: e.AssignmentStatus,
		SalespersonID:    e.SalespersonID,
		Version:          e.Version,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.EventEndDate != nil {
		resp.EventEndDate = e.EventEndDate.Format("2006-01-02")
	}
	if e.FollowUpDate != nil {
		resp.FollowUpDate = e.FollowUpDate.Format("2006-01-02")
	}
	if e.LossReason != nil {
		resp.LossReason = *e.LossReason
	}
	if e.ClosureReason != nil {
		resp.ClosureReason = *e.ClosureReason
	}
	if e.Notes != nil {
		resp.Notes = *e.Notes
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionResponse(s))
	}
	return resp
}

func toSessionResponse(s scheduling.Session) transport.SessionResponse {
	return transport.SessionResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Label:               s.Label,
		Venue:               s.Venue,
		Date:                s.Date.Format("2006-01-02"),
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		PaxCount:            s.PaxCount,
		SpecialInstructions: s.SpecialInstructions,
	}
}
