// Package service implements the follow-up scheduler: due/overdue state,
// repeat expansion and completion.
package service

import (
	"context"
	"errors"
	"time"

	enqrepo "venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/events"
	"venuedesk_backend/internal/followups/repository"
	"venuedesk_backend/internal/followups/transport"
	"venuedesk_backend/internal/scheduling"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
)

// ReminderScheduler enqueues one reminder task per follow-up. Implemented
// by the asynq client in internal/scheduler; nil disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, f repository.FollowUp) error
}

// Service provides business logic for follow-ups.
type Service struct {
	repo      *repository.Repository
	enquiries *enqrepo.Repository
	reminders ReminderScheduler
	bus       events.Bus
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new follow-ups service.
func New(repo *repository.Repository, enquiries *enqrepo.Repository, reminders ReminderScheduler, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		enquiries: enquiries,
		reminders: reminders,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
}

// Create schedules a follow-up, expanding a repeat rule into its bounded
// occurrence series capped at the enquiry's event date.
func (s *Service) Create(ctx context.Context, enquiryID uuid.UUID, req transport.CreateFollowUpRequest) ([]transport.FollowUpResponse, error) {
	enquiry, err := s.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}
	if enquiry.Status.Withdrawn() {
		return nil, apperr.Forbidden("follow-ups cannot be scheduled on a withdrawn enquiry")
	}

	start, err := time.Parse("2006-01-02", req.FollowUpDate)
	if err != nil {
		return nil, apperr.Validation("followUpDate must be YYYY-MM-DD")
	}

	followUpTime := req.FollowUpTime
	if followUpTime == "" {
		followUpTime = "09:00"
	}

	dates := []time.Time{start}
	var repeatEnd *time.Time
	if req.RepeatFollowUp {
		if req.RepeatInterval == "" {
			return nil, scheduling.FieldErrors{{Field: "repeatInterval", Reason: "repeat interval is required for repeating follow-ups"}}.AppErr()
		}
		end := enquiry.EventDate
		if req.RepeatEndDate != "" {
			parsed, err := time.Parse("2006-01-02", req.RepeatEndDate)
			if err != nil {
				return nil, apperr.Validation("repeatEndDate must be YYYY-MM-DD")
			}
			end = parsed
		}
		repeatEnd = &end
		dates = ExpandRepeats(start, req.RepeatInterval, end, enquiry.EventDate)
	}

	items := make([]repository.FollowUp, len(dates))
	for i, d := range dates {
		items[i] = repository.FollowUp{
			ID:             uuid.New(),
			EnquiryID:      enquiryID,
			FollowUpDate:   d,
			FollowUpTime:   followUpTime,
			Notes:          req.Notes,
			RepeatFollowUp: req.RepeatFollowUp,
			RepeatInterval: nilIfEmpty(req.RepeatInterval),
			RepeatEndDate:  repeatEnd,
		}
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		s.log.DatabaseError("followups.create", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create follow-ups", err)
	}

	// The enquiry card shows the soonest pending follow-up.
	if err := s.enquiries.SetFollowUpDate(ctx, enquiryID, dates[0]); err != nil {
		s.log.DatabaseError("followups.set_enquiry_date", err)
	}

	if s.reminders != nil {
		for _, f := range items {
			if err := s.reminders.ScheduleReminder(ctx, f); err != nil {
				// A lost reminder never fails the creation.
				s.log.Warn("failed to schedule reminder", "follow_up_id", f.ID.String(), "error", err.Error())
			}
		}
	}

	return s.toResponses(items), nil
}

// ListForEnquiry returns all follow-ups of an enquiry.
func (s *Service) ListForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]transport.FollowUpResponse, error) {
	if _, err := s.enquiries.GetByID(ctx, enquiryID); err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}

	items, err := s.repo.ListByEnquiry(ctx, enquiryID)
	if err != nil {
		s.log.DatabaseError("followups.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list follow-ups", err)
	}
	return s.toResponses(items), nil
}

// ListDue returns every pending follow-up due today or earlier.
func (s *Service) ListDue(ctx context.Context) ([]transport.FollowUpResponse, error) {
	items, err := s.repo.ListDueBy(ctx, s.now())
	if err != nil {
		s.log.DatabaseError("followups.due", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list due follow-ups", err)
	}
	return s.toResponses(items), nil
}

// Complete marks one follow-up as done.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*transport.FollowUpResponse, error) {
	f, err := s.repo.Complete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("follow-up not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to complete follow-up", err)
	}

	s.bus.Publish(ctx, events.FollowUpCompleted{
		BaseEvent:  events.NewBaseEvent(),
		FollowUpID: f.ID,
		EnquiryID:  f.EnquiryID,
	})

	resp := s.toResponse(f)
	return &resp, nil
}

// CompleteAll closes every pending follow-up of an enquiry.
func (s *Service) CompleteAll(ctx context.Context, enquiryID uuid.UUID) (*transport.BulkCompleteResponse, error) {
	if _, err := s.enquiries.GetByID(ctx, enquiryID); err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}

	count, err := s.repo.CompleteAllForEnquiry(ctx, enquiryID)
	if err != nil {
		s.log.DatabaseError("followups.complete_all", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to complete follow-ups", err)
	}

	return &transport.BulkCompleteResponse{Completed: count}, nil
}

func (s *Service) toResponses(items []repository.FollowUp) []transport.FollowUpResponse {
	out := make([]transport.FollowUpResponse, len(items))
	for i, f := range items {
		out[i] = s.toResponse(f)
	}
	return out
}

func (s *Service) toResponse(f repository.FollowUp) transport.FollowUpResponse {
	resp := transport.FollowUpResponse{
		ID:             f.ID,
		EnquiryID:      f.EnquiryID,
		FollowUpDate:   f.FollowUpDate.Format("2006-01-02"),
		FollowUpTime:   f.FollowUpTime,
		Notes:          f.Notes,
		Completed:      f.Completed,
		CompletedAt:    f.CompletedAt,
		RepeatFollowUp: f.RepeatFollowUp,
		DueState:       DueState(f.FollowUpDate, s.now()),
		CreatedAt:      f.CreatedAt,
	}
	if f.RepeatInterval != nil {
		resp.RepeatInterval = *f.RepeatInterval
	}
	if f.RepeatEndDate != nil {
		resp.RepeatEndDate = f.RepeatEndDate.Format("2006-01-02")
	}
	if f.Completed {
		resp.DueState = ""
	}
	return resp
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
