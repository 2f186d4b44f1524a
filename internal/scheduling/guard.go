package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// LossReasonOther is the loss reason that additionally requires free-form
// notes before a transition to lost is accepted.
const LossReasonOther = "other"

// AvailabilityChecker supplies the conflict report for a candidate session
// set. The production implementation fetches the current enquiry/booking
// snapshot from the store and runs Classify; a fetch failure surfaces as
// *AvailabilityError, never as an empty report.
type AvailabilityChecker interface {
	Evaluate(ctx context.Context, candidates []Session, ownerID uuid.UUID) (Report, error)
}

// TransitionRequest describes one requested status change, including the
// auxiliary data the target state may require. BypassAdvisory is the
// one-shot acknowledgement for advisory conflicts: it is consumed by this
// single call and never persisted.
type TransitionRequest struct {
	EnquiryID       uuid.UUID
	Current         Status
	Target          Status
	Sessions        []Session
	LossReason      string
	ClosureReason   string
	Notes           string
	FollowUpDateSet bool
	BypassAdvisory  bool
}

// Decision is the outcome of an authorized transition. The conflict report
// is present for transitions that consulted the classifier, including an
// acknowledged advisory that was allowed through.
type Decision struct {
	Report           *Report
	AdvisoryBypassed bool
}

// Guard is the finite state machine over enquiry status. It validates the
// requested edge against the transition table, enforces per-target
// auxiliary data, and consults the availability checker for the two
// transitions that create real-world commitments.
type Guard struct {
	checker AvailabilityChecker
}

// NewGuard creates a transition guard backed by the given checker.
func NewGuard(checker AvailabilityChecker) *Guard {
	return &Guard{checker: checker}
}

// Authorize validates the requested transition. It returns a typed error
// when the edge is illegal (*TransitionError), auxiliary data is missing
// (FieldErrors), a conflict stops the change (*ConflictError), or the
// availability snapshot could not be fetched (*AvailabilityError).
func (g *Guard) Authorize(ctx context.Context, req TransitionRequest) (Decision, error) {
	if !IsKnownStatus(req.Target) {
		return Decision{}, &TransitionError{From: req.Current, To: req.Target}
	}
	if !CanTransition(req.Current, req.Target) {
		return Decision{}, &TransitionError{From: req.Current, To: req.Target}
	}

	if errs := requiredAuxData(req); errs != nil {
		return Decision{}, errs
	}

	if !req.Target.Committed() {
		return Decision{}, nil
	}

	report, err := g.checker.Evaluate(ctx, req.Sessions, req.EnquiryID)
	if err != nil {
		if _, ok := err.(*AvailabilityError); ok {
			return Decision{}, err
		}
		return Decision{}, &AvailabilityError{Err: err}
	}

	if report.Blocking {
		return Decision{}, &ConflictError{Report: report, Blocking: true}
	}
	if report.Advisory && !req.BypassAdvisory {
		return Decision{}, &ConflictError{Report: report}
	}

	return Decision{
		Report:           &report,
		AdvisoryBypassed: report.Advisory && req.BypassAdvisory,
	}, nil
}

// AuthorizeReopen validates the explicit reopen operation, which returns a
// lost or closed enquiry to ongoing and requires a reason.
func (g *Guard) AuthorizeReopen(current Status, reason string) error {
	if !CanReopen(current) {
		return &TransitionError{From: current, To: StatusOngoing}
	}
	if reason == "" {
		return FieldErrors{{Field: "reopenReason", Reason: "reopen reason is required"}}
	}
	return nil
}

// requiredAuxData enforces the per-target preconditions of the table.
func requiredAuxData(req TransitionRequest) FieldErrors {
	var errs FieldErrors

	switch req.Target {
	case StatusLost:
		if req.LossReason == "" {
			errs = append(errs, FieldError{Field: "lossReason", Reason: "loss reason is required"})
		} else if req.LossReason == LossReasonOther && req.Notes == "" {
			errs = append(errs, FieldError{Field: "notes", Reason: "notes are required when loss reason is \"other\""})
		}
	case StatusClosed:
		if req.ClosureReason == "" {
			errs = append(errs, FieldError{Field: "closureReason", Reason: "closure reason is required"})
		}
	case StatusQuotationSent:
		if !req.FollowUpDateSet {
			errs = append(errs, FieldError{Field: "followUpDate", Reason: "a follow-up date must be set before sending a quotation"})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
