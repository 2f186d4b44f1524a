package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// stubChecker returns a canned report or error without touching any store.
type stubChecker struct {
	report Report
	err    error
	calls  int
}

func (s *stubChecker) Evaluate(_ context.Context, _ []Session, _ uuid.UUID) (Report, error) {
	s.calls++
	return s.report, s.err
}

func newTestGuard(report Report, err error) (*Guard, *stubChecker) {
	checker := &stubChecker{report: report, err: err}
	return NewGuard(checker), checker
}

func TestGuardRejectsEveryEdgeOutsideTheTable(t *testing.T) {
	all := []Status{
		StatusNew, StatusQuotationSent, StatusOngoing,
		StatusConverted, StatusLost, StatusClosed, StatusBooked,
	}

	guard, _ := newTestGuard(Report{}, nil)

	for _, from := range all {
		for _, to := range all {
			if from == to || CanTransition(from, to) {
				continue
			}

			_, err := guard.Authorize(context.Background(), TransitionRequest{
				EnquiryID: uuid.New(),
				Current:   from,
				Target:    to,
				// Aux data that would satisfy any precondition, so only
				// the table itself can cause the rejection.
				LossReason:      "budget",
				ClosureReason:   "duplicate",
				Notes:           "n/a",
				FollowUpDateSet: true,
			})

			var te *TransitionError
			if !errors.As(err, &te) {
				t.Errorf("%s -> %s: expected TransitionError, got %v", from, to, err)
			}
		}
	}
}

func TestGuardBookedIsTerminal(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	for _, to := range []Status{StatusNew, StatusOngoing, StatusLost, StatusClosed, StatusConverted} {
		_, err := guard.Authorize(context.Background(), TransitionRequest{
			Current: StatusBooked, Target: to,
			LossReason: "budget", ClosureReason: "done", FollowUpDateSet: true,
		})
		var te *TransitionError
		if !errors.As(err, &te) {
			t.Errorf("booked -> %s: expected TransitionError, got %v", to, err)
		}
	}
}

func TestGuardLostRequiresReason(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusOngoing,
		Target:  StatusLost,
	})

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe[0].Field != "lossReason" {
		t.Fatalf("expected lossReason failure, got %+v", fe)
	}
}

func TestGuardLossReasonOtherRequiresNotes(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current:    StatusOngoing,
		Target:     StatusLost,
		LossReason: LossReasonOther,
	})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors for empty notes, got %v", err)
	}

	_, err = guard.Authorize(context.Background(), TransitionRequest{
		Current:    StatusOngoing,
		Target:     StatusLost,
		LossReason: LossReasonOther,
		Notes:      "went with a competitor venue",
	})
	if err != nil {
		t.Fatalf("expected transition accepted with non-empty notes, got %v", err)
	}
}

func TestGuardClosedRequiresClosureReason(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusNew,
		Target:  StatusClosed,
	})

	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe[0].Field != "closureReason" {
		t.Fatalf("expected closureReason failure, got %+v", fe)
	}
}

func TestGuardQuotationSentRequiresFollowUpDate(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusNew,
		Target:  StatusQuotationSent,
	})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}

	_, err = guard.Authorize(context.Background(), TransitionRequest{
		Current:         StatusNew,
		Target:          StatusQuotationSent,
		FollowUpDateSet: true,
	})
	if err != nil {
		t.Fatalf("expected transition accepted with follow-up date set, got %v", err)
	}
}

func TestGuardBlockingConflictRejectsConversionWithoutException(t *testing.T) {
	blocking := Report{Blocking: true, Conflicts: []Conflict{{Severity: SeverityBlocking}}}
	guard, checker := newTestGuard(blocking, nil)

	// The bypass flag must not help against a blocking conflict.
	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current:        StatusOngoing,
		Target:         StatusConverted,
		BypassAdvisory: true,
	})

	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !ce.Blocking {
		t.Fatalf("expected blocking conflict")
	}
	if checker.calls != 1 {
		t.Fatalf("expected exactly one availability check, got %d", checker.calls)
	}
}

func TestGuardAdvisoryConflictNeedsBypass(t *testing.T) {
	advisory := Report{Advisory: true, Conflicts: []Conflict{{Severity: SeverityAdvisory}}}

	guard, _ := newTestGuard(advisory, nil)
	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusOngoing,
		Target:  StatusConverted,
	})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError without bypass, got %v", err)
	}
	if ce.Blocking {
		t.Fatalf("expected advisory, not blocking")
	}

	guard, _ = newTestGuard(advisory, nil)
	decision, err := guard.Authorize(context.Background(), TransitionRequest{
		Current:        StatusOngoing,
		Target:         StatusConverted,
		BypassAdvisory: true,
	})
	if err != nil {
		t.Fatalf("expected advisory bypass to allow the transition, got %v", err)
	}
	if !decision.AdvisoryBypassed {
		t.Fatalf("expected decision to record the advisory bypass")
	}
}

func TestGuardConversionWithCleanReportSucceeds(t *testing.T) {
	guard, checker := newTestGuard(Report{}, nil)

	decision, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusConverted,
		Target:  StatusBooked,
	})
	if err != nil {
		t.Fatalf("expected clean conversion, got %v", err)
	}
	if decision.Report == nil {
		t.Fatalf("expected the decision to carry the report")
	}
	if checker.calls != 1 {
		t.Fatalf("expected availability check for booked target, got %d calls", checker.calls)
	}
}

func TestGuardNonCommittingTargetsSkipAvailabilityCheck(t *testing.T) {
	guard, checker := newTestGuard(Report{Blocking: true}, nil)

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current:    StatusOngoing,
		Target:     StatusLost,
		LossReason: "budget",
	})
	if err != nil {
		t.Fatalf("expected lost transition to skip conflict check, got %v", err)
	}
	if checker.calls != 0 {
		t.Fatalf("expected no availability check, got %d", checker.calls)
	}
}

func TestGuardStaleAvailabilitySurfacesDistinctly(t *testing.T) {
	guard, _ := newTestGuard(Report{}, errors.New("store timeout"))

	_, err := guard.Authorize(context.Background(), TransitionRequest{
		Current: StatusOngoing,
		Target:  StatusConverted,
	})

	var ae *AvailabilityError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		t.Fatalf("availability failure must not masquerade as a conflict result")
	}
}

func TestGuardReopen(t *testing.T) {
	guard, _ := newTestGuard(Report{}, nil)

	if err := guard.AuthorizeReopen(StatusLost, "client came back"); err != nil {
		t.Fatalf("expected lost enquiry to be reopenable, got %v", err)
	}
	if err := guard.AuthorizeReopen(StatusClosed, "reactivated"); err != nil {
		t.Fatalf("expected closed enquiry to be reopenable, got %v", err)
	}

	if err := guard.AuthorizeReopen(StatusLost, ""); err == nil {
		t.Fatalf("expected reopen without reason to be rejected")
	}
	if err := guard.AuthorizeReopen(StatusOngoing, "reason"); err == nil {
		t.Fatalf("expected reopen of non-terminal enquiry to be rejected")
	}
}
