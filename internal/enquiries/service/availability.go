package service

import (
	"context"
	"fmt"

	"venuedesk_backend/internal/scheduling"

	"github.com/google/uuid"
)

// SnapshotSource supplies the live records of one store as classifier input.
// Both the enquiries and the bookings repositories implement it.
type SnapshotSource interface {
	SnapshotRecords(ctx context.Context) ([]scheduling.Record, error)
}

// AvailabilityService assembles the full counterpart snapshot and runs the
// conflict classifier over it. A failed fetch from either source surfaces as
// *scheduling.AvailabilityError so callers block instead of assuming a clean
// calendar.
type AvailabilityService struct {
	sources []SnapshotSource
}

// NewAvailabilityService creates a checker over the given snapshot sources.
func NewAvailabilityService(sources ...SnapshotSource) *AvailabilityService {
	return &AvailabilityService{sources: sources}
}

// AddSource registers another snapshot source (set after construction to
// break the module cycle with bookings).
func (a *AvailabilityService) AddSource(src SnapshotSource) {
	a.sources = append(a.sources, src)
}

// Evaluate implements scheduling.AvailabilityChecker.
func (a *AvailabilityService) Evaluate(ctx context.Context, candidates []scheduling.Session, ownerID uuid.UUID) (scheduling.Report, error) {
	var counterparts []scheduling.Record
	for _, src := range a.sources {
		records, err := src.SnapshotRecords(ctx)
		if err != nil {
			return scheduling.Report{}, &scheduling.AvailabilityError{
				Err: fmt.Errorf("failed to fetch availability snapshot: %w", err),
			}
		}
		counterparts = append(counterparts, records...)
	}

	return scheduling.Classify(candidates, ownerID, counterparts), nil
}
