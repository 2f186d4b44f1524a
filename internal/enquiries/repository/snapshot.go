package repository

import (
	"context"
	"fmt"

	"venuedesk_backend/internal/scheduling"
)

// SnapshotRecords returns every enquiry that still competes for calendar
// space, with its sessions attached, as classifier input. Withdrawn and
// booked enquiries are filtered at the query so the snapshot stays small.
func (r *Repository) SnapshotRecords(ctx context.Context) ([]scheduling.Record, error) {
	query := `
		SELECT e.id, e.client_name, e.status, ` + prefixedSessionColumns("s") + `
		FROM enquiries e
		JOIN sessions s ON s.enquiry_id = e.id
		WHERE e.status NOT IN ('lost', 'closed', 'booked')
		ORDER BY e.id, s.session_date, s.start_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot enquiries: %w", err)
	}
	defer rows.Close()

	records := make([]scheduling.Record, 0)
	var current *scheduling.Record
	for rows.Next() {
		var (
			rec scheduling.Record
			s   scheduling.Session
		)
		err := rows.Scan(
			&rec.ID,
			&rec.ClientName,
			&rec.Status,
			&s.ID,
			&s.Name,
			&s.Label,
			&s.Venue,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.PaxCount,
			&s.SpecialInstructions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		if current == nil || current.ID != rec.ID {
			rec.Kind = scheduling.RecordEnquiry
			records = append(records, rec)
			current = &records[len(records)-1]
		}
		current.Sessions = append(current.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot: %w", err)
	}

	return records, nil
}

func prefixedSessionColumns(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.label, ` + alias + `.venue, ` +
		alias + `.session_date, ` + alias + `.start_time, ` + alias + `.end_time, ` +
		alias + `.pax_count, ` + alias + `.special_instructions`
}
