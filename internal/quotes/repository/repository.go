// Package repository provides data access for quotations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no quotation matches the given ID.
var ErrNotFound = errors.New("quotation not found")

// Quotation is the persistence model for one computed quotation.
type Quotation struct {
	ID            uuid.UUID
	EnquiryID     uuid.UUID
	PricingMode   string
	DiscountType  string
	DiscountValue int64
	SubtotalPaise int64
	DiscountPaise int64
	CGSTPaise     int64
	SGSTPaise     int64
	TotalPaise    int64
	CreatedAt     time.Time
}

// QuotationItem is one stored line of a quotation.
type QuotationItem struct {
	ID             uuid.UUID
	QuotationID    uuid.UUID
	Position       int
	Description    string
	Quantity       string
	UnitPricePaise int64
	GSTRateBps     int
	IsOptional     bool
	IsSelected     bool
}

// Repository provides access to quotation rows.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new quotations repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const quotationColumns = `id, enquiry_id, pricing_mode, discount_type, discount_value,
	subtotal_paise, discount_paise, cgst_paise, sgst_paise, total_paise, created_at`

func scanQuotation(row pgx.Row) (Quotation, error) {
	var q Quotation
	err := row.Scan(
		&q.ID,
		&q.EnquiryID,
		&q.PricingMode,
		&q.DiscountType,
		&q.DiscountValue,
		&q.SubtotalPaise,
		&q.DiscountPaise,
		&q.CGSTPaise,
		&q.SGSTPaise,
		&q.TotalPaise,
		&q.CreatedAt,
	)
	return q, err
}

// CreateWithItems inserts the quotation and its lines in one transaction.
func (r *Repository) CreateWithItems(ctx context.Context, quotation Quotation, items []QuotationItem) (Quotation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Quotation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO quotations
			(id, enquiry_id, pricing_mode, discount_type, discount_value,
			 subtotal_paise, discount_paise, cgst_paise, sgst_paise, total_paise)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + quotationColumns

	saved, err := scanQuotation(tx.QueryRow(ctx, query,
		quotation.ID,
		quotation.EnquiryID,
		quotation.PricingMode,
		quotation.DiscountType,
		quotation.DiscountValue,
		quotation.SubtotalPaise,
		quotation.DiscountPaise,
		quotation.CGSTPaise,
		quotation.SGSTPaise,
		quotation.TotalPaise,
	))
	if err != nil {
		return Quotation{}, fmt.Errorf("failed to create quotation: %w", err)
	}

	itemQuery := `
		INSERT INTO quotation_items
			(id, quotation_id, position, description, quantity,
			 unit_price_paise, gst_rate_bps, is_optional, is_selected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, item := range items {
		_, err := tx.Exec(ctx, itemQuery,
			item.ID, saved.ID, item.Position, item.Description, item.Quantity,
			item.UnitPricePaise, item.GSTRateBps, item.IsOptional, item.IsSelected)
		if err != nil {
			return Quotation{}, fmt.Errorf("failed to create quotation item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Quotation{}, fmt.Errorf("failed to commit quotation: %w", err)
	}

	return saved, nil
}

// ListByEnquiry returns all quotations of an enquiry, newest first.
func (r *Repository) ListByEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]Quotation, error) {
	query := `SELECT ` + quotationColumns + `
		FROM quotations WHERE enquiry_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, enquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	defer rows.Close()

	items := make([]Quotation, 0)
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotations: %w", err)
	}

	return items, nil
}

// ListItems returns the lines of a quotation in position order.
func (r *Repository) ListItems(ctx context.Context, quotationID uuid.UUID) ([]QuotationItem, error) {
	query := `
		SELECT id, quotation_id, position, description, quantity,
			unit_price_paise, gst_rate_bps, is_optional, is_selected
		FROM quotation_items WHERE quotation_id = $1 ORDER BY position`

	rows, err := r.pool.Query(ctx, query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotation items: %w", err)
	}
	defer rows.Close()

	items := make([]QuotationItem, 0)
	for rows.Next() {
		var it QuotationItem
		err := rows.Scan(&it.ID, &it.QuotationID, &it.Position, &it.Description,
			&it.Quantity, &it.UnitPricePaise, &it.GSTRateBps, &it.IsOptional, &it.IsSelected)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quotation item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotation items: %w", err)
	}

	return items, nil
}
