// Package service implements quotation calculation and persistence.
package service

import (
	"context"
	"errors"

	enqrepo "venuedesk_backend/internal/enquiries/repository"
	"venuedesk_backend/internal/quotes/repository"
	"venuedesk_backend/internal/quotes/transport"
	"venuedesk_backend/platform/apperr"
	"venuedesk_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for quotations.
type Service struct {
	repo      *repository.Repository
	enquiries *enqrepo.Repository
	log       *logger.Logger
}

// New creates a new quotations service.
func New(repo *repository.Repository, enquiries *enqrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, enquiries: enquiries, log: log}
}

// Preview computes the totals for a line set without persisting anything.
func (s *Service) Preview(req transport.CalculationRequest) transport.CalculationResponse {
	return Calculate(req)
}

// Create computes and stores a quotation for an enquiry. Totals are always
// calculated server-side from the submitted lines.
func (s *Service) Create(ctx context.Context, enquiryID uuid.UUID, req transport.CreateQuotationRequest) (*transport.QuotationResponse, error) {
	if _, err := s.enquiries.GetByID(ctx, enquiryID); err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}

	calc := Calculate(transport.CalculationRequest{
		Items:         req.Items,
		PricingMode:   req.PricingMode,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
	})

	pricingMode := req.PricingMode
	if pricingMode == "" {
		pricingMode = "exclusive"
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = "percentage"
	}

	quotation := repository.Quotation{
		ID:            uuid.New(),
		EnquiryID:     enquiryID,
		PricingMode:   pricingMode,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		SubtotalPaise: calc.SubtotalPaise,
		DiscountPaise: calc.DiscountPaise,
		CGSTPaise:     calc.CGSTPaise,
		SGSTPaise:     calc.SGSTPaise,
		TotalPaise:    calc.TotalPaise,
	}

	items := make([]repository.QuotationItem, len(req.Items))
	for i, it := range req.Items {
		quantity := it.Quantity
		if quantity == "" {
			quantity = "1"
		}
		items[i] = repository.QuotationItem{
			ID:             uuid.New(),
			QuotationID:    quotation.ID,
			Position:       i,
			Description:    it.Description,
			Quantity:       quantity,
			UnitPricePaise: it.UnitPricePaise,
			GSTRateBps:     it.GSTRateBps,
			IsOptional:     it.IsOptional,
			IsSelected:     it.IsSelected,
		}
	}

	saved, err := s.repo.CreateWithItems(ctx, quotation, items)
	if err != nil {
		s.log.DatabaseError("quotes.create", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create quotation", err)
	}

	resp := toQuotationResponse(saved, calc.Lines)
	return &resp, nil
}

// ListForEnquiry returns all quotations of an enquiry with recomputed lines.
func (s *Service) ListForEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]transport.QuotationResponse, error) {
	if _, err := s.enquiries.GetByID(ctx, enquiryID); err != nil {
		if errors.Is(err, enqrepo.ErrNotFound) {
			return nil, apperr.NotFound("enquiry not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load enquiry", err)
	}

	quotations, err := s.repo.ListByEnquiry(ctx, enquiryID)
	if err != nil {
		s.log.DatabaseError("quotes.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list quotations", err)
	}

	out := make([]transport.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		items, err := s.repo.ListItems(ctx, q.ID)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to load quotation items", err)
		}

		calc := Calculate(transport.CalculationRequest{
			Items:         toLineRequests(items),
			PricingMode:   q.PricingMode,
			DiscountType:  q.DiscountType,
			DiscountValue: q.DiscountValue,
		})

		out = append(out, toQuotationResponse(q, calc.Lines))
	}
	return out, nil
}

func toLineRequests(items []repository.QuotationItem) []transport.LineItemRequest {
	out := make([]transport.LineItemRequest, len(items))
	for i, it := range items {
		out[i] = transport.LineItemRequest{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPricePaise: it.UnitPricePaise,
			GSTRateBps:     it.GSTRateBps,
			IsOptional:     it.IsOptional,
			IsSelected:     it.IsSelected,
		}
	}
	return out
}

func toQuotationResponse(q repository.Quotation, lines []transport.CalculatedLineItem) transport.QuotationResponse {
	return transport.QuotationResponse{
		ID:            q.ID,
		EnquiryID:     q.EnquiryID,
		PricingMode:   q.PricingMode,
		DiscountType:  q.DiscountType,
		DiscountValue: q.DiscountValue,
		SubtotalPaise: q.SubtotalPaise,
		DiscountPaise: q.DiscountPaise,
		CGSTPaise:     q.CGSTPaise,
		SGSTPaise:     q.SGSTPaise,
		TotalPaise:    q.TotalPaise,
		Lines:         lines,
		CreatedAt:     q.CreatedAt,
	}
}
