// Package transport defines the request and response types for the
// quotations HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// LineItemRequest is one quotation line. Prices are integer paise; GST
// rates are basis points (1800 = 18%).
type LineItemRequest struct {
	Description    string `json:"description" binding:"required"`
	Quantity       string `json:"quantity"`
	UnitPricePaise int64  `json:"unitPricePaise" binding:"required,gt=0"`
	GSTRateBps     int    `json:"gstRateBps" binding:"gte=0,lte=2800"`
	IsOptional     bool   `json:"isOptional"`
	IsSelected     bool   `json:"isSelected"`
}

// CalculationRequest computes totals without persisting anything.
type CalculationRequest struct {
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PricingMode   string            `json:"pricingMode" binding:"omitempty,oneof=exclusive inclusive"`
	DiscountType  string            `json:"discountType" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue int64             `json:"discountValue" binding:"gte=0"`
}

// CreateQuotationRequest persists a quotation for an enquiry with
// server-side calculated totals.
type CreateQuotationRequest struct {
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PricingMode   string            `json:"pricingMode" binding:"omitempty,oneof=exclusive inclusive"`
	DiscountType  string            `json:"discountType" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue int64             `json:"discountValue" binding:"gte=0"`
}

// CalculatedLineItem is one line with its computed amounts.
type CalculatedLineItem struct {
	Description    string `json:"description"`
	Quantity       string `json:"quantity"`
	UnitPricePaise int64  `json:"unitPricePaise"`
	GSTRateBps     int    `json:"gstRateBps"`
	IsOptional     bool   `json:"isOptional"`
	IsSelected     bool   `json:"isSelected"`
	TotalBeforeTax int64  `json:"totalBeforeTaxPaise"`
	TotalGSTPaise  int64  `json:"totalGstPaise"`
	LineTotalPaise int64  `json:"lineTotalPaise"`
}

// GSTBreakdown is the GST charged at one rate, split into central and state
// halves.
type GSTBreakdown struct {
	RateBps    int   `json:"rateBps"`
	CGSTPaise  int64 `json:"cgstPaise"`
	SGSTPaise  int64 `json:"sgstPaise"`
	TotalPaise int64 `json:"totalPaise"`
}

// CalculationResponse carries the full computed quotation.
type CalculationResponse struct {
	Lines         []CalculatedLineItem `json:"lines"`
	SubtotalPaise int64                `json:"subtotalPaise"`
	DiscountPaise int64                `json:"discountPaise"`
	CGSTPaise     int64                `json:"cgstPaise"`
	SGSTPaise     int64                `json:"sgstPaise"`
	GSTBreakdown  []GSTBreakdown       `json:"gstBreakdown"`
	TotalPaise    int64                `json:"totalPaise"`
}

// QuotationResponse is one persisted quotation.
type QuotationResponse struct {
	ID            uuid.UUID            `json:"id"`
	EnquiryID     uuid.UUID            `json:"enquiryId"`
	PricingMode   string               `json:"pricingMode"`
	DiscountType  string               `json:"discountType"`
	DiscountValue int64                `json:"discountValue"`
	SubtotalPaise int64                `json:"subtotalPaise"`
	DiscountPaise int64                `json:"discountPaise"`
	CGSTPaise     int64                `json:"cgstPaise"`
	SGSTPaise     int64                `json:"sgstPaise"`
	TotalPaise    int64                `json:"totalPaise"`
	Lines         []CalculatedLineItem `json:"lines,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}
