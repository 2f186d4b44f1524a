package service

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"venuedesk_backend/internal/quotes/transport"
)

var quantityRegex = regexp.MustCompile(`^([\d.,]+)`)

// parseQuantityNumber extracts the numeric value from a free-form quantity
// string. Examples: "5 x" -> 5.0, "3.5 hrs" -> 3.5, "2 plates" -> 2.0.
func parseQuantityNumber(quantity string) float64 {
	matches := quantityRegex.FindStringSubmatch(strings.TrimSpace(quantity))
	if len(matches) < 2 {
		return 1.0
	}
	cleaned := strings.ReplaceAll(matches[1], ",", ".")
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val <= 0 {
		return 1.0
	}
	return val
}

// roundPaise rounds a float to the nearest paisa.
func roundPaise(v float64) int64 {
	return int64(math.Round(v))
}

// lineNetPrice returns the net (excl. GST) unit price given the pricing mode.
func lineNetPrice(unitPricePaise int64, gstRateBps int, pricingMode string) float64 {
	price := float64(unitPricePaise)
	if pricingMode == "inclusive" && gstRateBps > 0 {
		price /= 1.0 + float64(gstRateBps)/10000.0
	}
	return price
}

// computeDiscount returns the discount amount in float-paise, capped at the
// subtotal.
func computeDiscount(subtotal float64, discountType string, discountValue int64) float64 {
	var amount float64
	switch {
	case discountType == "percentage" && discountValue > 0:
		amount = subtotal * (float64(discountValue) / 100.0)
	case discountType == "fixed" && discountValue > 0:
		amount = float64(discountValue)
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// gstBreakdown applies the discount multiplier to the GST accumulated per
// rate and splits each rate's amount evenly into CGST and SGST halves.
// Rounding happens once per half, at the end.
func gstBreakdown(gstMap map[int]float64, multiplier float64) (cgst, sgst int64, breakdown []transport.GSTBreakdown) {
	breakdown = make([]transport.GSTBreakdown, 0, len(gstMap))
	for rate, amount := range gstMap {
		half := roundPaise(amount * multiplier / 2.0)
		cgst += half
		sgst += half
		breakdown = append(breakdown, transport.GSTBreakdown{
			RateBps:    rate,
			CGSTPaise:  half,
			SGSTPaise:  half,
			TotalPaise: half * 2,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].RateBps < breakdown[j].RateBps })
	return cgst, sgst, breakdown
}

// Calculate computes the financial totals for a set of quotation lines.
// GST accrues per line, the overall discount reduces the taxable base
// proportionally across rates, and the remaining GST splits evenly into
// CGST and SGST. Optional lines get full per-line amounts for transparency
// but join the totals only when selected.
func Calculate(req transport.CalculationRequest) transport.CalculationResponse {
	pricingMode := req.PricingMode
	if pricingMode == "" {
		pricingMode = "exclusive"
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = "percentage"
	}

	var subtotal float64
	gstMap := make(map[int]float64)
	lines := make([]transport.CalculatedLineItem, 0, len(req.Items))

	for _, item := range req.Items {
		qty := parseQuantityNumber(item.Quantity)
		netUnit := lineNetPrice(item.UnitPricePaise, item.GSTRateBps, pricingMode)
		lineSubtotal := qty * netUnit
		lineGST := lineSubtotal * (float64(item.GSTRateBps) / 10000.0)

		lines = append(lines, transport.CalculatedLineItem{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPricePaise: item.UnitPricePaise,
			GSTRateBps:     item.GSTRateBps,
			IsOptional:     item.IsOptional,
			IsSelected:     item.IsSelected,
			TotalBeforeTax: roundPaise(lineSubtotal),
			TotalGSTPaise:  roundPaise(lineGST),
			LineTotalPaise: roundPaise(lineSubtotal + lineGST),
		})

		if !item.IsOptional || item.IsSelected {
			subtotal += lineSubtotal
			gstMap[item.GSTRateBps] += lineGST
		}
	}

	subtotalPaise := roundPaise(subtotal)
	discount := computeDiscount(subtotal, discountType, req.DiscountValue)
	discountPaise := roundPaise(discount)

	multiplier := 1.0
	if subtotal > 0 {
		multiplier = (subtotal - discount) / subtotal
	}

	cgst, sgst, breakdown := gstBreakdown(gstMap, multiplier)

	return transport.CalculationResponse{
		Lines:         lines,
		SubtotalPaise: subtotalPaise,
		DiscountPaise: discountPaise,
		CGSTPaise:     cgst,
		SGSTPaise:     sgst,
		GSTBreakdown:  breakdown,
		TotalPaise:    subtotalPaise - discountPaise + cgst + sgst,
	}
}
