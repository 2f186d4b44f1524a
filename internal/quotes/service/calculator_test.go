package service

import (
	"testing"

	"venuedesk_backend/internal/quotes/transport"
)

func TestParseQuantityNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"5", 5},
		{"5 x", 5},
		{"3.5 hrs", 3.5},
		{"2 plates", 2},
		{"1,5 kg", 1.5},
		{"per plate", 1},
		{"", 1},
		{"0", 1},
		{"-3", 1},
	}

	for _, tc := range cases {
		if got := parseQuantityNumber(tc.in); got != tc.want {
			t.Errorf("parseQuantityNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCalculateExclusiveWithPercentageDiscount(t *testing.T) {
	// Two lines at 18% GST, 10% discount. 100000 + 50000 paise subtotal.
	resp := Calculate(transport.CalculationRequest{
		PricingMode:   "exclusive",
		DiscountType:  "percentage",
		DiscountValue: 10,
		Items: []transport.LineItemRequest{
			{Description: "Buffet", Quantity: "1", UnitPricePaise: 100000, GSTRateBps: 1800},
			{Description: "Decor", Quantity: "1", UnitPricePaise: 50000, GSTRateBps: 1800},
		},
	})

	if resp.SubtotalPaise != 150000 {
		t.Errorf("subtotal = %d, want 150000", resp.SubtotalPaise)
	}
	if resp.DiscountPaise != 15000 {
		t.Errorf("discount = %d, want 15000", resp.DiscountPaise)
	}
	// GST on the discounted base: 135000 * 18% = 24300, split evenly.
	if resp.CGSTPaise != 12150 || resp.SGSTPaise != 12150 {
		t.Errorf("cgst/sgst = %d/%d, want 12150/12150", resp.CGSTPaise, resp.SGSTPaise)
	}
	if resp.TotalPaise != 159300 {
		t.Errorf("total = %d, want 159300", resp.TotalPaise)
	}
}

func TestCalculatePerRateBreakdown(t *testing.T) {
	resp := Calculate(transport.CalculationRequest{
		Items: []transport.LineItemRequest{
			{Description: "Catering", Quantity: "1", UnitPricePaise: 100000, GSTRateBps: 500},
			{Description: "AV rental", Quantity: "1", UnitPricePaise: 100000, GSTRateBps: 1800},
		},
	})

	if len(resp.GSTBreakdown) != 2 {
		t.Fatalf("got %d breakdown rows, want 2", len(resp.GSTBreakdown))
	}
	if resp.GSTBreakdown[0].RateBps != 500 || resp.GSTBreakdown[1].RateBps != 1800 {
		t.Errorf("breakdown not sorted by rate: %+v", resp.GSTBreakdown)
	}
	for _, row := range resp.GSTBreakdown {
		if row.CGSTPaise != row.SGSTPaise {
			t.Errorf("rate %d: cgst %d != sgst %d", row.RateBps, row.CGSTPaise, row.SGSTPaise)
		}
		if row.TotalPaise != row.CGSTPaise+row.SGSTPaise {
			t.Errorf("rate %d: total %d != cgst+sgst", row.RateBps, row.TotalPaise)
		}
	}
}

func TestCalculateOptionalLines(t *testing.T) {
	resp := Calculate(transport.CalculationRequest{
		Items: []transport.LineItemRequest{
			{Description: "Base package", Quantity: "1", UnitPricePaise: 100000, GSTRateBps: 1800},
			{Description: "DJ night", Quantity: "1", UnitPricePaise: 40000, GSTRateBps: 1800, IsOptional: true},
			{Description: "Valet", Quantity: "1", UnitPricePaise: 20000, GSTRateBps: 1800, IsOptional: true, IsSelected: true},
		},
	})

	// Unselected optional line is priced for display but kept out of totals.
	if resp.SubtotalPaise != 120000 {
		t.Errorf("subtotal = %d, want 120000", resp.SubtotalPaise)
	}
	if resp.Lines[1].LineTotalPaise != 47200 {
		t.Errorf("optional line total = %d, want 47200", resp.Lines[1].LineTotalPaise)
	}
}

func TestCalculateInclusivePricingNetsOutGST(t *testing.T) {
	// 118000 paise GST-inclusive at 18% nets to 100000.
	resp := Calculate(transport.CalculationRequest{
		PricingMode: "inclusive",
		Items: []transport.LineItemRequest{
			{Description: "Package", Quantity: "1", UnitPricePaise: 118000, GSTRateBps: 1800},
		},
	})

	if resp.SubtotalPaise != 100000 {
		t.Errorf("subtotal = %d, want 100000", resp.SubtotalPaise)
	}
	if resp.TotalPaise != 118000 {
		t.Errorf("total = %d, want 118000 (net + GST restores the inclusive price)", resp.TotalPaise)
	}
}

func TestCalculateFixedDiscountCappedAtSubtotal(t *testing.T) {
	resp := Calculate(transport.CalculationRequest{
		DiscountType:  "fixed",
		DiscountValue: 500000,
		Items: []transport.LineItemRequest{
			{Description: "Small add-on", Quantity: "1", UnitPricePaise: 30000, GSTRateBps: 1800},
		},
	})

	if resp.DiscountPaise != 30000 {
		t.Errorf("discount = %d, want capped at subtotal 30000", resp.DiscountPaise)
	}
	if resp.CGSTPaise != 0 || resp.SGSTPaise != 0 {
		t.Errorf("gst on a fully discounted base = %d/%d, want 0/0", resp.CGSTPaise, resp.SGSTPaise)
	}
	if resp.TotalPaise != 0 {
		t.Errorf("total = %d, want 0", resp.TotalPaise)
	}
}

func TestCalculateQuantityMultiplies(t *testing.T) {
	resp := Calculate(transport.CalculationRequest{
		Items: []transport.LineItemRequest{
			{Description: "Plates", Quantity: "150 pax", UnitPricePaise: 80000, GSTRateBps: 500},
		},
	})

	if resp.SubtotalPaise != 12000000 {
		t.Errorf("subtotal = %d, want 12000000", resp.SubtotalPaise)
	}
}

func TestCalculateEmptyRequest(t *testing.T) {
	resp := Calculate(transport.CalculationRequest{})

	if resp.SubtotalPaise != 0 || resp.TotalPaise != 0 {
		t.Errorf("empty request produced subtotal %d total %d", resp.SubtotalPaise, resp.TotalPaise)
	}
	if len(resp.GSTBreakdown) != 0 {
		t.Errorf("empty request produced breakdown %v", resp.GSTBreakdown)
	}
}
