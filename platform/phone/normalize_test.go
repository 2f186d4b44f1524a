package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"national indian number", "098765 43210", "IN", "+919876543210"},
		{"already e164", "+919876543210", "IN", "+919876543210"},
		{"foreign number with country code", "+14155552671", "IN", "+14155552671"},
		{"whitespace trimmed", "  +919876543210  ", "IN", "+919876543210"},
		{"unparseable kept verbatim", "call the office", "IN", "call the office"},
		{"invalid number kept verbatim", "12345", "IN", "12345"},
		{"empty stays empty", "   ", "IN", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input, tc.region); got != tc.want {
				t.Errorf("NormalizeE164(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
			}
		})
	}
}
