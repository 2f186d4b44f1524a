package validator

import "testing"

func TestClockTag(t *testing.T) {
	v := New()

	valid := []string{"00:00", "09:30", "23:59"}
	for _, value := range valid {
		if err := v.Var(value, "clock"); err != nil {
			t.Errorf("clock rejected %q: %v", value, err)
		}
	}

	invalid := []string{"9:30", "24:00", "12:60", "noon", "12:00:00"}
	for _, value := range invalid {
		if err := v.Var(value, "clock"); err == nil {
			t.Errorf("clock accepted %q", value)
		}
	}
}

func TestDateOnlyTag(t *testing.T) {
	v := New()

	if err := v.Var("2026-02-28", "dateonly"); err != nil {
		t.Errorf("dateonly rejected a valid date: %v", err)
	}

	invalid := []string{"2026-2-28", "28-02-2026", "2026-13-01", "tomorrow"}
	for _, value := range invalid {
		if err := v.Var(value, "dateonly"); err == nil {
			t.Errorf("dateonly accepted %q", value)
		}
	}
}
