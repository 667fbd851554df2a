package validation

import "testing"

func hasField(e *Error, field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func TestLoanTerms_Valid(t *testing.T) {
	cases := []struct {
		amount   float64
		rate     float64
		duration int
	}{
		{1000, 0.1, 1},
		{1_000_000, 50, 360},
		{15_000, 8.5, 36},
	}
	for _, tc := range cases {
		if err := LoanTerms(tc.amount, tc.rate, tc.duration); err != nil {
			t.Fatalf("LoanTerms(%v, %v, %d) = %v, want nil", tc.amount, tc.rate, tc.duration, err)
		}
	}
}

func TestLoanTerms_Bounds(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		rate     float64
		duration int
		field    string
	}{
		{"amount too low", 999, 10, 12, "amount"},
		{"amount too high", 1_000_001, 10, 12, "amount"},
		{"zero rate", 5000, 0, 12, "interest_rate"},
		{"rate too high", 5000, 50.01, 12, "interest_rate"},
		{"zero duration", 5000, 10, 0, "duration_months"},
		{"duration too long", 5000, 10, 361, "duration_months"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := LoanTerms(tc.amount, tc.rate, tc.duration)
			if !hasField(err, tc.field) {
				t.Fatalf("expected field error %q, got %v", tc.field, err)
			}
		})
	}
}

func TestLoanTerms_CollectsAllFields(t *testing.T) {
	err := LoanTerms(0, 0, 0)
	if err == nil || len(err.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", err)
	}
}

func TestEmail(t *testing.T) {
	if !Email("borrower@example.com") {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "no-at-sign", "a@", "@b.com"} {
		if Email(bad) {
			t.Fatalf("invalid email accepted: %q", bad)
		}
	}
}

func TestPassword(t *testing.T) {
	if !Password("secret") {
		t.Fatal("6-char password rejected")
	}
	if Password("12345") {
		t.Fatal("5-char password accepted")
	}
}
