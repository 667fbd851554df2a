// Package validation is the input-constraint checker for loan terms and
// account credentials. Counter-offers go through the same bounds as fresh
// requests; there is no relative-to-original constraint.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the ValidationError kind: a non-fatal, field-level failure set
// surfaced to the actor for correction.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var v = validator.New()

type loanTerms struct {
	Amount   float64 `validate:"gte=1000,lte=1000000"`
	Rate     float64 `validate:"gt=0,lte=50"`
	Duration int     `validate:"gte=1,lte=360"`
}

// LoanTerms checks amount in [1000, 1000000], rate in (0, 50] and duration
// in [1, 360] months. Returns nil when all bounds hold.
func LoanTerms(amount, rate float64, duration int) *Error {
	err := v.Struct(loanTerms{Amount: amount, Rate: rate, Duration: duration})
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Fields: []FieldError{{Field: "_", Message: err.Error()}}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		var field, msg string
		switch e.StructField() {
		case "Amount":
			field, msg = "amount", "must be between 1000 and 1000000"
		case "Rate":
			field, msg = "interest_rate", "must be greater than 0 and at most 50"
		case "Duration":
			field, msg = "duration_months", "must be between 1 and 360"
		default:
			field, msg = e.StructField(), fmt.Sprintf("%s validation failed", e.Tag())
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return &Error{Fields: out}
}

// Email reports whether s looks like a deliverable address.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}

// Password reports whether s meets the minimum length policy.
func Password(s string) bool {
	return len(s) >= 6
}
