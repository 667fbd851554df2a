// Package finance holds the pure loan math: annuity amortization, risk
// grading, schedule projection and portfolio ratios. No state, no I/O.
package finance

import (
	"math"
	"time"
)

// Round2 rounds to 2 decimal places (display precision for money).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmortizedPayment computes the fixed monthly payment and total interest for
// a simple monthly annuity:
//
//	monthly = P*r / (1 - (1+r)^-n)   with r = annualRatePct/100/12
//
// Degenerate inputs (zero rate or zero months) return (0, 0) rather than an
// error; callers treat that as "no payment computable".
func AmortizedPayment(principal, annualRatePct float64, months int) (monthly, totalInterest float64) {
	r := annualRatePct / 100 / 12
	if r == 0 || months == 0 {
		return 0, 0
	}
	n := float64(months)
	monthly = principal * r / (1 - math.Pow(1+r, -n))
	monthly = Round2(monthly)
	totalInterest = Round2(monthly*n - principal)
	return monthly, totalInterest
}

// MinimumPayment is the amortized monthly payment over a funded loan's
// original terms. Same degenerate policy as AmortizedPayment.
func MinimumPayment(principal, annualRatePct float64, totalPayments int) float64 {
	monthly, _ := AmortizedPayment(principal, annualRatePct, totalPayments)
	return monthly
}

// grades is ordered worst to best; index = min(score-1, 8) with score in [3,9].
var grades = [9]string{"C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}

// RiskRating derives a letter grade from three 1..3 sub-scores (credit tier,
// amount tier, duration tier). Deterministic: identical inputs always yield
// the identical grade.
func RiskRating(creditScore int, amount float64, months int) string {
	score := creditTier(creditScore) + amountTier(amount) + durationTier(months)
	idx := score - 1
	if idx > 8 {
		idx = 8
	}
	return grades[idx]
}

func creditTier(score int) int {
	switch {
	case score >= 740:
		return 3
	case score >= 670:
		return 2
	default:
		return 1
	}
}

func amountTier(amount float64) int {
	switch {
	case amount < 10_000:
		return 3
	case amount < 25_000:
		return 2
	default:
		return 1
	}
}

func durationTier(months int) int {
	switch {
	case months <= 24:
		return 3
	case months <= 48:
		return 2
	default:
		return 1
	}
}

// Installment is one projected payment in a display schedule.
type Installment struct {
	Number  int       `json:"number"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

// PaymentSchedule projects up to the next six unpaid installments of a funded
// loan, starting at paymentsMade+1. Each due date is fundedDate plus that
// many months; the amount is capped at the remaining balance, and the
// projection stops once the balance hits zero.
//
// This is a display projection only. The authoritative balance moves only
// through real payments.
func PaymentSchedule(monthly, outstanding float64, paymentsMade, totalPayments int, fundedDate time.Time) []Installment {
	if monthly <= 0 || outstanding <= 0 {
		return nil
	}
	var out []Installment
	remaining := outstanding
	for i := paymentsMade + 1; i <= totalPayments && len(out) < 6; i++ {
		amt := monthly
		if amt > remaining {
			amt = remaining
		}
		out = append(out, Installment{
			Number:  i,
			DueDate: fundedDate.AddDate(0, i, 0),
			Amount:  Round2(amt),
		})
		remaining -= amt
		if remaining <= 0 {
			break
		}
	}
	return out
}

// ROI returns cumulative return on investment as a percentage, 0 when
// nothing has been invested.
func ROI(invested, returns float64) float64 {
	if invested == 0 {
		return 0
	}
	return returns / invested * 100
}

// DefaultRate returns the percentage of loans in the given status set that
// defaulted, 0 for an empty set.
func DefaultRate(statuses []string) float64 {
	if len(statuses) == 0 {
		return 0
	}
	defaulted := 0
	for _, s := range statuses {
		if s == "defaulted" {
			defaulted++
		}
	}
	return float64(defaulted) / float64(len(statuses)) * 100
}
