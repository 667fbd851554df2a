package marketplace

import (
	"time"

	"peerlend/pkg/finance"
)

type RequestLoanInput struct {
	BorrowerID string  `json:"borrower_id"`
	Amount     float64 `json:"amount"`
	Rate       float64 `json:"interest_rate"`
	Duration   int     `json:"duration_months"`
	Purpose    string  `json:"purpose"`
}

type CounterOfferInput struct {
	LenderID  string  `json:"lender_id"`
	RequestID string  `json:"request_id"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"interest_rate"`
	Duration  int     `json:"duration_months"`
}

type OfferDecisionInput struct {
	BorrowerID    string `json:"borrower_id"`
	NegotiationID string `json:"negotiation_id"`
}

type FundLoanInput struct {
	LenderID  string `json:"lender_id"`
	RequestID string `json:"request_id"`
}

type MakePaymentInput struct {
	BorrowerID string  `json:"borrower_id"`
	LoanID     string  `json:"loan_id"`
	Amount     float64 `json:"amount"`
}

type RequestDTO struct {
	RequestID    string    `json:"request_id"`
	BorrowerID   string    `json:"borrower_id"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interest_rate"`
	Duration     int       `json:"duration_months"`
	Purpose      string    `json:"purpose"`
	RiskRating   string    `json:"risk_rating"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type NegotiationDTO struct {
	NegotiationID string  `json:"negotiation_id"`
	RequestID     string  `json:"request_id"`
	LenderID      string  `json:"lender_id"`
	BorrowerID    string  `json:"borrower_id"`
	OrigAmount    float64 `json:"original_amount"`
	OrigRate      float64 `json:"original_rate"`
	OrigDuration  int     `json:"original_duration"`
	Amount        float64 `json:"counter_amount"`
	Rate          float64 `json:"counter_rate"`
	Duration      int     `json:"counter_duration"`
}

type FundedLoanDTO struct {
	LoanID             string    `json:"loan_id"`
	RequestID          string    `json:"request_id"`
	BorrowerID         string    `json:"borrower_id"`
	LenderID           string    `json:"lender_id"`
	Amount             float64   `json:"amount"`
	InterestRate       float64   `json:"interest_rate"`
	RiskRating         string    `json:"risk_rating"`
	OutstandingBalance float64   `json:"outstanding_balance"`
	TotalPayments      int       `json:"total_payments"`
	PaymentsMade       int       `json:"payments_made"`
	Status             string    `json:"status"`
	FundedDate         time.Time `json:"funded_date"`
	MinimumPayment     float64   `json:"minimum_payment"`
}

type ScheduleDTO struct {
	LoanID         string                `json:"loan_id"`
	MonthlyPayment float64               `json:"monthly_payment"`
	Installments   []finance.Installment `json:"installments"`
}
