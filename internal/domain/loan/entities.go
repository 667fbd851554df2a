package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrUnauthorized      = errors.New("actor is not the right party for this action")
	ErrInvalidPayment    = errors.New("payment below minimum or not positive")
	ErrInvalidTransition = errors.New("loan is not in a state that allows this action")
)

// RequestStatus is the open-request side of the lifecycle. A request is
// negotiating while a counter-offer is pending; accepting or rejecting the
// counter puts it back to pending. Funding removes the request entirely.
type RequestStatus string

const (
	RequestPending     RequestStatus = "pending"
	RequestNegotiating RequestStatus = "negotiating"
)

// FundedStatus is the serviced-loan side of the lifecycle. Defaulted and
// cancelled are part of the status domain but no operation currently
// produces them.
type FundedStatus string

const (
	FundedActive    FundedStatus = "active"
	FundedPaidOff   FundedStatus = "paid_off"
	FundedDefaulted FundedStatus = "defaulted"
	FundedCancelled FundedStatus = "cancelled"
)

// Request is an open borrower offer. RiskRating is computed once at creation
// from (borrower credit, amount, duration) and never recomputed, even after
// an accepted counter-offer changes the terms.
type Request struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	RequestID    string         `gorm:"size:32;uniqueIndex:ux_loan_requests_request_id" json:"request_id"`
	BorrowerID   string         `gorm:"size:32;index:idx_loan_requests_borrower" json:"borrower_id"`
	Amount       float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate float64        `gorm:"type:decimal(6,3)" json:"interest_rate"`
	Duration     int            `json:"duration_months"`
	Purpose      string         `gorm:"type:text" json:"purpose"`
	RiskRating   string         `gorm:"size:2" json:"risk_rating"`
	Status       RequestStatus  `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Request) TableName() string { return "loan_requests" }

// Funded is the serviced loan created from a request snapshot at funding
// time. Only the payment operation mutates it.
type Funded struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string         `gorm:"size:32;uniqueIndex:ux_funded_loans_loan_id" json:"loan_id"`
	RequestID          string         `gorm:"size:32;uniqueIndex:ux_funded_loans_request_id" json:"request_id"`
	BorrowerID         string         `gorm:"size:32;index:idx_funded_loans_borrower" json:"borrower_id"`
	LenderID           string         `gorm:"size:32;index:idx_funded_loans_lender" json:"lender_id"`
	Amount             float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate       float64        `gorm:"type:decimal(6,3)" json:"interest_rate"`
	Purpose            string         `gorm:"type:text" json:"purpose"`
	RiskRating         string         `gorm:"size:2" json:"risk_rating"`
	OutstandingBalance float64        `gorm:"type:decimal(18,2)" json:"outstanding_balance"`
	TotalPayments      int            `json:"total_payments"`
	PaymentsMade       int            `json:"payments_made"`
	Status             FundedStatus   `gorm:"size:16;default:'active'" json:"status"`
	FundedDate         time.Time      `json:"funded_date"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Funded) TableName() string { return "funded_loans" }
