// Package event defines the outbound values every lifecycle operation
// produces: notifications for the external notifier and history entries for
// the activity log. The engine produces them deterministically; delivery and
// rendering belong to collaborators outside the core.
package event

import (
	"context"
	"time"
)

type Kind string

const (
	KindCounterOffer    Kind = "counter_offer"
	KindOfferAccepted   Kind = "offer_accepted"
	KindOfferRejected   Kind = "offer_rejected"
	KindLoanFunded      Kind = "loan_funded"
	KindPaymentReceived Kind = "payment_received"
	KindLoanPaidOff     Kind = "loan_paid_off"
	KindReportRequested Kind = "credit_report_requested"
	KindReportSubmitted Kind = "credit_report_submitted"
	KindReportDenied    Kind = "credit_report_denied"
)

// Notification is addressed to exactly one user.
type Notification struct {
	RecipientUserID string `json:"recipient_user_id"`
	Kind            Kind   `json:"kind"`
	Message         string `json:"message"`
}

// HistoryEntry is one activity-log line for one user.
type HistoryEntry struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;index:idx_history_user" json:"user_id"`
	Action    string    `gorm:"size:32" json:"action"`
	LoanID    string    `gorm:"size:32" json:"loan_id"`
	Amount    float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func (HistoryEntry) TableName() string { return "history_entries" }

// Notifier delivers notifications. Implementations live outside the engine;
// the engine only hands over what it produced.
type Notifier interface {
	Notify(ctx context.Context, notes []Notification)
}

type HistoryRepository interface {
	Append(ctx context.Context, entries []HistoryEntry) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)
}
