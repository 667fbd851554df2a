package negotiation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("negotiation not found")

// Negotiation is a pending counter-offer against an open loan request. The
// original-terms snapshot is always taken from the request itself, so a
// re-counter carries the request's terms, not the prior counter's.
type Negotiation struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	NegotiationID string         `gorm:"size:32;uniqueIndex:ux_negotiations_negotiation_id" json:"negotiation_id"`
	RequestID     string         `gorm:"size:32;index:idx_negotiations_request" json:"request_id"`
	LenderID      string         `gorm:"size:32" json:"lender_id"`
	BorrowerID    string         `gorm:"size:32" json:"borrower_id"`
	OrigAmount    float64        `gorm:"type:decimal(18,2)" json:"original_amount"`
	OrigRate      float64        `gorm:"type:decimal(6,3)" json:"original_rate"`
	OrigDuration  int            `json:"original_duration"`
	Amount        float64        `gorm:"type:decimal(18,2)" json:"counter_amount"`
	Rate          float64        `gorm:"type:decimal(6,3)" json:"counter_rate"`
	Duration      int            `json:"counter_duration"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Negotiation) TableName() string { return "negotiations" }

type Repository interface {
	Create(ctx context.Context, n *Negotiation) error
	GetByNegotiationID(ctx context.Context, negotiationID string) (*Negotiation, error)
	GetByRequestID(ctx context.Context, requestID string) (*Negotiation, error)
	DeleteByRequestID(ctx context.Context, requestID string) error
	Delete(ctx context.Context, n *Negotiation) error
}
