package creditreport

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("credit report request not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Request links a prospective lender to a borrower for one loan request.
// It gates display of the borrower's credit data only; funding never waits
// on it. All records for a loan request are removed when it is funded.
type Request struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"-"`
	ReportID    string         `gorm:"size:32;uniqueIndex:ux_credit_reports_report_id" json:"report_id"`
	RequestID   string         `gorm:"size:32;index:idx_credit_reports_request" json:"request_id"`
	RequesterID string         `gorm:"size:32" json:"requester_id"`
	BorrowerID  string         `gorm:"size:32" json:"borrower_id"`
	Status      Status         `gorm:"size:16;default:'pending'" json:"status"`
	Report      string         `gorm:"type:text" json:"report,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Request) TableName() string { return "credit_report_requests" }

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByReportID(ctx context.Context, reportID string) (*Request, error)
	ListByRequestID(ctx context.Context, requestID string) ([]Request, error)
	DeleteByRequestID(ctx context.Context, requestID string) error
	Delete(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
}
