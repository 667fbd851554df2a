package sqldb

import (
	"context"

	"gorm.io/gorm"

	"peerlend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx runs fn with every repository bound to one transaction. Ledger
// and registry mutations inside an operation commit together or roll back
// together; nothing partial is ever visible outside.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Users:         &UserRepository{db: tx},
			Requests:      &LoanRequestRepository{db: tx},
			FundedLoans:   &FundedLoanRepository{db: tx},
			Negotiations:  &NegotiationRepository{db: tx},
			CreditReports: &CreditReportRepository{db: tx},
			History:       &HistoryRepository{db: tx},
		}
		return fn(r)
	})
}
