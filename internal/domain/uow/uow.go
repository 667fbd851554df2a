package uow

import (
	"context"

	"peerlend/internal/domain/creditreport"
	"peerlend/internal/domain/event"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/negotiation"
	"peerlend/internal/domain/user"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Users         user.Repository
	Requests      loan.RequestRepository
	FundedLoans   loan.FundedRepository
	Negotiations  negotiation.Repository
	CreditReports creditreport.Repository
	History       event.HistoryRepository
}

// UnitOfWork gives each engine operation its single atomic scope: every
// aggregate touched inside fn commits together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
