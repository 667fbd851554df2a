package loan

import "context"

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	ListOpen(ctx context.Context) ([]Request, error)
	Save(ctx context.Context, r *Request) error
	Delete(ctx context.Context, r *Request) error
}

type FundedRepository interface {
	Create(ctx context.Context, l *Funded) error
	GetByLoanID(ctx context.Context, loanID string) (*Funded, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Funded, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]Funded, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Funded, error)
	Save(ctx context.Context, l *Funded) error
}
