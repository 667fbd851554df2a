package sqldb

import (
	"context"

	"gorm.io/gorm"

	loanDomain "peerlend/internal/domain/loan"
)

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

func (r *LoanRequestRepository) Create(ctx context.Context, req *loanDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, req *loanDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *LoanRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := forUpdate(r.db.WithContext(ctx)).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) ListOpen(ctx context.Context) ([]loanDomain.Request, error) {
	var out []loanDomain.Request
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRequestRepository) Delete(ctx context.Context, req *loanDomain.Request) error {
	return r.db.WithContext(ctx).Delete(req).Error
}

type FundedLoanRepository struct{ db *gorm.DB }

func NewFundedLoanRepository(db *gorm.DB) *FundedLoanRepository {
	return &FundedLoanRepository{db: db}
}

func (r *FundedLoanRepository) Create(ctx context.Context, l *loanDomain.Funded) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *FundedLoanRepository) Save(ctx context.Context, l *loanDomain.Funded) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *FundedLoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Funded, error) {
	var out loanDomain.Funded
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *FundedLoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Funded, error) {
	var out loanDomain.Funded
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *FundedLoanRepository) ListByBorrowerID(ctx context.Context, borrowerID string) ([]loanDomain.Funded, error) {
	var out []loanDomain.Funded
	res := r.db.WithContext(ctx).Where("borrower_id = ?", borrowerID).Order("funded_date DESC").Find(&out)
	return out, res.Error
}

func (r *FundedLoanRepository) ListByLenderID(ctx context.Context, lenderID string) ([]loanDomain.Funded, error) {
	var out []loanDomain.Funded
	res := r.db.WithContext(ctx).Where("lender_id = ?", lenderID).Order("funded_date DESC").Find(&out)
	return out, res.Error
}
