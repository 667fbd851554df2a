// Package account covers the operations that touch a single user: register,
// deposit, withdraw, profile edits, portfolio statistics and the activity
// log.
package account

import (
	"context"
	"time"

	"peerlend/internal/domain/event"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/uow"
	"peerlend/internal/domain/user"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/validation"
	"peerlend/pkg/finance"
	"peerlend/pkg/id"
)

type Usecase struct {
	uow    uow.UnitOfWork
	ledger *ledger.Service
}

func NewUsecase(tx uow.UnitOfWork, lg *ledger.Service) *Usecase {
	return &Usecase{uow: tx, ledger: lg}
}

type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CreditScore int    `json:"credit_score"`
	RiskProfile string `json:"risk_profile"`
}

type EditProfileInput struct {
	UserID      string  `json:"user_id"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	RiskProfile *string `json:"risk_profile,omitempty"`
}

type BalanceInput struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type UserDTO struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	AccountBalance float64   `json:"account_balance"`
	CreditScore    int       `json:"credit_score"`
	TotalInvested  float64   `json:"total_invested"`
	TotalReturns   float64   `json:"total_returns"`
	RiskProfile    string    `json:"risk_profile"`
	Verified       bool      `json:"verified"`
	AccountCreated time.Time `json:"account_created"`
}

type PortfolioDTO struct {
	UserID        string  `json:"user_id"`
	TotalInvested float64 `json:"total_invested"`
	TotalReturns  float64 `json:"total_returns"`
	ROI           float64 `json:"roi_pct"`
	DefaultRate   float64 `json:"default_rate_pct"`
	ActiveLoans   int     `json:"active_loans"`
}

func validProfile(p string) bool {
	switch user.RiskProfile(p) {
	case user.ProfileConservative, user.ProfileModerate, user.ProfileAggressive:
		return true
	}
	return false
}

// Register creates an account with a zero balance. Credential storage and
// sign-in live outside the engine; only the constraint checks are ours.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	var fields []validation.FieldError
	if !validation.Email(in.Email) {
		fields = append(fields, validation.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if !validation.Password(in.Password) {
		fields = append(fields, validation.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if in.RiskProfile != "" && !validProfile(in.RiskProfile) {
		fields = append(fields, validation.FieldError{Field: "risk_profile", Message: "must be conservative, moderate or aggressive"})
	}
	if len(fields) > 0 {
		return nil, &validation.Error{Fields: fields}
	}

	profile := user.ProfileModerate
	if in.RiskProfile != "" {
		profile = user.RiskProfile(in.RiskProfile)
	}

	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByEmail(ctx, in.Email); err == nil {
			return user.ErrDuplicateEmail
		}
		acc := &user.User{
			UserID:      id.NewID32(),
			Name:        in.Name,
			Email:       in.Email,
			CreditScore: in.CreditScore,
			RiskProfile: profile,
		}
		if err := r.Users.Create(ctx, acc); err != nil {
			return err
		}
		dto = userDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns one account.
func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc, err := r.Users.GetByUserID(ctx, userID)
		if err != nil {
			return user.ErrNotFound
		}
		dto = userDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Deposit credits the account and logs the movement.
func (u *Usecase) Deposit(ctx context.Context, in BalanceInput) (*UserDTO, error) {
	return u.adjust(ctx, in, "deposit", u.ledger.Deposit)
}

// Withdraw debits the account, never below zero.
func (u *Usecase) Withdraw(ctx context.Context, in BalanceInput) (*UserDTO, error) {
	return u.adjust(ctx, in, "withdraw", u.ledger.Withdraw)
}

func (u *Usecase) adjust(ctx context.Context, in BalanceInput, action string, op func(*user.User, float64) error) (*UserDTO, error) {
	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc, err := r.Users.GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			return user.ErrNotFound
		}
		if err := op(acc, in.Amount); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, acc); err != nil {
			return err
		}
		if err := r.History.Append(ctx, []event.HistoryEntry{{
			UserID: acc.UserID, Action: action, Amount: in.Amount, Timestamp: time.Now().UTC(),
		}}); err != nil {
			return err
		}
		dto = userDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// EditProfile applies the provided fields after validation. Balance and
// investment totals are not editable here; those belong to the ledger.
func (u *Usecase) EditProfile(ctx context.Context, in EditProfileInput) (*UserDTO, error) {
	var fields []validation.FieldError
	if in.Email != nil && !validation.Email(*in.Email) {
		fields = append(fields, validation.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if in.Password != nil && !validation.Password(*in.Password) {
		fields = append(fields, validation.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if in.RiskProfile != nil && !validProfile(*in.RiskProfile) {
		fields = append(fields, validation.FieldError{Field: "risk_profile", Message: "must be conservative, moderate or aggressive"})
	}
	if len(fields) > 0 {
		return nil, &validation.Error{Fields: fields}
	}

	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc, err := r.Users.GetByUserIDForUpdate(ctx, in.UserID)
		if err != nil {
			return user.ErrNotFound
		}
		if in.Email != nil {
			if other, err := r.Users.GetByEmail(ctx, *in.Email); err == nil && other.UserID != acc.UserID {
				return user.ErrDuplicateEmail
			}
			acc.Email = *in.Email
		}
		if in.RiskProfile != nil {
			acc.RiskProfile = user.RiskProfile(*in.RiskProfile)
		}
		if err := r.Users.Save(ctx, acc); err != nil {
			return err
		}
		dto = userDTO(acc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Portfolio summarises a lender's position: ROI over cumulative invested and
// returned money, plus the default rate across their funded loans.
func (u *Usecase) Portfolio(ctx context.Context, userID string) (*PortfolioDTO, error) {
	var dto *PortfolioDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc, err := r.Users.GetByUserID(ctx, userID)
		if err != nil {
			return user.ErrNotFound
		}
		loans, err := r.FundedLoans.ListByLenderID(ctx, userID)
		if err != nil {
			return err
		}
		statuses := make([]string, 0, len(loans))
		active := 0
		for _, l := range loans {
			statuses = append(statuses, string(l.Status))
			if l.Status == loan.FundedActive {
				active++
			}
		}
		dto = &PortfolioDTO{
			UserID:        acc.UserID,
			TotalInvested: acc.TotalInvested,
			TotalReturns:  acc.TotalReturns,
			ROI:           finance.ROI(acc.TotalInvested, acc.TotalReturns),
			DefaultRate:   finance.DefaultRate(statuses),
			ActiveLoans:   active,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// History returns the most recent activity entries for a user.
func (u *Usecase) History(ctx context.Context, userID string, limit int) ([]event.HistoryEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []event.HistoryEntry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		entries, err := r.History.ListByUserID(ctx, userID, limit)
		if err != nil {
			return err
		}
		out = entries
		return nil
	})
	return out, err
}

func userDTO(acc *user.User) *UserDTO {
	return &UserDTO{
		UserID:         acc.UserID,
		Name:           acc.Name,
		Email:          acc.Email,
		AccountBalance: acc.AccountBalance,
		CreditScore:    acc.CreditScore,
		TotalInvested:  acc.TotalInvested,
		TotalReturns:   acc.TotalReturns,
		RiskProfile:    string(acc.RiskProfile),
		Verified:       acc.Verified,
		AccountCreated: acc.AccountCreated,
	}
}
