// Package ledger routes every balance mutation through one service so the
// money-conservation invariant is enforced in a single place. Methods mutate
// the passed entities; persisting them is the caller's job, inside the same
// unit of work that mutates the registry.
package ledger

import (
	"errors"

	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/user"
)

// FeeRate is the platform cut taken at funding time. The fee is a sink: it
// is debited from the lender but credited to no party, so total ledger money
// decreases by amount*FeeRate on every funding.
const FeeRate = 0.015

var ErrInvalidAmount = errors.New("amount must be positive")

type Service struct{}

func NewService() *Service { return &Service{} }

// Fund moves principal from lender to borrower minus the platform fee.
// All-or-nothing: on any error neither user is touched.
func (s *Service) Fund(lender, borrower *user.User, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if lender.AccountBalance < amount {
		return user.ErrInsufficientFunds
	}
	fee := amount * FeeRate
	net := amount - fee

	lender.AccountBalance -= amount
	lender.TotalInvested += amount
	borrower.AccountBalance += net
	return nil
}

// Payment moves one installment from payer to payee. minimum is the loan's
// amortized minimum payment; principalShare is the flat per-installment
// principal portion (loan amount / total payments) used to approximate the
// payee's interest earnings.
func (s *Service) Payment(payer, payee *user.User, payment, minimum, principalShare float64) error {
	if payment <= 0 || payment < minimum {
		return loan.ErrInvalidPayment
	}
	if payer.AccountBalance < payment {
		return user.ErrInsufficientFunds
	}

	payer.AccountBalance -= payment
	payee.AccountBalance += payment
	payee.TotalReturns += payment - principalShare
	return nil
}

// Deposit credits a single account.
func (s *Service) Deposit(u *user.User, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	u.AccountBalance += amount
	return nil
}

// Withdraw debits a single account, never below zero.
func (s *Service) Withdraw(u *user.User, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if u.AccountBalance < amount {
		return user.ErrInsufficientFunds
	}
	u.AccountBalance -= amount
	return nil
}
