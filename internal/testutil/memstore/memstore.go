// Package memstore is an in-memory implementation of every repository plus
// the unit of work, for usecase tests. Reads hand out copies and writes go
// through Save/Create, mirroring how the gorm repositories behave: an
// operation that fails before saving leaves the store untouched.
package memstore

import (
	"context"
	"sort"
	"sync"

	"peerlend/internal/domain/creditreport"
	"peerlend/internal/domain/event"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/negotiation"
	"peerlend/internal/domain/uow"
	"peerlend/internal/domain/user"
)

type Store struct {
	mu            sync.Mutex
	Users         map[string]user.User
	Requests      map[string]loan.Request
	FundedLoans   map[string]loan.Funded
	Negotiations  map[string]negotiation.Negotiation
	CreditReports map[string]creditreport.Request
	HistoryLog    []event.HistoryEntry
}

func New() *Store {
	return &Store{
		Users:         map[string]user.User{},
		Requests:      map[string]loan.Request{},
		FundedLoans:   map[string]loan.Funded{},
		Negotiations:  map[string]negotiation.Negotiation{},
		CreditReports: map[string]creditreport.Request{},
	}
}

// WithinTx satisfies uow.UnitOfWork. Operations are serialized under one
// lock, matching the single mutual-exclusion scope the engine requires.
func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(uow.Repos{
		Users:         (*userRepo)(s),
		Requests:      (*requestRepo)(s),
		FundedLoans:   (*fundedRepo)(s),
		Negotiations:  (*negotiationRepo)(s),
		CreditReports: (*creditReportRepo)(s),
		History:       (*historyRepo)(s),
	})
}

// ---- users ----

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.Users[u.UserID] = *u
	return nil
}

func (r *userRepo) GetByUserID(_ context.Context, userID string) (*user.User, error) {
	u, ok := r.Users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *userRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*user.User, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *userRepo) Save(_ context.Context, u *user.User) error {
	r.Users[u.UserID] = *u
	return nil
}

// ---- loan requests ----

type requestRepo Store

func (r *requestRepo) Create(_ context.Context, req *loan.Request) error {
	r.Requests[req.RequestID] = *req
	return nil
}

func (r *requestRepo) GetByRequestID(_ context.Context, requestID string) (*loan.Request, error) {
	req, ok := r.Requests[requestID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := req
	return &cp, nil
}

func (r *requestRepo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*loan.Request, error) {
	return r.GetByRequestID(ctx, requestID)
}

func (r *requestRepo) ListOpen(_ context.Context) ([]loan.Request, error) {
	out := make([]loan.Request, 0, len(r.Requests))
	for _, req := range r.Requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out, nil
}

func (r *requestRepo) Save(_ context.Context, req *loan.Request) error {
	r.Requests[req.RequestID] = *req
	return nil
}

func (r *requestRepo) Delete(_ context.Context, req *loan.Request) error {
	delete(r.Requests, req.RequestID)
	return nil
}

// ---- funded loans ----

type fundedRepo Store

func (r *fundedRepo) Create(_ context.Context, l *loan.Funded) error {
	r.FundedLoans[l.LoanID] = *l
	return nil
}

func (r *fundedRepo) GetByLoanID(_ context.Context, loanID string) (*loan.Funded, error) {
	l, ok := r.FundedLoans[loanID]
	if !ok {
		return nil, loan.ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (r *fundedRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Funded, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *fundedRepo) ListByBorrowerID(_ context.Context, borrowerID string) ([]loan.Funded, error) {
	var out []loan.Funded
	for _, l := range r.FundedLoans {
		if l.BorrowerID == borrowerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fundedRepo) ListByLenderID(_ context.Context, lenderID string) ([]loan.Funded, error) {
	var out []loan.Funded
	for _, l := range r.FundedLoans {
		if l.LenderID == lenderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fundedRepo) Save(_ context.Context, l *loan.Funded) error {
	r.FundedLoans[l.LoanID] = *l
	return nil
}

// ---- negotiations ----

type negotiationRepo Store

func (r *negotiationRepo) Create(_ context.Context, n *negotiation.Negotiation) error {
	r.Negotiations[n.NegotiationID] = *n
	return nil
}

func (r *negotiationRepo) GetByNegotiationID(_ context.Context, negotiationID string) (*negotiation.Negotiation, error) {
	n, ok := r.Negotiations[negotiationID]
	if !ok {
		return nil, negotiation.ErrNotFound
	}
	cp := n
	return &cp, nil
}

func (r *negotiationRepo) GetByRequestID(_ context.Context, requestID string) (*negotiation.Negotiation, error) {
	for _, n := range r.Negotiations {
		if n.RequestID == requestID {
			cp := n
			return &cp, nil
		}
	}
	return nil, negotiation.ErrNotFound
}

func (r *negotiationRepo) DeleteByRequestID(_ context.Context, requestID string) error {
	for id, n := range r.Negotiations {
		if n.RequestID == requestID {
			delete(r.Negotiations, id)
		}
	}
	return nil
}

func (r *negotiationRepo) Delete(_ context.Context, n *negotiation.Negotiation) error {
	delete(r.Negotiations, n.NegotiationID)
	return nil
}

// ---- credit reports ----

type creditReportRepo Store

func (r *creditReportRepo) Create(_ context.Context, cr *creditreport.Request) error {
	r.CreditReports[cr.ReportID] = *cr
	return nil
}

func (r *creditReportRepo) GetByReportID(_ context.Context, reportID string) (*creditreport.Request, error) {
	cr, ok := r.CreditReports[reportID]
	if !ok {
		return nil, creditreport.ErrNotFound
	}
	cp := cr
	return &cp, nil
}

func (r *creditReportRepo) ListByRequestID(_ context.Context, requestID string) ([]creditreport.Request, error) {
	var out []creditreport.Request
	for _, cr := range r.CreditReports {
		if cr.RequestID == requestID {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (r *creditReportRepo) DeleteByRequestID(_ context.Context, requestID string) error {
	for id, cr := range r.CreditReports {
		if cr.RequestID == requestID {
			delete(r.CreditReports, id)
		}
	}
	return nil
}

func (r *creditReportRepo) Delete(_ context.Context, cr *creditreport.Request) error {
	delete(r.CreditReports, cr.ReportID)
	return nil
}

func (r *creditReportRepo) Save(_ context.Context, cr *creditreport.Request) error {
	r.CreditReports[cr.ReportID] = *cr
	return nil
}

// ---- history ----

type historyRepo Store

func (r *historyRepo) Append(_ context.Context, entries []event.HistoryEntry) error {
	r.HistoryLog = append(r.HistoryLog, entries...)
	return nil
}

func (r *historyRepo) ListByUserID(_ context.Context, userID string, limit int) ([]event.HistoryEntry, error) {
	var out []event.HistoryEntry
	for i := len(r.HistoryLog) - 1; i >= 0 && len(out) < limit; i-- {
		if r.HistoryLog[i].UserID == userID {
			out = append(out, r.HistoryLog[i])
		}
	}
	return out, nil
}
