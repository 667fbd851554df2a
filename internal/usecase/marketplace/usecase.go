// Package marketplace is the engine facade for the loan lifecycle: request,
// counter-offer, accept/reject, fund and pay. Every mutating operation runs
// inside one unit of work so ledger and registry change together or not at
// all, and produces its notifications and history entries deterministically
// from the outcome.
package marketplace

import (
	"context"
	"fmt"
	"time"

	"peerlend/internal/domain/event"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/negotiation"
	"peerlend/internal/domain/uow"
	"peerlend/internal/domain/user"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/validation"
	"peerlend/pkg/finance"
	"peerlend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	ledger   *ledger.Service
	notifier event.Notifier
}

func NewUsecase(tx uow.UnitOfWork, lg *ledger.Service, n event.Notifier) *Usecase {
	return &Usecase{uow: tx, ledger: lg, notifier: n}
}

func (u *Usecase) notify(ctx context.Context, notes []event.Notification) {
	if u.notifier != nil && len(notes) > 0 {
		u.notifier.Notify(ctx, notes)
	}
}

// RequestLoan opens a new borrower offer. The risk rating is derived once
// here from (borrower credit, amount, duration) and is never recomputed,
// even if the terms later change through an accepted counter-offer.
func (u *Usecase) RequestLoan(ctx context.Context, in RequestLoanInput) (*RequestDTO, error) {
	if verr := validation.LoanTerms(in.Amount, in.Rate, in.Duration); verr != nil {
		return nil, verr
	}

	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		borrower, err := r.Users.GetByUserID(ctx, in.BorrowerID)
		if err != nil {
			return user.ErrNotFound
		}

		req := &loan.Request{
			RequestID:    id.NewID32(),
			BorrowerID:   borrower.UserID,
			Amount:       in.Amount,
			InterestRate: in.Rate,
			Duration:     in.Duration,
			Purpose:      in.Purpose,
			RiskRating:   finance.RiskRating(borrower.CreditScore, in.Amount, in.Duration),
			Status:       loan.RequestPending,
		}
		if err := r.Requests.Create(ctx, req); err != nil {
			return err
		}
		if err := r.History.Append(ctx, []event.HistoryEntry{{
			UserID: borrower.UserID, Action: "loan_requested", LoanID: req.RequestID,
			Amount: req.Amount, Timestamp: time.Now().UTC(),
		}}); err != nil {
			return err
		}
		dto = requestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CounterOffer attaches (or replaces) the negotiation on an open request.
// The original-terms snapshot always comes from the request itself, so a
// re-counter ignores whatever the previous counter proposed.
func (u *Usecase) CounterOffer(ctx context.Context, in CounterOfferInput) (*NegotiationDTO, error) {
	if verr := validation.LoanTerms(in.Amount, in.Rate, in.Duration); verr != nil {
		return nil, verr
	}

	var (
		dto   *NegotiationDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, in.RequestID)
		if err != nil {
			return loan.ErrNotFound
		}
		if req.BorrowerID == in.LenderID {
			return loan.ErrUnauthorized
		}

		// Replace any prior counter on this request.
		if err := r.Negotiations.DeleteByRequestID(ctx, req.RequestID); err != nil {
			return err
		}
		n := &negotiation.Negotiation{
			NegotiationID: id.NewID32(),
			RequestID:     req.RequestID,
			LenderID:      in.LenderID,
			BorrowerID:    req.BorrowerID,
			OrigAmount:    req.Amount,
			OrigRate:      req.InterestRate,
			OrigDuration:  req.Duration,
			Amount:        in.Amount,
			Rate:          in.Rate,
			Duration:      in.Duration,
		}
		if err := r.Negotiations.Create(ctx, n); err != nil {
			return err
		}

		req.Status = loan.RequestNegotiating
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		if err := r.History.Append(ctx, []event.HistoryEntry{{
			UserID: in.LenderID, Action: "counter_offered", LoanID: req.RequestID,
			Amount: in.Amount, Timestamp: time.Now().UTC(),
		}}); err != nil {
			return err
		}

		notes = []event.Notification{{
			RecipientUserID: req.BorrowerID,
			Kind:            event.KindCounterOffer,
			Message:         fmt.Sprintf("New counter-offer on your loan request: %.2f at %.2f%% for %d months", in.Amount, in.Rate, in.Duration),
		}}
		dto = negotiationDTO(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// AcceptOffer overwrites the request's terms with the counter terms and
// removes the negotiation. The request becomes biddable again under the new
// terms; its risk rating stays tied to the original ones.
func (u *Usecase) AcceptOffer(ctx context.Context, in OfferDecisionInput) (*RequestDTO, error) {
	var (
		dto   *RequestDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Negotiations.GetByNegotiationID(ctx, in.NegotiationID)
		if err != nil {
			return negotiation.ErrNotFound
		}
		if n.BorrowerID != in.BorrowerID {
			return loan.ErrUnauthorized
		}
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, n.RequestID)
		if err != nil {
			return loan.ErrNotFound
		}

		req.Amount = n.Amount
		req.InterestRate = n.Rate
		req.Duration = n.Duration
		req.Status = loan.RequestPending
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		if err := r.Negotiations.Delete(ctx, n); err != nil {
			return err
		}
		if err := r.History.Append(ctx, []event.HistoryEntry{{
			UserID: in.BorrowerID, Action: "offer_accepted", LoanID: req.RequestID,
			Amount: req.Amount, Timestamp: time.Now().UTC(),
		}}); err != nil {
			return err
		}

		notes = []event.Notification{{
			RecipientUserID: n.LenderID,
			Kind:            event.KindOfferAccepted,
			Message:         fmt.Sprintf("Your counter-offer on request %s was accepted", req.RequestID),
		}}
		dto = requestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// RejectOffer discards the negotiation and leaves the request unchanged.
func (u *Usecase) RejectOffer(ctx context.Context, in OfferDecisionInput) error {
	var notes []event.Notification
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Negotiations.GetByNegotiationID(ctx, in.NegotiationID)
		if err != nil {
			return negotiation.ErrNotFound
		}
		if n.BorrowerID != in.BorrowerID {
			return loan.ErrUnauthorized
		}
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, n.RequestID)
		if err != nil {
			return loan.ErrNotFound
		}

		if err := r.Negotiations.Delete(ctx, n); err != nil {
			return err
		}
		req.Status = loan.RequestPending
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		notes = []event.Notification{{
			RecipientUserID: n.LenderID,
			Kind:            event.KindOfferRejected,
			Message:         fmt.Sprintf("Your counter-offer on request %s was rejected", req.RequestID),
		}}
		return nil
	})
	if err != nil {
		return err
	}
	u.notify(ctx, notes)
	return nil
}

// FundLoan converts an open request into an active funded loan: one atomic
// step covering the lender→borrower transfer (minus the platform fee), the
// funded-loan record, and removal of the request plus every negotiation and
// credit-report request referencing it.
func (u *Usecase) FundLoan(ctx context.Context, in FundLoanInput) (*FundedLoanDTO, error) {
	var (
		dto   *FundedLoanDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, in.RequestID)
		if err != nil {
			return loan.ErrNotFound
		}
		if req.BorrowerID == in.LenderID {
			return loan.ErrUnauthorized
		}
		lender, err := r.Users.GetByUserIDForUpdate(ctx, in.LenderID)
		if err != nil {
			return user.ErrNotFound
		}
		borrower, err := r.Users.GetByUserIDForUpdate(ctx, req.BorrowerID)
		if err != nil {
			return user.ErrNotFound
		}

		if err := u.ledger.Fund(lender, borrower, req.Amount); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, lender); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, borrower); err != nil {
			return err
		}

		fl := &loan.Funded{
			LoanID:             id.NewID32(),
			RequestID:          req.RequestID,
			BorrowerID:         req.BorrowerID,
			LenderID:           lender.UserID,
			Amount:             req.Amount,
			InterestRate:       req.InterestRate,
			Purpose:            req.Purpose,
			RiskRating:         req.RiskRating,
			OutstandingBalance: req.Amount,
			TotalPayments:      req.Duration,
			PaymentsMade:       0,
			Status:             loan.FundedActive,
			FundedDate:         time.Now().UTC(),
		}
		if err := r.FundedLoans.Create(ctx, fl); err != nil {
			return err
		}

		// The request is gone after funding; so is everything hanging off it.
		if err := r.Requests.Delete(ctx, req); err != nil {
			return err
		}
		if err := r.Negotiations.DeleteByRequestID(ctx, req.RequestID); err != nil {
			return err
		}
		if err := r.CreditReports.DeleteByRequestID(ctx, req.RequestID); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := r.History.Append(ctx, []event.HistoryEntry{
			{UserID: lender.UserID, Action: "loan_funded", LoanID: fl.LoanID, Amount: fl.Amount, Timestamp: now},
			{UserID: borrower.UserID, Action: "loan_received", LoanID: fl.LoanID, Amount: fl.Amount, Timestamp: now},
		}); err != nil {
			return err
		}

		notes = []event.Notification{{
			RecipientUserID: borrower.UserID,
			Kind:            event.KindLoanFunded,
			Message:         fmt.Sprintf("Your loan request for %.2f was funded", fl.Amount),
		}}
		dto = fundedDTO(fl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// MakePayment services an active loan: the borrower pays at least the
// amortized minimum, the outstanding balance drops (floored at zero), and
// hitting exactly zero retires the loan.
func (u *Usecase) MakePayment(ctx context.Context, in MakePaymentInput) (*FundedLoanDTO, error) {
	var (
		dto   *FundedLoanDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		fl, err := r.FundedLoans.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return loan.ErrNotFound
		}
		if fl.BorrowerID != in.BorrowerID {
			return loan.ErrUnauthorized
		}
		if fl.Status != loan.FundedActive {
			return loan.ErrInvalidTransition
		}

		payer, err := r.Users.GetByUserIDForUpdate(ctx, fl.BorrowerID)
		if err != nil {
			return user.ErrNotFound
		}
		payee, err := r.Users.GetByUserIDForUpdate(ctx, fl.LenderID)
		if err != nil {
			return user.ErrNotFound
		}

		minimum := finance.MinimumPayment(fl.Amount, fl.InterestRate, fl.TotalPayments)
		principalShare := fl.Amount / float64(fl.TotalPayments)
		if err := u.ledger.Payment(payer, payee, in.Amount, minimum, principalShare); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, payer); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, payee); err != nil {
			return err
		}

		fl.OutstandingBalance -= in.Amount
		if fl.OutstandingBalance <= 0 {
			fl.OutstandingBalance = 0
			fl.Status = loan.FundedPaidOff
		}
		fl.PaymentsMade++
		if err := r.FundedLoans.Save(ctx, fl); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := r.History.Append(ctx, []event.HistoryEntry{
			{UserID: payer.UserID, Action: "payment_made", LoanID: fl.LoanID, Amount: in.Amount, Timestamp: now},
			{UserID: payee.UserID, Action: "payment_received", LoanID: fl.LoanID, Amount: in.Amount, Timestamp: now},
		}); err != nil {
			return err
		}

		notes = []event.Notification{{
			RecipientUserID: payee.UserID,
			Kind:            event.KindPaymentReceived,
			Message:         fmt.Sprintf("Payment of %.2f received on loan %s", in.Amount, fl.LoanID),
		}}
		if fl.Status == loan.FundedPaidOff {
			notes = append(notes, event.Notification{
				RecipientUserID: payer.UserID,
				Kind:            event.KindLoanPaidOff,
				Message:         fmt.Sprintf("Loan %s is fully paid off", fl.LoanID),
			})
		}
		dto = fundedDTO(fl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// ListOpenRequests returns every request still open for funding.
func (u *Usecase) ListOpenRequests(ctx context.Context) ([]RequestDTO, error) {
	var out []RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		reqs, err := r.Requests.ListOpen(ctx)
		if err != nil {
			return err
		}
		out = make([]RequestDTO, 0, len(reqs))
		for i := range reqs {
			out = append(out, *requestDTO(&reqs[i]))
		}
		return nil
	})
	return out, err
}

// GetRequest returns one open request with its pending negotiation, if any.
func (u *Usecase) GetRequest(ctx context.Context, requestID string) (*RequestDTO, *NegotiationDTO, error) {
	var (
		rdto *RequestDTO
		ndto *NegotiationDTO
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestID(ctx, requestID)
		if err != nil {
			return loan.ErrNotFound
		}
		rdto = requestDTO(req)
		if n, err := r.Negotiations.GetByRequestID(ctx, requestID); err == nil {
			ndto = negotiationDTO(n)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rdto, ndto, nil
}

// GetLoan returns one funded loan.
func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*FundedLoanDTO, error) {
	var dto *FundedLoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		fl, err := r.FundedLoans.GetByLoanID(ctx, loanID)
		if err != nil {
			return loan.ErrNotFound
		}
		dto = fundedDTO(fl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListLoans returns the funded loans a user participates in, on either side.
func (u *Usecase) ListLoans(ctx context.Context, userID string) ([]FundedLoanDTO, error) {
	var out []FundedLoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		borrowed, err := r.FundedLoans.ListByBorrowerID(ctx, userID)
		if err != nil {
			return err
		}
		lent, err := r.FundedLoans.ListByLenderID(ctx, userID)
		if err != nil {
			return err
		}
		out = make([]FundedLoanDTO, 0, len(borrowed)+len(lent))
		for i := range borrowed {
			out = append(out, *fundedDTO(&borrowed[i]))
		}
		for i := range lent {
			out = append(out, *fundedDTO(&lent[i]))
		}
		return nil
	})
	return out, err
}

// Schedule projects the next unpaid installments of a funded loan for
// display. The real balance moves only through MakePayment.
func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	var dto *ScheduleDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		fl, err := r.FundedLoans.GetByLoanID(ctx, loanID)
		if err != nil {
			return loan.ErrNotFound
		}
		monthly := finance.MinimumPayment(fl.Amount, fl.InterestRate, fl.TotalPayments)
		dto = &ScheduleDTO{
			LoanID:         fl.LoanID,
			MonthlyPayment: monthly,
			Installments:   finance.PaymentSchedule(monthly, fl.OutstandingBalance, fl.PaymentsMade, fl.TotalPayments, fl.FundedDate),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func requestDTO(r *loan.Request) *RequestDTO {
	return &RequestDTO{
		RequestID:    r.RequestID,
		BorrowerID:   r.BorrowerID,
		Amount:       r.Amount,
		InterestRate: r.InterestRate,
		Duration:     r.Duration,
		Purpose:      r.Purpose,
		RiskRating:   r.RiskRating,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func negotiationDTO(n *negotiation.Negotiation) *NegotiationDTO {
	return &NegotiationDTO{
		NegotiationID: n.NegotiationID,
		RequestID:     n.RequestID,
		LenderID:      n.LenderID,
		BorrowerID:    n.BorrowerID,
		OrigAmount:    n.OrigAmount,
		OrigRate:      n.OrigRate,
		OrigDuration:  n.OrigDuration,
		Amount:        n.Amount,
		Rate:          n.Rate,
		Duration:      n.Duration,
	}
}

func fundedDTO(l *loan.Funded) *FundedLoanDTO {
	return &FundedLoanDTO{
		LoanID:             l.LoanID,
		RequestID:          l.RequestID,
		BorrowerID:         l.BorrowerID,
		LenderID:           l.LenderID,
		Amount:             l.Amount,
		InterestRate:       l.InterestRate,
		RiskRating:         l.RiskRating,
		OutstandingBalance: l.OutstandingBalance,
		TotalPayments:      l.TotalPayments,
		PaymentsMade:       l.PaymentsMade,
		Status:             string(l.Status),
		FundedDate:         l.FundedDate,
		MinimumPayment:     finance.MinimumPayment(l.Amount, l.InterestRate, l.TotalPayments),
	}
}
