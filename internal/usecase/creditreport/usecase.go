// Package creditreport implements the side protocol that gates display of a
// borrower's credit data to a prospective lender. It never gates funding.
package creditreport

import (
	"context"
	"fmt"

	"peerlend/internal/domain/creditreport"
	"peerlend/internal/domain/event"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/uow"
	"peerlend/pkg/id"
)

type Usecase struct {
	uow      uow.UnitOfWork
	notifier event.Notifier
}

func NewUsecase(tx uow.UnitOfWork, n event.Notifier) *Usecase {
	return &Usecase{uow: tx, notifier: n}
}

func (u *Usecase) notify(ctx context.Context, notes []event.Notification) {
	if u.notifier != nil && len(notes) > 0 {
		u.notifier.Notify(ctx, notes)
	}
}

type RequestInput struct {
	RequesterID string `json:"requester_id"`
	RequestID   string `json:"request_id"`
}

type DecisionInput struct {
	BorrowerID string `json:"borrower_id"`
	ReportID   string `json:"report_id"`
	Report     string `json:"report,omitempty"`
}

type ReportDTO struct {
	ReportID    string `json:"report_id"`
	RequestID   string `json:"request_id"`
	RequesterID string `json:"requester_id"`
	BorrowerID  string `json:"borrower_id"`
	Status      string `json:"status"`
	Report      string `json:"report,omitempty"`
}

// Request opens a pending credit-report request against an open loan request.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*ReportDTO, error) {
	var (
		dto   *ReportDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.Requests.GetByRequestID(ctx, in.RequestID)
		if err != nil {
			return loan.ErrNotFound
		}
		if req.BorrowerID == in.RequesterID {
			return loan.ErrUnauthorized
		}
		cr := &creditreport.Request{
			ReportID:    id.NewID32(),
			RequestID:   req.RequestID,
			RequesterID: in.RequesterID,
			BorrowerID:  req.BorrowerID,
			Status:      creditreport.StatusPending,
		}
		if err := r.CreditReports.Create(ctx, cr); err != nil {
			return err
		}
		notes = []event.Notification{{
			RecipientUserID: req.BorrowerID,
			Kind:            event.KindReportRequested,
			Message:         fmt.Sprintf("A lender requested your credit report for request %s", req.RequestID),
		}}
		dto = reportDTO(cr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// Submit approves the request and attaches the borrower's report payload.
func (u *Usecase) Submit(ctx context.Context, in DecisionInput) (*ReportDTO, error) {
	var (
		dto   *ReportDTO
		notes []event.Notification
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cr, err := r.CreditReports.GetByReportID(ctx, in.ReportID)
		if err != nil {
			return creditreport.ErrNotFound
		}
		if cr.BorrowerID != in.BorrowerID {
			return loan.ErrUnauthorized
		}
		cr.Status = creditreport.StatusApproved
		cr.Report = in.Report
		if err := r.CreditReports.Save(ctx, cr); err != nil {
			return err
		}
		notes = []event.Notification{{
			RecipientUserID: cr.RequesterID,
			Kind:            event.KindReportSubmitted,
			Message:         fmt.Sprintf("Credit report for request %s is available", cr.RequestID),
		}}
		dto = reportDTO(cr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.notify(ctx, notes)
	return dto, nil
}

// Deny removes the pending request without sharing anything.
func (u *Usecase) Deny(ctx context.Context, in DecisionInput) error {
	var notes []event.Notification
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cr, err := r.CreditReports.GetByReportID(ctx, in.ReportID)
		if err != nil {
			return creditreport.ErrNotFound
		}
		if cr.BorrowerID != in.BorrowerID {
			return loan.ErrUnauthorized
		}
		if err := r.CreditReports.Delete(ctx, cr); err != nil {
			return err
		}
		notes = []event.Notification{{
			RecipientUserID: cr.RequesterID,
			Kind:            event.KindReportDenied,
			Message:         fmt.Sprintf("Credit report request for %s was denied", cr.RequestID),
		}}
		return nil
	})
	if err != nil {
		return err
	}
	u.notify(ctx, notes)
	return nil
}

func reportDTO(cr *creditreport.Request) *ReportDTO {
	return &ReportDTO{
		ReportID:    cr.ReportID,
		RequestID:   cr.RequestID,
		RequesterID: cr.RequesterID,
		BorrowerID:  cr.BorrowerID,
		Status:      string(cr.Status),
		Report:      cr.Report,
	}
}
