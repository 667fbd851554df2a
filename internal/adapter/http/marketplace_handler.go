package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend/internal/usecase/marketplace"
)

type MarketplaceHandler struct{ uc *marketplace.Usecase }

func NewMarketplaceHandler(uc *marketplace.Usecase) *MarketplaceHandler {
	return &MarketplaceHandler{uc: uc}
}

type loanTermsReq struct {
	Amount   float64 `json:"amount" validate:"required"`
	Rate     float64 `json:"interest_rate" validate:"required"`
	Duration int     `json:"duration_months" validate:"required"`
	Purpose  string  `json:"purpose"`
}

func (h *MarketplaceHandler) RequestLoan(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	var req loanTermsReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.RequestLoan(c.Request().Context(), marketplace.RequestLoanInput{
		BorrowerID: actor,
		Amount:     req.Amount,
		Rate:       req.Rate,
		Duration:   req.Duration,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketplaceHandler) ListRequests(c echo.Context) error {
	out, err := h.uc.ListOpenRequests(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketplaceHandler) GetRequest(c echo.Context) error {
	req, neg, err := h.uc.GetRequest(c.Request().Context(), c.Param("request_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"request":     req,
		"negotiation": neg,
	})
}

func (h *MarketplaceHandler) CounterOffer(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	var req loanTermsReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.CounterOffer(c.Request().Context(), marketplace.CounterOfferInput{
		LenderID:  actor,
		RequestID: c.Param("request_id"),
		Amount:    req.Amount,
		Rate:      req.Rate,
		Duration:  req.Duration,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MarketplaceHandler) AcceptOffer(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	dto, err := h.uc.AcceptOffer(c.Request().Context(), marketplace.OfferDecisionInput{
		BorrowerID:    actor,
		NegotiationID: c.Param("negotiation_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) RejectOffer(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	if err := h.uc.RejectOffer(c.Request().Context(), marketplace.OfferDecisionInput{
		BorrowerID:    actor,
		NegotiationID: c.Param("negotiation_id"),
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MarketplaceHandler) FundLoan(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	dto, err := h.uc.FundLoan(c.Request().Context(), marketplace.FundLoanInput{
		LenderID:  actor,
		RequestID: c.Param("request_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type paymentReq struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

func (h *MarketplaceHandler) MakePayment(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	var req paymentReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.MakePayment(c.Request().Context(), marketplace.MakePaymentInput{
		BorrowerID: actor,
		LoanID:     c.Param("loan_id"),
		Amount:     req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.GetLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MarketplaceHandler) ListLoans(c echo.Context) error {
	out, err := h.uc.ListLoans(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MarketplaceHandler) Schedule(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
