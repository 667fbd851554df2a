package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend/internal/usecase/creditreport"
)

type CreditReportHandler struct{ uc *creditreport.Usecase }

func NewCreditReportHandler(uc *creditreport.Usecase) *CreditReportHandler {
	return &CreditReportHandler{uc: uc}
}

func (h *CreditReportHandler) Request(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	dto, err := h.uc.Request(c.Request().Context(), creditreport.RequestInput{
		RequesterID: actor,
		RequestID:   c.Param("request_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type submitReportReq struct {
	Report string `json:"report" validate:"required"`
}

func (h *CreditReportHandler) Submit(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	var req submitReportReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Submit(c.Request().Context(), creditreport.DecisionInput{
		BorrowerID: actor,
		ReportID:   c.Param("report_id"),
		Report:     req.Report,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditReportHandler) Deny(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	if err := h.uc.Deny(c.Request().Context(), creditreport.DecisionInput{
		BorrowerID: actor,
		ReportID:   c.Param("report_id"),
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
