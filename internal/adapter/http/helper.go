package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"peerlend/internal/domain/creditreport"
	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/negotiation"
	"peerlend/internal/domain/user"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/validation"
)

// ActorHeader carries the authenticated actor's user id. Authentication
// itself is an external collaborator; the engine only needs the identity.
const ActorHeader = "Px-Actor-Id"

func actorID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(ActorHeader))
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

func missingActor(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + ActorHeader})
}

// writeError maps the engine's typed failures onto HTTP statuses. Every
// failure is recovered at this boundary; nothing here is fatal.
func writeError(c echo.Context, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		details := make([]FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, FieldError{Field: f.Field, Message: f.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	}

	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, negotiation.ErrNotFound),
		errors.Is(err, creditreport.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, user.ErrInsufficientFunds):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidPayment), errors.Is(err, ledger.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidTransition), errors.Is(err, user.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate binds the body into req and runs the echo validator.
// On failure it writes the error response itself and reports false.
func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
		return false
	}
	return true
}
