package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"peerlend/internal/usecase/account"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type registerReq struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	CreditScore int    `json:"credit_score" validate:"gte=0,lte=1000"`
	RiskProfile string `json:"risk_profile"`
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req registerReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Register(c.Request().Context(), account.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		CreditScore: req.CreditScore,
		RiskProfile: req.RiskProfile,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AccountHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type editProfileReq struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	RiskProfile *string `json:"risk_profile,omitempty"`
}

func (h *AccountHandler) EditProfile(c echo.Context) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	if actor != c.Param("user_id") {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "can only edit own profile"})
	}
	var req editProfileReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.EditProfile(c.Request().Context(), account.EditProfileInput{
		UserID:      actor,
		Email:       req.Email,
		Password:    req.Password,
		RiskProfile: req.RiskProfile,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type balanceReq struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

func (h *AccountHandler) Deposit(c echo.Context) error {
	return h.adjust(c, h.uc.Deposit)
}

func (h *AccountHandler) Withdraw(c echo.Context) error {
	return h.adjust(c, h.uc.Withdraw)
}

func (h *AccountHandler) adjust(c echo.Context, op func(ctx context.Context, in account.BalanceInput) (*account.UserDTO, error)) error {
	actor, ok := actorID(c)
	if !ok {
		return missingActor(c)
	}
	if actor != c.Param("user_id") {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "can only move own funds"})
	}
	var req balanceReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := op(c.Request().Context(), account.BalanceInput{UserID: actor, Amount: req.Amount})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Portfolio(c echo.Context) error {
	dto, err := h.uc.Portfolio(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.uc.History(c.Request().Context(), c.Param("user_id"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
