package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every endpoint on the given echo instance. Mutating
// endpoints identify the acting party via the Px-Actor-Id header.
func RegisterRoutes(e *echo.Echo, h *Handler, acct *AccountHandler, mkt *MarketplaceHandler, cr *CreditReportHandler) {
	e.GET("/health", h.Health)

	e.POST("/users", acct.Register)
	e.GET("/users/:user_id", acct.Get)
	e.PATCH("/users/:user_id", acct.EditProfile)
	e.POST("/users/:user_id/deposit", acct.Deposit)
	e.POST("/users/:user_id/withdraw", acct.Withdraw)
	e.GET("/users/:user_id/portfolio", acct.Portfolio)
	e.GET("/users/:user_id/history", acct.History)
	e.GET("/users/:user_id/loans", mkt.ListLoans)

	e.POST("/loans/requests", mkt.RequestLoan)
	e.GET("/loans/requests", mkt.ListRequests)
	e.GET("/loans/requests/:request_id", mkt.GetRequest)
	e.POST("/loans/requests/:request_id/counter", mkt.CounterOffer)
	e.POST("/loans/requests/:request_id/fund", mkt.FundLoan)
	e.POST("/loans/requests/:request_id/credit-report", cr.Request)

	e.POST("/negotiations/:negotiation_id/accept", mkt.AcceptOffer)
	e.POST("/negotiations/:negotiation_id/reject", mkt.RejectOffer)

	e.GET("/loans/:loan_id", mkt.GetLoan)
	e.GET("/loans/:loan_id/schedule", mkt.Schedule)
	e.POST("/loans/:loan_id/payments", mkt.MakePayment)

	e.POST("/credit-reports/:report_id/submit", cr.Submit)
	e.POST("/credit-reports/:report_id/deny", cr.Deny)
}
