package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/user"
	"peerlend/internal/testutil/memstore"
	"peerlend/internal/usecase/account"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/usecase/marketplace"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type handlerFixture struct {
	e     *echo.Echo
	store *memstore.Store
	acct  *AccountHandler
	mkt   *MarketplaceHandler
}

func newHandlerFixture() *handlerFixture {
	store := memstore.New()
	lg := ledger.NewService()
	return &handlerFixture{
		e:     newEchoWithValidator(),
		store: store,
		acct:  NewAccountHandler(account.NewUsecase(store, lg)),
		mkt:   NewMarketplaceHandler(marketplace.NewUsecase(store, lg, nil)),
	}
}

func (f *handlerFixture) seedUser(id string, balance float64, score int) {
	f.store.Users[id] = user.User{
		UserID:         id,
		Name:           "user-" + id[:4],
		Email:          id[:8] + "@example.com",
		AccountBalance: balance,
		CreditScore:    score,
		RiskProfile:    user.ProfileModerate,
		AccountCreated: time.Now().UTC(),
	}
}

func (f *handlerFixture) ctx(method, target string, body *bytes.Reader, actor string) (echo.Context, *httptest.ResponseRecorder) {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if actor != "" {
		req.Header.Set(ActorHeader, actor)
	}
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

var (
	borrowerID = strings.Repeat("b", 32)
	lenderID   = strings.Repeat("c", 32)
)

// -------- account --------

func TestRegister_Success(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.ctx(stdhttp.MethodPost, "/users", mustJSON(map[string]any{
		"name":         "Dewi",
		"email":        "dewi@example.com",
		"password":     "hunter22",
		"credit_score": 700,
	}), "")

	if err := f.acct.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got account.UserDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Email != "dewi@example.com" || got.AccountBalance != 0 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.RiskProfile != string(user.ProfileModerate) {
		t.Fatalf("risk_profile = %s, want moderate default", got.RiskProfile)
	}
}

func TestRegister_BadEmail(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.ctx(stdhttp.MethodPost, "/users", mustJSON(map[string]any{
		"name":     "Dewi",
		"email":    "not-an-email",
		"password": "hunter22",
	}), "")

	if err := f.acct.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestDeposit_WrongActor(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 0, 700)
	c, rec := f.ctx(stdhttp.MethodPost, "/users/"+borrowerID+"/deposit", mustJSON(map[string]any{"amount": 100.0}), lenderID)
	c.SetParamNames("user_id")
	c.SetParamValues(borrowerID)

	if err := f.acct.Deposit(c); err != nil {
		t.Fatalf("Deposit error: %v", err)
	}
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestWithdraw_Insufficient(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 10, 700)
	c, rec := f.ctx(stdhttp.MethodPost, "/users/"+borrowerID+"/withdraw", mustJSON(map[string]any{"amount": 100.0}), borrowerID)
	c.SetParamNames("user_id")
	c.SetParamValues(borrowerID)

	if err := f.acct.Withdraw(c); err != nil {
		t.Fatalf("Withdraw error: %v", err)
	}
	if rec.Code != stdhttp.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
}

// -------- marketplace --------

func TestRequestLoan_Success(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 0, 750)
	c, rec := f.ctx(stdhttp.MethodPost, "/loans/requests", mustJSON(map[string]any{
		"amount":          20000.0,
		"interest_rate":   8.5,
		"duration_months": 36,
		"purpose":         "inventory",
	}), borrowerID)

	if err := f.mkt.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got marketplace.RequestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(loan.RequestPending) {
		t.Fatalf("status = %s, want pending", got.Status)
	}
	if got.RiskRating == "" {
		t.Fatal("risk rating not assigned")
	}
}

func TestRequestLoan_MissingActor(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.ctx(stdhttp.MethodPost, "/loans/requests", mustJSON(map[string]any{
		"amount":          20000.0,
		"interest_rate":   8.5,
		"duration_months": 36,
	}), "")

	if err := f.mkt.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestLoan_TermsOutOfRange(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 0, 750)
	c, rec := f.ctx(stdhttp.MethodPost, "/loans/requests", mustJSON(map[string]any{
		"amount":          50.0, // below floor
		"interest_rate":   8.5,
		"duration_months": 36,
	}), borrowerID)

	if err := f.mkt.RequestLoan(c); err != nil {
		t.Fatalf("RequestLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}
}

func TestFundLoan_Success(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 0, 750)
	f.seedUser(lenderID, 50000, 700)

	// open a request first
	c, rec := f.ctx(stdhttp.MethodPost, "/loans/requests", mustJSON(map[string]any{
		"amount":          20000.0,
		"interest_rate":   8.5,
		"duration_months": 36,
	}), borrowerID)
	if err := f.mkt.RequestLoan(c); err != nil || rec.Code != stdhttp.StatusCreated {
		t.Fatalf("seed request failed: err=%v code=%d", err, rec.Code)
	}
	var reqDTO marketplace.RequestDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &reqDTO)

	c, rec = f.ctx(stdhttp.MethodPost, "/loans/requests/"+reqDTO.RequestID+"/fund", nil, lenderID)
	c.SetParamNames("request_id")
	c.SetParamValues(reqDTO.RequestID)

	if err := f.mkt.FundLoan(c); err != nil {
		t.Fatalf("FundLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got marketplace.FundedLoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(loan.FundedActive) || got.TotalPayments != 36 {
		t.Fatalf("unexpected loan: %+v", got)
	}
	if got.MinimumPayment <= 0 {
		t.Fatal("minimum payment missing from DTO")
	}

	// lender balance moved, borrower credited net of fee
	if f.store.Users[lenderID].AccountBalance != 30000 {
		t.Fatalf("lender balance = %v, want 30000", f.store.Users[lenderID].AccountBalance)
	}
	if f.store.Users[borrowerID].AccountBalance != 19700 {
		t.Fatalf("borrower balance = %v, want 19700", f.store.Users[borrowerID].AccountBalance)
	}
}

func TestFundLoan_InsufficientFunds(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 0, 750)
	f.seedUser(lenderID, 100, 700)
	f.store.Requests["r1"] = loan.Request{
		RequestID: "r1", BorrowerID: borrowerID,
		Amount: 20000, InterestRate: 8.5, Duration: 36,
		RiskRating: "A", Status: loan.RequestPending,
	}

	c, rec := f.ctx(stdhttp.MethodPost, "/loans/requests/r1/fund", nil, lenderID)
	c.SetParamNames("request_id")
	c.SetParamValues("r1")

	if err := f.mkt.FundLoan(c); err != nil {
		t.Fatalf("FundLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
}

func TestMakePayment_BelowMinimum(t *testing.T) {
	f := newHandlerFixture()
	f.seedUser(borrowerID, 5000, 750)
	f.seedUser(lenderID, 0, 700)
	f.store.FundedLoans["l1"] = loan.Funded{
		LoanID: "l1", RequestID: "r1",
		BorrowerID: borrowerID, LenderID: lenderID,
		Amount: 20000, InterestRate: 8.5,
		OutstandingBalance: 20000, TotalPayments: 36,
		Status: loan.FundedActive, FundedDate: time.Now().UTC(),
	}

	c, rec := f.ctx(stdhttp.MethodPost, "/loans/l1/payments", mustJSON(map[string]any{"amount": 1.0}), borrowerID)
	c.SetParamNames("loan_id")
	c.SetParamValues("l1")

	if err := f.mkt.MakePayment(c); err != nil {
		t.Fatalf("MakePayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.ctx(stdhttp.MethodGet, "/loans/nope", nil, "")
	c.SetParamNames("loan_id")
	c.SetParamValues("nope")

	if err := f.mkt.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
