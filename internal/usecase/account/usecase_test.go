package account

import (
	"context"
	"errors"
	"testing"

	"peerlend/internal/domain/loan"
	"peerlend/internal/domain/user"
	"peerlend/internal/testutil/memstore"
	"peerlend/internal/usecase/ledger"
	"peerlend/internal/validation"
)

func newFixture(t *testing.T) (*memstore.Store, *Usecase) {
	t.Helper()
	store := memstore.New()
	return store, NewUsecase(store, ledger.NewService())
}

func TestRegister_CreatesAccount(t *testing.T) {
	_, uc := newFixture(t)

	dto, err := uc.Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "hunter2", CreditScore: 710,
	})
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if len(dto.UserID) != 32 {
		t.Fatalf("user id length = %d", len(dto.UserID))
	}
	if dto.AccountBalance != 0 || dto.RiskProfile != "moderate" {
		t.Fatalf("defaults wrong: %+v", dto)
	}
}

func TestRegister_ValidatesCredentials(t *testing.T) {
	_, uc := newFixture(t)

	_, err := uc.Register(context.Background(), RegisterInput{
		Name: "Bad", Email: "not-an-email", Password: "short",
	})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *validation.Error", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("field errors = %+v, want email+password", verr.Fields)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, uc := newFixture(t)
	in := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "hunter2"}
	if _, err := uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register err: %v", err)
	}
	if _, err := uc.Register(context.Background(), in); !errors.Is(err, user.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestDepositWithdrawFlow(t *testing.T) {
	store, uc := newFixture(t)
	store.Users["u1"] = user.User{UserID: "u1"}

	dto, err := uc.Deposit(context.Background(), BalanceInput{UserID: "u1", Amount: 500})
	if err != nil {
		t.Fatalf("Deposit err: %v", err)
	}
	if dto.AccountBalance != 500 {
		t.Fatalf("balance = %v, want 500", dto.AccountBalance)
	}

	if _, err := uc.Withdraw(context.Background(), BalanceInput{UserID: "u1", Amount: 600}); !errors.Is(err, user.ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v, want ErrInsufficientFunds", err)
	}
	if store.Users["u1"].AccountBalance != 500 {
		t.Fatal("balance mutated on failed withdraw")
	}

	dto, err = uc.Withdraw(context.Background(), BalanceInput{UserID: "u1", Amount: 200})
	if err != nil {
		t.Fatalf("Withdraw err: %v", err)
	}
	if dto.AccountBalance != 300 {
		t.Fatalf("balance = %v, want 300", dto.AccountBalance)
	}

	entries, err := uc.History(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(entries) != 2 || entries[0].Action != "withdraw" || entries[1].Action != "deposit" {
		t.Fatalf("history = %+v", entries)
	}
}

func TestEditProfile(t *testing.T) {
	store, uc := newFixture(t)
	store.Users["u1"] = user.User{UserID: "u1", Email: "old@example.com", RiskProfile: user.ProfileModerate}

	email := "new@example.com"
	profile := "aggressive"
	dto, err := uc.EditProfile(context.Background(), EditProfileInput{
		UserID: "u1", Email: &email, RiskProfile: &profile,
	})
	if err != nil {
		t.Fatalf("EditProfile err: %v", err)
	}
	if dto.Email != email || dto.RiskProfile != profile {
		t.Fatalf("profile not applied: %+v", dto)
	}

	bad := "nope"
	if _, err := uc.EditProfile(context.Background(), EditProfileInput{UserID: "u1", RiskProfile: &bad}); err == nil {
		t.Fatal("invalid risk profile accepted")
	}
	short := "abc"
	if _, err := uc.EditProfile(context.Background(), EditProfileInput{UserID: "u1", Password: &short}); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestPortfolio(t *testing.T) {
	store, uc := newFixture(t)
	store.Users["lender"] = user.User{UserID: "lender", TotalInvested: 20_000, TotalReturns: 3_000}
	store.FundedLoans["l1"] = loan.Funded{LoanID: "l1", LenderID: "lender", Status: loan.FundedActive}
	store.FundedLoans["l2"] = loan.Funded{LoanID: "l2", LenderID: "lender", Status: loan.FundedDefaulted}
	store.FundedLoans["l3"] = loan.Funded{LoanID: "l3", LenderID: "other", Status: loan.FundedDefaulted}

	dto, err := uc.Portfolio(context.Background(), "lender")
	if err != nil {
		t.Fatalf("Portfolio err: %v", err)
	}
	if dto.ROI != 15 {
		t.Fatalf("ROI = %v, want 15", dto.ROI)
	}
	if dto.DefaultRate != 50 {
		t.Fatalf("default rate = %v, want 50", dto.DefaultRate)
	}
	if dto.ActiveLoans != 1 {
		t.Fatalf("active loans = %d, want 1", dto.ActiveLoans)
	}
}

func TestPortfolio_EmptyLender(t *testing.T) {
	store, uc := newFixture(t)
	store.Users["fresh"] = user.User{UserID: "fresh"}

	dto, err := uc.Portfolio(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Portfolio err: %v", err)
	}
	if dto.ROI != 0 || dto.DefaultRate != 0 {
		t.Fatalf("zero-investment portfolio = %+v", dto)
	}
}
