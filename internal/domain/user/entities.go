package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// RiskProfile is the investor's declared appetite, edited via the profile
// operation. Purely informational; nothing in the engine branches on it.
type RiskProfile string

const (
	ProfileConservative RiskProfile = "conservative"
	ProfileModerate     RiskProfile = "moderate"
	ProfileAggressive   RiskProfile = "aggressive"
)

// User is the ledger-owned account record. Balance, TotalInvested and
// TotalReturns change only through the ledger service inside a unit of work.
type User struct {
	ID             uint64      `gorm:"primaryKey;column:id" json:"-"`
	UserID         string      `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name           string      `gorm:"size:128" json:"name"`
	Email          string      `gorm:"size:255;uniqueIndex:ux_users_email" json:"email"`
	AccountBalance float64     `gorm:"type:decimal(18,2)" json:"account_balance"`
	CreditScore    int         `json:"credit_score"`
	TotalInvested  float64     `gorm:"type:decimal(18,2)" json:"total_invested"`
	TotalReturns   float64     `gorm:"type:decimal(18,2)" json:"total_returns"`
	RiskProfile    RiskProfile `gorm:"size:16;default:'moderate'" json:"risk_profile"`
	Verified       bool        `json:"verified"`
	AccountCreated time.Time   `gorm:"autoCreateTime" json:"account_created"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
