package models

import "github.com/shopspring/decimal"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking     AccountType = "checking"
	AccountTypeSavings      AccountType = "savings"
	AccountTypeInvestment   AccountType = "investment"
	AccountTypeCreditCard   AccountType = "credit_card"
	AccountTypeLoan         AccountType = "loan"
	AccountTypeLineOfCredit AccountType = "line_of_credit"
	AccountTypeUtility      AccountType = "utility"
	AccountTypeInsurance    AccountType = "insurance"
	AccountTypeSubscription AccountType = "subscription"
)

// AccountStatus represents the lifecycle status of an account
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusClosed   AccountStatus = "closed"
)

// IsLiquid reports whether balances of this account type count toward savings
// in summaries and projections.
func (t AccountType) IsLiquid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment:
		return true
	}
	return false
}

// CanCarryDebt reports whether a debt may be attached to this account type.
func (t AccountType) CanCarryDebt() bool {
	switch t {
	case AccountTypeCreditCard, AccountTypeLoan, AccountTypeLineOfCredit:
		return true
	}
	return false
}

// Account represents a financial account in the system.
//
// Balance is derived state: it is recomputed from StartingBalance plus
// allocated revenue minus payments sourced from the account on every
// recomputation pass, and is never mutated independently.
type Account struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string          `gorm:"not null" json:"name"`
	Type            AccountType     `gorm:"not null" json:"type"`
	Status          AccountStatus   `gorm:"not null;default:'active'" json:"status"`
	StartingBalance decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"starting_balance"`
	Balance         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"balance"`
	AccountLimit    decimal.Decimal `gorm:"type:decimal(20,4)" json:"account_limit"`

	// Relationships
	Debt     *Debt     `gorm:"foreignKey:AccountID" json:"debt,omitempty"`
	Payments []Payment `gorm:"foreignKey:SourceAccountID" json:"payments,omitempty"`
}
