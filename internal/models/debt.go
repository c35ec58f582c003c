package models

import "github.com/shopspring/decimal"

// Debt represents the liability face of a credit or loan account.
//
// AmountPaid and RemainingAmount are derived from the payment ledger:
// AmountPaid is the sum of payments targeting this debt, RemainingAmount
// is max(0, OriginalAmount - AmountPaid). OriginalAmount is immutable
// once the debt is created.
type Debt struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID       string          `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	Creditor        string          `gorm:"not null" json:"creditor"`
	OriginalAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"original_amount"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount_paid"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"remaining_amount"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"interest_rate"` // annual, percent
	MinimumPayment  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"minimum_payment"`
	DueDay          int             `gorm:"not null;default:1" json:"due_day"`
	CategoryID      *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Notes           string          `json:"notes"`

	// Relationships
	Account  Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Payments []Payment `gorm:"foreignKey:DebtID" json:"payments,omitempty"`
}

// IsPaidOff reports whether the debt is fully paid. This is a derived
// read, not a stored status that can drift out of sync with the ledger.
func (d *Debt) IsPaidOff() bool {
	return d.RemainingAmount.LessThanOrEqual(decimal.Zero)
}
