package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only ledger entry recording money leaving a source
// account. DebtID is nil for external expenses not tied to any debt.
// Payments are never edited: corrections are recorded as new entries so
// that recomputation always works from the full history.
type Payment struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	SourceAccountID string          `gorm:"type:uuid;not null;index" json:"source_account_id"`
	DebtID          *string         `gorm:"type:uuid;index" json:"debt_id,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Date            time.Time       `gorm:"not null" json:"date"`
	CategoryID      *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Notes           string          `json:"notes"`

	// Relationships
	SourceAccount Account   `gorm:"foreignKey:SourceAccountID" json:"source_account,omitempty"`
	Debt          *Debt     `gorm:"foreignKey:DebtID" json:"debt,omitempty"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
