package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue is an append-only ledger entry recording money received.
// Allocations split the amount across accounts by percentage; percentages
// may sum to less than 100, with the remainder implicitly unallocated.
type Revenue struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Source       string          `gorm:"not null" json:"source"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	DateReceived time.Time       `gorm:"not null" json:"date_received"`
	Notes        string          `json:"notes"`

	Allocations []RevenueAllocation `gorm:"foreignKey:RevenueID" json:"allocations,omitempty"`
}

// RevenueAllocation assigns a percentage of a revenue entry to an account.
type RevenueAllocation struct {
	Base
	RevenueID string          `gorm:"type:uuid;not null;index" json:"revenue_id"`
	AccountID string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Percent   decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"percent"`
}
