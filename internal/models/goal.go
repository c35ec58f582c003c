package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings goal funded by one or more linked accounts.
//
// CurrentAmount is derived: the sum of linked account balances on every
// recomputation pass. A goal with no linked accounts is reported as
// unfunded with a current amount of zero.
type Goal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	Notes         string          `json:"notes"`

	LinkedAccounts []Account `gorm:"many2many:goal_accounts;" json:"linked_accounts,omitempty"`
}

// IsFunded reports whether the goal has at least one linked account.
func (g *Goal) IsFunded() bool {
	return len(g.LinkedAccounts) > 0
}
