// Package recompute derives account balances, debt amortization totals, and
// goal progress from an in-memory snapshot of the payment/revenue ledger.
//
// Every function here is a pure transformation: the same snapshot always
// produces the same result, and nothing is written back to storage. The
// ledger is the source of truth; derived values are recomputed in full on
// every pass rather than patched incrementally, so they can never drift.
package recompute

import (
	"fmt"

	"github.com/shopspring/decimal"

	"debttrack/internal/models"
)

// Snapshot is one atomically-read view of the ledger and the entities whose
// derived state depends on it. Revenues must have Allocations loaded and
// Goals must have LinkedAccounts loaded.
type Snapshot struct {
	Accounts []models.Account
	Debts    []models.Debt
	Payments []models.Payment
	Revenues []models.Revenue
	Goals    []models.Goal
}

// WarningKind classifies a non-fatal problem found during recomputation.
type WarningKind string

const (
	// WarnDanglingPaymentSource marks a payment whose source account no longer exists.
	WarnDanglingPaymentSource WarningKind = "dangling_payment_source"
	// WarnDanglingPaymentDebt marks a payment whose target debt no longer exists.
	WarnDanglingPaymentDebt WarningKind = "dangling_payment_debt"
	// WarnDanglingAllocation marks a revenue allocation to a missing account.
	WarnDanglingAllocation WarningKind = "dangling_allocation"
	// WarnDanglingGoalLink marks a goal link to a missing account.
	WarnDanglingGoalLink WarningKind = "dangling_goal_link"
	// WarnNonPositiveAmount marks a ledger entry with a zero or negative
	// amount. Ingestion should have rejected it; the pass treats it as a
	// no-op contribution.
	WarnNonPositiveAmount WarningKind = "non_positive_amount"
)

// Warning records one skipped contribution. Referential gaps and invalid
// amounts never abort a recomputation pass.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	RecordID string      `json:"record_id"`
	RefID    string      `json:"ref_id,omitempty"`
}

func (w Warning) String() string {
	if w.RefID == "" {
		return fmt.Sprintf("%s: record %s", w.Kind, w.RecordID)
	}
	return fmt.Sprintf("%s: record %s references %s", w.Kind, w.RecordID, w.RefID)
}

// DebtTotals holds the derived amortization state for one debt.
type DebtTotals struct {
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// Result is the full derived state for one recomputation pass. The caller
// is responsible for persisting it; the pass itself has no side effects.
type Result struct {
	AccountBalances map[string]decimal.Decimal `json:"account_balances"`
	DebtTotals      map[string]DebtTotals      `json:"debt_totals"`
	GoalProgress    map[string]decimal.Decimal `json:"goal_progress"`
	Warnings        []Warning                  `json:"warnings,omitempty"`
}
