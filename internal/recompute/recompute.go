package recompute

import (
	"sort"

	"github.com/shopspring/decimal"

	"debttrack/internal/models"
)

// Run executes a full recomputation pass over the snapshot and returns the
// derived state for every account, debt, and goal. Goal progress is computed
// from the freshly derived balances, not the stored ones, so a single pass
// is always internally consistent.
func Run(snap Snapshot) Result {
	balances, balanceWarnings := AccountBalances(snap.Accounts, snap.Payments, snap.Revenues)
	debts, debtWarnings := DebtAmortization(snap.Debts, snap.Payments)
	goals, goalWarnings := GoalProgress(snap.Goals, balances)

	warnings := make([]Warning, 0, len(balanceWarnings)+len(debtWarnings)+len(goalWarnings))
	warnings = append(warnings, balanceWarnings...)
	warnings = append(warnings, debtWarnings...)
	warnings = append(warnings, goalWarnings...)

	return Result{
		AccountBalances: balances,
		DebtTotals:      debts,
		GoalProgress:    goals,
		Warnings:        warnings,
	}
}

// AccountBalances derives each account's balance from its starting balance
// plus revenue allocated to it minus payments sourced from it:
//
//	balance = starting + Σ(revenue.amount × percent/100) − Σ(payment.amount)
//
// Ledger entries referencing unknown accounts are skipped with a warning.
// Balances may legitimately be negative for credit-type accounts.
func AccountBalances(accounts []models.Account, payments []models.Payment, revenues []models.Revenue) (map[string]decimal.Decimal, []Warning) {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for i := range accounts {
		balances[accounts[i].ID] = accounts[i].StartingBalance
	}

	var warnings []Warning
	hundred := decimal.NewFromInt(100)

	for _, rev := range sortedByID(revenues, func(r models.Revenue) string { return r.ID }) {
		if !rev.Amount.IsPositive() {
			warnings = append(warnings, Warning{Kind: WarnNonPositiveAmount, RecordID: rev.ID})
			continue
		}
		allocations := append([]models.RevenueAllocation(nil), rev.Allocations...)
		sort.Slice(allocations, func(i, j int) bool { return allocations[i].ID < allocations[j].ID })
		for _, alloc := range allocations {
			current, ok := balances[alloc.AccountID]
			if !ok {
				warnings = append(warnings, Warning{Kind: WarnDanglingAllocation, RecordID: rev.ID, RefID: alloc.AccountID})
				continue
			}
			share := rev.Amount.Mul(alloc.Percent).Div(hundred)
			balances[alloc.AccountID] = current.Add(share)
		}
	}

	for _, pay := range sortedByID(payments, func(p models.Payment) string { return p.ID }) {
		if !pay.Amount.IsPositive() {
			warnings = append(warnings, Warning{Kind: WarnNonPositiveAmount, RecordID: pay.ID})
			continue
		}
		current, ok := balances[pay.SourceAccountID]
		if !ok {
			warnings = append(warnings, Warning{Kind: WarnDanglingPaymentSource, RecordID: pay.ID, RefID: pay.SourceAccountID})
			continue
		}
		balances[pay.SourceAccountID] = current.Sub(pay.Amount)
	}

	return balances, warnings
}

// DebtAmortization derives each debt's amount paid and remaining amount
// from the payments linked to it. Overpayment is valid: remaining is
// clamped at zero instead of going negative.
func DebtAmortization(debts []models.Debt, payments []models.Payment) (map[string]DebtTotals, []Warning) {
	paid := make(map[string]decimal.Decimal, len(debts))
	for i := range debts {
		paid[debts[i].ID] = decimal.Zero
	}

	var warnings []Warning
	for _, pay := range sortedByID(payments, func(p models.Payment) string { return p.ID }) {
		if pay.DebtID == nil {
			continue // external expense, not a debt payment
		}
		if !pay.Amount.IsPositive() {
			// Already warned about in the balance pass; skip quietly.
			continue
		}
		current, ok := paid[*pay.DebtID]
		if !ok {
			warnings = append(warnings, Warning{Kind: WarnDanglingPaymentDebt, RecordID: pay.ID, RefID: *pay.DebtID})
			continue
		}
		paid[*pay.DebtID] = current.Add(pay.Amount)
	}

	totals := make(map[string]DebtTotals, len(debts))
	for i := range debts {
		amountPaid := paid[debts[i].ID]
		remaining := debts[i].OriginalAmount.Sub(amountPaid)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		totals[debts[i].ID] = DebtTotals{AmountPaid: amountPaid, Remaining: remaining}
	}

	return totals, warnings
}

// GoalProgress derives each goal's current amount as the sum of its linked
// account balances. A goal with no linked accounts reports zero progress;
// that is the unfunded state, not an error.
func GoalProgress(goals []models.Goal, balances map[string]decimal.Decimal) (map[string]decimal.Decimal, []Warning) {
	progress := make(map[string]decimal.Decimal, len(goals))
	var warnings []Warning

	for _, goal := range sortedByID(goals, func(g models.Goal) string { return g.ID }) {
		total := decimal.Zero
		linked := append([]models.Account(nil), goal.LinkedAccounts...)
		sort.Slice(linked, func(i, j int) bool { return linked[i].ID < linked[j].ID })
		for _, account := range linked {
			balance, ok := balances[account.ID]
			if !ok {
				warnings = append(warnings, Warning{Kind: WarnDanglingGoalLink, RecordID: goal.ID, RefID: account.ID})
				continue
			}
			total = total.Add(balance)
		}
		progress[goal.ID] = total
	}

	return progress, warnings
}

// sortedByID returns a copy of items ordered by ID so that warning order
// is reproducible across passes.
func sortedByID[T any](items []T, id func(T) string) []T {
	out := append([]T(nil), items...)
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
