package recompute_test

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"debttrack/internal/models"
	"debttrack/internal/recompute"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(id, starting string) models.Account {
	a := models.Account{StartingBalance: dec(starting)}
	a.ID = id
	return a
}

func payment(id, sourceAccountID string, debtID *string, amount string) models.Payment {
	p := models.Payment{SourceAccountID: sourceAccountID, DebtID: debtID, Amount: dec(amount)}
	p.ID = id
	return p
}

func revenue(id, amount string, allocations ...models.RevenueAllocation) models.Revenue {
	r := models.Revenue{Amount: dec(amount), Allocations: allocations}
	r.ID = id
	return r
}

func allocation(id, accountID, percent string) models.RevenueAllocation {
	a := models.RevenueAllocation{AccountID: accountID, Percent: dec(percent)}
	a.ID = id
	return a
}

func debt(id, original string) models.Debt {
	d := models.Debt{OriginalAmount: dec(original)}
	d.ID = id
	return d
}

func TestAccountBalances(t *testing.T) {
	t.Run("revenue_and_payments_derive_balance", func(t *testing.T) {
		// starting 1000, +50% of 1000 revenue, -200 payment = 1300
		snap := recompute.Snapshot{
			Accounts: []models.Account{account("acc-1", "1000")},
			Revenues: []models.Revenue{revenue("rev-1", "1000", allocation("al-1", "acc-1", "50"))},
			Payments: []models.Payment{payment("pay-1", "acc-1", nil, "200")},
		}

		result := recompute.Run(snap)

		if got := result.AccountBalances["acc-1"]; !got.Equal(dec("1300")) {
			t.Errorf("expected balance 1300, got %s", got)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
	})

	t.Run("balance_may_go_negative", func(t *testing.T) {
		snap := recompute.Snapshot{
			Accounts: []models.Account{account("acc-1", "100")},
			Payments: []models.Payment{payment("pay-1", "acc-1", nil, "250")},
		}

		result := recompute.Run(snap)

		if got := result.AccountBalances["acc-1"]; !got.Equal(dec("-150")) {
			t.Errorf("expected balance -150, got %s", got)
		}
	})

	t.Run("dangling_payment_source_is_skipped_with_warning", func(t *testing.T) {
		snap := recompute.Snapshot{
			Accounts: []models.Account{account("acc-1", "100")},
			Payments: []models.Payment{payment("pay-1", "acc-gone", nil, "50")},
		}

		result := recompute.Run(snap)

		if got := result.AccountBalances["acc-1"]; !got.Equal(dec("100")) {
			t.Errorf("expected balance unchanged at 100, got %s", got)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Kind != recompute.WarnDanglingPaymentSource {
			t.Errorf("expected one dangling_payment_source warning, got %v", result.Warnings)
		}
	})

	t.Run("dangling_allocation_is_skipped_with_warning", func(t *testing.T) {
		snap := recompute.Snapshot{
			Accounts: []models.Account{account("acc-1", "0")},
			Revenues: []models.Revenue{revenue("rev-1", "1000",
				allocation("al-1", "acc-1", "40"),
				allocation("al-2", "acc-gone", "60"),
			)},
		}

		result := recompute.Run(snap)

		if got := result.AccountBalances["acc-1"]; !got.Equal(dec("400")) {
			t.Errorf("expected balance 400, got %s", got)
		}
		if len(result.Warnings) != 1 || result.Warnings[0].Kind != recompute.WarnDanglingAllocation {
			t.Errorf("expected one dangling_allocation warning, got %v", result.Warnings)
		}
	})

	t.Run("non_positive_amounts_contribute_nothing", func(t *testing.T) {
		snap := recompute.Snapshot{
			Accounts: []models.Account{account("acc-1", "500")},
			Payments: []models.Payment{payment("pay-1", "acc-1", nil, "0")},
			Revenues: []models.Revenue{revenue("rev-1", "-10", allocation("al-1", "acc-1", "100"))},
		}

		result := recompute.Run(snap)

		if got := result.AccountBalances["acc-1"]; !got.Equal(dec("500")) {
			t.Errorf("expected balance unchanged at 500, got %s", got)
		}
		if len(result.Warnings) != 2 {
			t.Fatalf("expected two non_positive_amount warnings, got %v", result.Warnings)
		}
		for _, w := range result.Warnings {
			if w.Kind != recompute.WarnNonPositiveAmount {
				t.Errorf("expected non_positive_amount warning, got %s", w.Kind)
			}
		}
	})
}

func TestDebtAmortization(t *testing.T) {
	t.Run("payments_accumulate_and_remaining_decreases", func(t *testing.T) {
		debtID := "debt-1"
		totals, warnings := recompute.DebtAmortization(
			[]models.Debt{debt(debtID, "1000")},
			[]models.Payment{
				payment("pay-1", "acc-1", &debtID, "300"),
				payment("pay-2", "acc-1", &debtID, "200"),
			},
		)

		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
		got := totals[debtID]
		if !got.AmountPaid.Equal(dec("500")) {
			t.Errorf("expected amount paid 500, got %s", got.AmountPaid)
		}
		if !got.Remaining.Equal(dec("500")) {
			t.Errorf("expected remaining 500, got %s", got.Remaining)
		}
	})

	t.Run("overpayment_clamps_remaining_at_zero", func(t *testing.T) {
		debtID := "debt-1"
		totals, _ := recompute.DebtAmortization(
			[]models.Debt{debt(debtID, "1000")},
			[]models.Payment{payment("pay-1", "acc-1", &debtID, "1500")},
		)

		got := totals[debtID]
		if !got.AmountPaid.Equal(dec("1500")) {
			t.Errorf("expected amount paid 1500, got %s", got.AmountPaid)
		}
		if !got.Remaining.Equal(dec("0")) {
			t.Errorf("expected remaining clamped at 0, got %s", got.Remaining)
		}
	})

	t.Run("dangling_debt_reference_warns", func(t *testing.T) {
		gone := "debt-gone"
		totals, warnings := recompute.DebtAmortization(
			[]models.Debt{debt("debt-1", "1000")},
			[]models.Payment{payment("pay-1", "acc-1", &gone, "100")},
		)

		if !totals["debt-1"].AmountPaid.Equal(dec("0")) {
			t.Errorf("expected no paid amount on debt-1, got %s", totals["debt-1"].AmountPaid)
		}
		if len(warnings) != 1 || warnings[0].Kind != recompute.WarnDanglingPaymentDebt {
			t.Errorf("expected one dangling_payment_debt warning, got %v", warnings)
		}
	})

	t.Run("external_payments_do_not_touch_debts", func(t *testing.T) {
		totals, warnings := recompute.DebtAmortization(
			[]models.Debt{debt("debt-1", "1000")},
			[]models.Payment{payment("pay-1", "acc-1", nil, "100")},
		)

		if !totals["debt-1"].Remaining.Equal(dec("1000")) {
			t.Errorf("expected remaining 1000, got %s", totals["debt-1"].Remaining)
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})
}

func TestGoalProgress(t *testing.T) {
	t.Run("progress_sums_linked_account_balances", func(t *testing.T) {
		goal := models.Goal{
			TargetAmount:   dec("1000"),
			LinkedAccounts: []models.Account{account("acc-1", "0"), account("acc-2", "0")},
		}
		goal.ID = "goal-1"

		balances := map[string]decimal.Decimal{
			"acc-1": dec("300"),
			"acc-2": dec("450"),
		}

		progress, warnings := recompute.GoalProgress([]models.Goal{goal}, balances)

		if !progress["goal-1"].Equal(dec("750")) {
			t.Errorf("expected progress 750, got %s", progress["goal-1"])
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})

	t.Run("goal_without_links_reports_zero", func(t *testing.T) {
		goal := models.Goal{TargetAmount: dec("1000")}
		goal.ID = "goal-1"

		progress, warnings := recompute.GoalProgress([]models.Goal{goal}, map[string]decimal.Decimal{})

		if !progress["goal-1"].Equal(dec("0")) {
			t.Errorf("expected progress 0, got %s", progress["goal-1"])
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})

	t.Run("dangling_link_warns_and_skips", func(t *testing.T) {
		goal := models.Goal{
			TargetAmount:   dec("1000"),
			LinkedAccounts: []models.Account{account("acc-1", "0"), account("acc-gone", "0")},
		}
		goal.ID = "goal-1"

		progress, warnings := recompute.GoalProgress([]models.Goal{goal}, map[string]decimal.Decimal{
			"acc-1": dec("200"),
		})

		if !progress["goal-1"].Equal(dec("200")) {
			t.Errorf("expected progress 200, got %s", progress["goal-1"])
		}
		if len(warnings) != 1 || warnings[0].Kind != recompute.WarnDanglingGoalLink {
			t.Errorf("expected one dangling_goal_link warning, got %v", warnings)
		}
	})
}

func TestRunIsDeterministic(t *testing.T) {
	debtID := "debt-1"
	snap := recompute.Snapshot{
		Accounts: []models.Account{account("acc-2", "100"), account("acc-1", "50")},
		Debts:    []models.Debt{debt(debtID, "400")},
		Payments: []models.Payment{
			payment("pay-2", "acc-1", &debtID, "40"),
			payment("pay-1", "acc-gone", nil, "10"),
		},
		Revenues: []models.Revenue{revenue("rev-1", "200", allocation("al-1", "acc-2", "100"))},
	}

	first := recompute.Run(snap)
	second := recompute.Run(snap)

	if !reflect.DeepEqual(first.Warnings, second.Warnings) {
		t.Errorf("warning order should be stable: %v vs %v", first.Warnings, second.Warnings)
	}
	for id, balance := range first.AccountBalances {
		if !balance.Equal(second.AccountBalances[id]) {
			t.Errorf("balance for %s differs between passes: %s vs %s", id, balance, second.AccountBalances[id])
		}
	}
}
