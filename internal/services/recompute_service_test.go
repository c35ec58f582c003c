package services

import (
	"testing"

	"debttrack/internal/models"
	"debttrack/internal/recompute"
	"debttrack/internal/testutil"
)

func TestRecomputeRun(t *testing.T) {
	t.Run("persists_all_derived_state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecomputeService(db)
		user := testutil.CreateTestUser(t, db)
		checking := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeChecking, dec("1000"))
		debt := testutil.CreateTestDebt(t, db, user.ID, dec("500"), dec("0"), dec("25"))
		goal := testutil.CreateTestGoal(t, db, user.ID, dec("5000"))
		testutil.AssertNoError(t, db.Exec(
			"INSERT INTO goal_accounts (goal_id, account_id) VALUES (?, ?)", goal.ID, checking.ID,
		).Error)

		testutil.CreateTestRevenue(t, db, user.ID, checking.ID, dec("400"))
		testutil.CreateTestPayment(t, db, user.ID, checking.ID, &debt.ID, dec("150"))

		result, err := svc.Run(user.ID)
		testutil.AssertNoError(t, err)
		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings on a consistent ledger, got %v", result.Warnings)
		}

		var updatedAccount models.Account
		testutil.AssertNoError(t, db.First(&updatedAccount, "id = ?", checking.ID).Error)
		testutil.AssertDecimalEqual(t, dec("1250"), updatedAccount.Balance)

		var updatedDebt models.Debt
		testutil.AssertNoError(t, db.First(&updatedDebt, "id = ?", debt.ID).Error)
		testutil.AssertDecimalEqual(t, dec("150"), updatedDebt.AmountPaid)
		testutil.AssertDecimalEqual(t, dec("350"), updatedDebt.RemainingAmount)

		var updatedGoal models.Goal
		testutil.AssertNoError(t, db.First(&updatedGoal, "id = ?", goal.ID).Error)
		testutil.AssertDecimalEqual(t, dec("1250"), updatedGoal.CurrentAmount)
	})

	t.Run("referential_gaps_surface_as_warnings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecomputeService(db)
		user := testutil.CreateTestUser(t, db)
		checking := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeChecking, dec("100"))

		missing := "debt-gone"
		testutil.CreateTestPayment(t, db, user.ID, checking.ID, &missing, dec("50"))

		result, err := svc.Run(user.ID)
		testutil.AssertNoError(t, err)
		if len(result.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
		}
		if result.Warnings[0].Kind != recompute.WarnDanglingPaymentDebt {
			t.Errorf("unexpected warning kind: %s", result.Warnings[0].Kind)
		}

		// The payment still debits its source account.
		var updated models.Account
		testutil.AssertNoError(t, db.First(&updated, "id = ?", checking.ID).Error)
		testutil.AssertDecimalEqual(t, dec("50"), updated.Balance)
	})

	t.Run("rerun_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecomputeService(db)
		user := testutil.CreateTestUser(t, db)
		checking := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeChecking, dec("1000"))
		testutil.CreateTestPayment(t, db, user.ID, checking.ID, nil, dec("200"))

		_, err := svc.Run(user.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.Run(user.ID)
		testutil.AssertNoError(t, err)

		var updated models.Account
		testutil.AssertNoError(t, db.First(&updated, "id = ?", checking.ID).Error)
		testutil.AssertDecimalEqual(t, dec("800"), updated.Balance)
	})
}
