package services

import (
	"testing"
	"time"

	"debttrack/internal/models"
	"debttrack/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "Everyday Checking", models.AccountTypeChecking, dec("250"), dec("0"))
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected account to have an ID")
		}
		if account.Status != models.AccountStatusActive {
			t.Errorf("expected active status, got %s", account.Status)
		}
		testutil.AssertDecimalEqual(t, dec("250"), account.Balance)
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "", models.AccountTypeChecking, dec("0"), dec("0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("starting_balance_change_recomputes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		recompute := NewRecomputeService(db)
		svc := NewAccountService(db, recompute)
		payments := NewPaymentService(db, recompute)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeChecking, dec("1000"))

		_, err := payments.RecordPayment(user.ID, account.ID, nil, dec("300"), time.Now(), nil, "rent")
		testutil.AssertNoError(t, err)

		newStart := dec("2000")
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{StartingBalance: &newStart})
		testutil.AssertNoError(t, err)

		// 2000 starting less the 300 payment already on the ledger.
		testutil.AssertDecimalEqual(t, dec("1700"), updated.Balance)
	})

	t.Run("status_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		status := models.AccountStatusClosed
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Status: &status})
		testutil.AssertNoError(t, err)
		if updated.Status != models.AccountStatusClosed {
			t.Errorf("expected closed status, got %s", updated.Status)
		}
	})

	t.Run("unknown_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateAccount(user.ID, "no-such-account", AccountUpdateFields{})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteAccount(user.ID, account.ID))

		_, err := svc.GetAccountByID(user.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("account_with_debt_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, user.ID, dec("500"), dec("0"), dec("25"))

		err := svc.DeleteAccount(user.ID, debt.AccountID)
		testutil.AssertAppError(t, err, "ACCOUNT_IN_USE")
	})

	t.Run("other_users_account_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewRecomputeService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user2.ID)

		err := svc.DeleteAccount(user1.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
