package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"debttrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an active checking account with a zero starting balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, models.AccountTypeChecking, decimal.Zero)
}

// CreateTestAccountWithBalance creates an active account of the given type and
// starting balance. The derived balance starts equal to the starting balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, accountType models.AccountType, startingBalance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:          userID,
		Name:            fmt.Sprintf("Test Account %d", nextID()),
		Type:            accountType,
		Status:          models.AccountStatusActive,
		StartingBalance: startingBalance,
		Balance:         startingBalance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestDebt creates a debt attached to a new loan account.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, originalAmount, interestRate, minimumPayment decimal.Decimal) *models.Debt {
	t.Helper()

	account := CreateTestAccountWithBalance(t, db, userID, models.AccountTypeLoan, decimal.Zero)

	debt := &models.Debt{
		UserID:          userID,
		AccountID:       account.ID,
		Creditor:        fmt.Sprintf("Test Creditor %d", nextID()),
		OriginalAmount:  originalAmount,
		RemainingAmount: originalAmount,
		InterestRate:    interestRate,
		MinimumPayment:  minimumPayment,
		DueDay:          1,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestPayment records a payment from the given account, optionally
// applied to a debt.
func CreateTestPayment(t *testing.T, db *gorm.DB, userID, sourceAccountID string, debtID *string, amount decimal.Decimal) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		UserID:          userID,
		SourceAccountID: sourceAccountID,
		DebtID:          debtID,
		Amount:          amount,
		Date:            time.Now(),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestRevenue records a revenue entry fully allocated to one account.
func CreateTestRevenue(t *testing.T, db *gorm.DB, userID, accountID string, amount decimal.Decimal) *models.Revenue {
	t.Helper()
	return CreateTestRevenueWithAllocations(t, db, userID, amount, map[string]decimal.Decimal{
		accountID: decimal.NewFromInt(100),
	})
}

// CreateTestRevenueWithAllocations records a revenue entry split across
// accounts by percentage.
func CreateTestRevenueWithAllocations(t *testing.T, db *gorm.DB, userID string, amount decimal.Decimal, allocations map[string]decimal.Decimal) *models.Revenue {
	t.Helper()

	revenue := &models.Revenue{
		UserID:       userID,
		Source:       fmt.Sprintf("Test Source %d", nextID()),
		Amount:       amount,
		DateReceived: time.Now(),
	}
	if err := db.Create(revenue).Error; err != nil {
		t.Fatalf("failed to create test revenue: %v", err)
	}

	for accountID, percent := range allocations {
		alloc := &models.RevenueAllocation{
			RevenueID: revenue.ID,
			AccountID: accountID,
			Percent:   percent,
		}
		if err := db.Create(alloc).Error; err != nil {
			t.Fatalf("failed to create test revenue allocation: %v", err)
		}
	}
	return revenue
}

// CreateTestGoal creates a goal with the given target amount.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, targetAmount decimal.Decimal) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: targetAmount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestCategory creates a category.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}
