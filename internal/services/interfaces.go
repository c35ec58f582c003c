package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"debttrack/internal/models"
	"debttrack/internal/pagination"
	"debttrack/internal/projection"
	"debttrack/internal/recompute"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountUpdateFields holds optional fields for updating an account.
// StartingBalance may be corrected; Balance never appears here because it
// is derived state owned by the recomputation pass.
type AccountUpdateFields struct {
	Name            *string
	Status          *models.AccountStatus
	StartingBalance *decimal.Decimal
	AccountLimit    *decimal.Decimal
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, startingBalance, accountLimit decimal.Decimal) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// DebtUpdateFields holds optional fields for updating a debt. The original
// amount is immutable once set and deliberately has no field here.
type DebtUpdateFields struct {
	Creditor       *string
	InterestRate   *decimal.Decimal
	MinimumPayment *decimal.Decimal
	DueDay         *int
	CategoryID     *string
	Notes          *string
}

// DebtServicer defines the contract for debt-related business logic.
type DebtServicer interface {
	CreateDebt(userID, accountID, creditor string, originalAmount, interestRate, minimumPayment decimal.Decimal, dueDay int, categoryID *string, notes string) (*models.Debt, error)
	GetUserDebts(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID string) (*models.Debt, error)
	UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.Debt, error)
	DeleteDebt(userID, debtID string) error
}

// PaymentServicer defines the contract for the payment side of the ledger.
// Payments are append-only: there is no update operation, corrections are
// recorded as new entries.
type PaymentServicer interface {
	RecordPayment(userID, sourceAccountID string, debtID *string, amount decimal.Decimal, date time.Time, categoryID *string, notes string) (*models.Payment, error)
	GetUserPayments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	GetPaymentByID(userID, paymentID string) (*models.Payment, error)
	DeletePayment(userID, paymentID string) error
}

// AllocationInput assigns a percentage of a revenue entry to an account.
type AllocationInput struct {
	AccountID string          `json:"account_id" binding:"required,uuid"`
	Percent   decimal.Decimal `json:"percent" binding:"required"`
}

// RevenueServicer defines the contract for the revenue side of the ledger.
type RevenueServicer interface {
	RecordRevenue(userID, source string, amount decimal.Decimal, dateReceived time.Time, notes string, allocations []AllocationInput) (*models.Revenue, error)
	GetUserRevenues(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Revenue], error)
	GetRevenueByID(userID, revenueID string) (*models.Revenue, error)
	DeleteRevenue(userID, revenueID string) error
}

// GoalUpdateFields holds optional fields for updating a goal.
type GoalUpdateFields struct {
	Name         *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Notes        *string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount decimal.Decimal, targetDate *time.Time, notes string) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	LinkAccount(userID, goalID, accountID string) error
	UnlinkAccount(userID, goalID, accountID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	DeleteCategory(userID, categoryID string) error
}

// RecomputeServicer is the single entry point for derived-state
// recomputation. Hosts call Run after every ledger mutation so that stored
// derived fields always reflect the full transaction history.
type RecomputeServicer interface {
	Run(userID string) (*recompute.Result, error)
}

// ProjectionServicer defines the contract for multi-year projections.
type ProjectionServicer interface {
	Project(userID string, cfg projection.Config) (*projection.Result, error)
	WriteCSV(w io.Writer, result *projection.Result) error
	DefaultConfig() projection.Config
}

// PayoffEntry is one row of the dashboard payoff order listing.
type PayoffEntry struct {
	DebtID          string          `json:"debt_id"`
	Creditor        string          `json:"creditor"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	MinimumPayment  decimal.Decimal `json:"minimum_payment"`
}

// Summary contains the dashboard totals derived from current state.
type Summary struct {
	TotalDebt    decimal.Decimal `json:"total_debt"`
	TotalSavings decimal.Decimal `json:"total_savings"`
	NetWorth     decimal.Decimal `json:"net_worth"`
	PayoffOrder  []PayoffEntry   `json:"payoff_order"`
}

// SummaryServicer defines the contract for the dashboard summary.
type SummaryServicer interface {
	GetSummary(userID string, strategy projection.Strategy) (*Summary, error)
}
