// Command seed populates the database with a demo user and a small,
// realistic ledger so the API can be explored without manual data entry.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"debttrack/internal/config"
	"debttrack/internal/database"
	"debttrack/internal/logger"
	"debttrack/internal/models"
	"debttrack/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db := dbManager.DB()
	recomputeService := services.NewRecomputeService(db)
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db, recomputeService)
	debtService := services.NewDebtService(db, accountService, recomputeService)
	paymentService := services.NewPaymentService(db, recomputeService)
	revenueService := services.NewRevenueService(db, recomputeService)
	goalService := services.NewGoalService(db, accountService, recomputeService)

	user, err := userService.CreateUser("demo@debttrack.local", "demo-password-123", "Demo", "User")
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	log.Infof("Created demo user %s", user.Email)

	checking, err := accountService.CreateAccount(user.ID, "Everyday Checking",
		models.AccountTypeChecking, decimal.NewFromInt(2500), decimal.Zero)
	if err != nil {
		return err
	}
	savings, err := accountService.CreateAccount(user.ID, "Emergency Fund",
		models.AccountTypeSavings, decimal.NewFromInt(4000), decimal.Zero)
	if err != nil {
		return err
	}
	card, err := accountService.CreateAccount(user.ID, "Rewards Card",
		models.AccountTypeCreditCard, decimal.Zero, decimal.NewFromInt(5000))
	if err != nil {
		return err
	}
	carLoan, err := accountService.CreateAccount(user.ID, "Car Loan",
		models.AccountTypeLoan, decimal.Zero, decimal.Zero)
	if err != nil {
		return err
	}

	cardDebt, err := debtService.CreateDebt(user.ID, card.ID, "Rewards Card",
		decimal.NewFromInt(1800), decimal.RequireFromString("21.9"), decimal.NewFromInt(60), 15, nil, "carried balance")
	if err != nil {
		return err
	}
	loanDebt, err := debtService.CreateDebt(user.ID, carLoan.ID, "Community Credit Union",
		decimal.NewFromInt(9500), decimal.RequireFromString("6.5"), decimal.NewFromInt(240), 1, nil, "48 month term")
	if err != nil {
		return err
	}

	// One month of activity: a paycheck split across accounts, then payments
	// toward both debts and a utility bill.
	payday := time.Now().AddDate(0, 0, -20)
	_, err = revenueService.RecordRevenue(user.ID, "Salary", decimal.NewFromInt(3200), payday, "monthly salary",
		[]services.AllocationInput{
			{AccountID: checking.ID, Percent: decimal.NewFromInt(70)},
			{AccountID: savings.ID, Percent: decimal.NewFromInt(30)},
		})
	if err != nil {
		return err
	}

	if _, err := paymentService.RecordPayment(user.ID, checking.ID, &cardDebt.ID,
		decimal.NewFromInt(150), payday.AddDate(0, 0, 3), nil, "card payment"); err != nil {
		return err
	}
	if _, err := paymentService.RecordPayment(user.ID, checking.ID, &loanDebt.ID,
		decimal.NewFromInt(240), payday.AddDate(0, 0, 5), nil, "loan installment"); err != nil {
		return err
	}
	if _, err := paymentService.RecordPayment(user.ID, checking.ID, nil,
		decimal.NewFromInt(95), payday.AddDate(0, 0, 7), nil, "electric bill"); err != nil {
		return err
	}

	goal, err := goalService.CreateGoal(user.ID, "Six Month Cushion",
		decimal.NewFromInt(12000), nil, "six months of expenses")
	if err != nil {
		return err
	}
	if err := goalService.LinkAccount(user.ID, goal.ID, savings.ID); err != nil {
		return err
	}

	result, err := recomputeService.Run(user.ID)
	if err != nil {
		return err
	}
	log.Infof("Seed complete: %d accounts, %d debts, %d goals recomputed",
		len(result.AccountBalances), len(result.DebtTotals), len(result.GoalProgress))
	return nil
}
