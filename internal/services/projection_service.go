package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"debttrack/internal/config"
	apperrors "debttrack/internal/errors"
	"debttrack/internal/models"
	"debttrack/internal/projection"
)

// projectionService runs multi-year payoff and savings projections from
// the current derived state.
type projectionService struct {
	db        *gorm.DB
	recompute RecomputeServicer
}

// NewProjectionService creates a new ProjectionServicer.
func NewProjectionService(db *gorm.DB, recompute RecomputeServicer) ProjectionServicer {
	return &projectionService{db: db, recompute: recompute}
}

// DefaultConfig returns the documented projection defaults, snowball
// strategy over the configured horizon.
func (s *projectionService) DefaultConfig() projection.Config {
	cfg := config.Get()
	return projection.Config{
		HorizonYears:               cfg.ProjectionHorizonYears,
		MonthlySavingsGrowthRate:   cfg.MonthlySavingsGrowthRate,
		MonthlySavingsContribution: cfg.MonthlySavingsContribution,
		Strategy:                   projection.StrategySnowball,
	}
}

// Project validates the configuration, refreshes derived state, and runs
// the engine from the user's current debts and liquid savings. The
// simulation always restarts from current state; nothing is resumed.
func (s *projectionService) Project(userID string, cfg projection.Config) (*projection.Result, error) {
	engine, err := projection.NewEngine(cfg)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidProjectionConfig, err.Error())
	}

	if _, err := s.recompute.Run(userID); err != nil {
		return nil, err
	}

	var debts []models.Debt
	if err := s.db.Where("user_id = ? AND remaining_amount > 0", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	simDebts := make([]projection.Debt, 0, len(debts))
	for i := range debts {
		simDebts = append(simDebts, projection.Debt{
			ID:             debts[i].ID,
			Creditor:       debts[i].Creditor,
			Remaining:      debts[i].RemainingAmount,
			InterestRate:   debts[i].InterestRate,
			MinimumPayment: debts[i].MinimumPayment,
		})
	}

	savings, err := liquidSavings(s.db, userID)
	if err != nil {
		return nil, err
	}

	result := engine.Run(simDebts, savings)
	return &result, nil
}

// WriteCSV writes the projection snapshots in the flat report format
// consumed by spreadsheet tooling.
func (s *projectionService) WriteCSV(w io.Writer, result *projection.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Year", "DebtRemaining", "Savings", "NetWorth"}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, snap := range result.Snapshots {
		row := []string{
			strconv.Itoa(snap.Year),
			snap.DebtRemaining.StringFixed(2),
			snap.Savings.StringFixed(2),
			snap.NetWorth.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// liquidSavings sums the balances of active checking, savings, and
// investment accounts.
func liquidSavings(db *gorm.DB, userID string) (decimal.Decimal, error) {
	var accounts []models.Account
	if err := db.Where("user_id = ? AND status = ?", userID, models.AccountStatusActive).Find(&accounts).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := decimal.Zero
	for i := range accounts {
		if accounts[i].Type.IsLiquid() {
			total = total.Add(accounts[i].Balance)
		}
	}
	return total, nil
}
