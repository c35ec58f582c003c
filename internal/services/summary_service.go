package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/models"
	"debttrack/internal/projection"
)

// summaryService computes the dashboard totals from current derived state.
type summaryService struct {
	db        *gorm.DB
	recompute RecomputeServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, recompute RecomputeServicer) SummaryServicer {
	return &summaryService{db: db, recompute: recompute}
}

// GetSummary refreshes derived state and returns total debt, liquid
// savings, net worth, and the payoff targeting order for the given
// strategy. Remaining debt is clamped at zero per record, so net worth
// never benefits from a negative debt value.
func (s *summaryService) GetSummary(userID string, strategy projection.Strategy) (*Summary, error) {
	if _, err := s.recompute.Run(userID); err != nil {
		return nil, err
	}

	var debts []models.Debt
	if err := s.db.Where("user_id = ? AND remaining_amount > 0", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalDebt := decimal.Zero
	simDebts := make([]projection.Debt, 0, len(debts))
	for i := range debts {
		totalDebt = totalDebt.Add(debts[i].RemainingAmount)
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

	order := projection.NewSimulator(simDebts, strategy).Order()
	payoffOrder := make([]PayoffEntry, 0, len(order))
	for _, d := range order {
		payoffOrder = append(payoffOrder, PayoffEntry{
			DebtID:          d.ID,
			Creditor:        d.Creditor,
			RemainingAmount: d.Remaining,
			InterestRate:    d.InterestRate,
			MinimumPayment:  d.MinimumPayment,
		})
	}

	return &Summary{
		TotalDebt:    totalDebt,
		TotalSavings: savings,
		NetWorth:     savings.Sub(totalDebt),
		PayoffOrder:  payoffOrder,
	}, nil
}
