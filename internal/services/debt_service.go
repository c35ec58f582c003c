package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/models"
	"debttrack/internal/pagination"
)

// debtService handles debt-related business logic.
type debtService struct {
	db        *gorm.DB
	accounts  AccountServicer
	recompute RecomputeServicer
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB, accounts AccountServicer, recompute RecomputeServicer) DebtServicer {
	return &debtService{db: db, accounts: accounts, recompute: recompute}
}

// CreateDebt attaches a debt to a credit or loan account. The original
// amount is fixed at creation; remaining amount and amount paid are derived
// from the payment ledger from then on.
func (s *debtService) CreateDebt(userID, accountID, creditor string, originalAmount, interestRate, minimumPayment decimal.Decimal, dueDay int, categoryID *string, notes string) (*models.Debt, error) {
	if creditor == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "creditor is required")
	}
	if !originalAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "original amount must be positive")
	}
	if interestRate.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate cannot be negative")
	}
	if minimumPayment.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum payment cannot be negative")
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
	}

	account, err := s.accounts.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}
	if !account.Type.CanCarryDebt() {
		return nil, apperrors.ErrInvalidDebtAccount
	}

	var count int64
	if err := s.db.Model(&models.Debt{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDebtAccountTaken
	}

	debt := &models.Debt{
		UserID:          userID,
		AccountID:       accountID,
		Creditor:        creditor,
		OriginalAmount:  originalAmount,
		AmountPaid:      decimal.Zero,
		RemainingAmount: originalAmount,
		InterestRate:    interestRate,
		MinimumPayment:  minimumPayment,
		DueDay:          dueDay,
		CategoryID:      categoryID,
		Notes:           notes,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts retrieves a paginated list of debts. With activeOnly set,
// fully paid debts are filtered out.
func (s *debtService) GetUserDebts(userID string, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{}).Where("user_id = ?", userID)
	if activeOnly {
		base = base.Where("remaining_amount > 0")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("remaining_amount, id").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID retrieves a debt by ID for a specific user.
func (s *debtService) GetDebtByID(userID, debtID string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt updates the mutable fields of a debt. OriginalAmount,
// AmountPaid, and RemainingAmount cannot be set through this path.
func (s *debtService) UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Creditor != nil && *fields.Creditor != "" {
		updates["creditor"] = *fields.Creditor
	}
	if fields.InterestRate != nil {
		if fields.InterestRate.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "interest rate cannot be negative")
		}
		updates["interest_rate"] = *fields.InterestRate
	}
	if fields.MinimumPayment != nil {
		if fields.MinimumPayment.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum payment cannot be negative")
		}
		updates["minimum_payment"] = *fields.MinimumPayment
	}
	if fields.DueDay != nil {
		if *fields.DueDay < 1 || *fields.DueDay > 31 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due day must be between 1 and 31")
		}
		updates["due_day"] = *fields.DueDay
	}
	if fields.CategoryID != nil {
		updates["category_id"] = *fields.CategoryID
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(debt).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", debt.ID).First(debt).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return debt, nil
}

// DeleteDebt soft-deletes a debt. Payments that targeted it stay in the
// ledger and show up as referential-gap warnings on the next pass.
func (s *debtService) DeleteDebt(userID, debtID string) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.recompute.Run(userID)
	return err
}
