package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/models"
	"debttrack/internal/pagination"
)

// revenueService handles the revenue side of the append-only ledger.
type revenueService struct {
	db        *gorm.DB
	recompute RecomputeServicer
}

// NewRevenueService creates a new RevenueServicer.
func NewRevenueService(db *gorm.DB, recompute RecomputeServicer) RevenueServicer {
	return &revenueService{db: db, recompute: recompute}
}

// RecordRevenue appends a revenue entry with its account allocations and
// reruns the recomputation pass. Allocation percentages may sum to less
// than 100; the remainder is implicitly unallocated.
func (s *revenueService) RecordRevenue(userID, source string, amount decimal.Decimal, dateReceived time.Time, notes string, allocations []AllocationInput) (*models.Revenue, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "revenue amount must be positive")
	}

	totalPercent := decimal.Zero
	for _, alloc := range allocations {
		if !alloc.Percent.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation percent must be positive")
		}
		totalPercent = totalPercent.Add(alloc.Percent)

		var count int64
		if err := s.db.Model(&models.Account{}).Where("id = ? AND user_id = ?", alloc.AccountID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrAccountNotFound
		}
	}
	if totalPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperrors.ErrOverAllocated
	}

	revenue := &models.Revenue{
		UserID:       userID,
		Source:       source,
		Amount:       amount,
		DateReceived: dateReceived,
		Notes:        notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(revenue).Error; err != nil {
			return err
		}
		for _, alloc := range allocations {
			row := &models.RevenueAllocation{
				RevenueID: revenue.ID,
				AccountID: alloc.AccountID,
				Percent:   alloc.Percent,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.recompute.Run(userID); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Allocations").Where("id = ?", revenue.ID).First(revenue).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return revenue, nil
}

// GetUserRevenues retrieves a paginated list of revenue entries, newest first.
func (s *revenueService) GetUserRevenues(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Revenue], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Revenue{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var revenues []models.Revenue
	if err := base.Preload("Allocations").Order("date_received DESC, id").
		Scopes(pagination.Paginate(page)).Find(&revenues).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(revenues, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRevenueByID retrieves a revenue entry by ID for a specific user.
func (s *revenueService) GetRevenueByID(userID, revenueID string) (*models.Revenue, error) {
	var revenue models.Revenue
	if err := s.db.Preload("Allocations").Where("id = ? AND user_id = ?", revenueID, userID).First(&revenue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRevenueNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &revenue, nil
}

// DeleteRevenue removes a mis-keyed entry with its allocations and reruns
// the pass.
func (s *revenueService) DeleteRevenue(userID, revenueID string) error {
	revenue, err := s.GetRevenueByID(userID, revenueID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("revenue_id = ?", revenue.ID).Delete(&models.RevenueAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(revenue).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.recompute.Run(userID)
	return err
}
