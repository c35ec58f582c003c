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

// goalService handles goal-related business logic.
type goalService struct {
	db        *gorm.DB
	accounts  AccountServicer
	recompute RecomputeServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, accounts AccountServicer, recompute RecomputeServicer) GoalServicer {
	return &goalService{db: db, accounts: accounts, recompute: recompute}
}

// CreateGoal creates a savings goal. Progress starts at zero until accounts
// are linked and a recomputation pass runs.
func (s *goalService) CreateGoal(userID, name string, targetAmount decimal.Decimal, targetDate *time.Time, notes string) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		Notes:         notes,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals retrieves a paginated list of goals with linked accounts.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Preload("LinkedAccounts").Order("created_at").
		Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID retrieves a goal by ID for a specific user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Preload("LinkedAccounts").Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates the mutable fields of a goal. CurrentAmount is owned
// by the recomputation pass and cannot be set here.
func (s *goalService) UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.TargetAmount != nil {
		if !fields.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		updates["target_amount"] = *fields.TargetAmount
	}
	if fields.TargetDate != nil {
		updates["target_date"] = *fields.TargetDate
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Preload("LinkedAccounts").Where("id = ?", goal.ID).First(goal).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// DeleteGoal soft-deletes a goal and its account links.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(goal).Association("LinkedAccounts").Clear(); err != nil {
			return err
		}
		return tx.Delete(goal).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// LinkAccount links an account to a goal so its balance counts toward the
// goal's progress, then reruns the pass.
func (s *goalService) LinkAccount(userID, goalID, accountID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	account, err := s.accounts.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	for i := range goal.LinkedAccounts {
		if goal.LinkedAccounts[i].ID == accountID {
			return apperrors.ErrGoalLinkExists
		}
	}

	if err := s.db.Model(goal).Association("LinkedAccounts").Append(account); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.recompute.Run(userID)
	return err
}

// UnlinkAccount removes an account from a goal and reruns the pass.
func (s *goalService) UnlinkAccount(userID, goalID, accountID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	linked := false
	for i := range goal.LinkedAccounts {
		if goal.LinkedAccounts[i].ID == accountID {
			linked = true
			break
		}
	}
	if !linked {
		return apperrors.ErrGoalLinkNotFound
	}

	if err := s.db.Model(goal).Association("LinkedAccounts").Delete(&models.Account{Base: models.Base{ID: accountID}}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.recompute.Run(userID)
	return err
}
