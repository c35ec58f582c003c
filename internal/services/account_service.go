package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/models"
	"debttrack/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db        *gorm.DB
	recompute RecomputeServicer
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, recompute RecomputeServicer) AccountServicer {
	return &accountService{db: db, recompute: recompute}
}

// CreateAccount creates a new account for a user. The balance starts equal
// to the starting balance; subsequent values come from recomputation only.
func (s *accountService) CreateAccount(userID, name string, accountType models.AccountType, startingBalance, accountLimit decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{
		UserID:          userID,
		Name:            name,
		Type:            accountType,
		Status:          models.AccountStatusActive,
		StartingBalance: startingBalance,
		Balance:         startingBalance,
		AccountLimit:    accountLimit,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetUserAccounts retrieves a paginated list of accounts for a user.
func (s *accountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific user.
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account. Changing the starting balance
// triggers a recomputation pass, since every derived balance depends on it.
func (s *accountService) UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	if fields.StartingBalance != nil {
		updates["starting_balance"] = *fields.StartingBalance
	}
	if fields.AccountLimit != nil {
		updates["account_limit"] = *fields.AccountLimit
	}

	if len(updates) == 0 {
		return account, nil
	}

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if fields.StartingBalance != nil {
		if _, err := s.recompute.Run(userID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// DeleteAccount soft-deletes an account. Accounts carrying a debt must
// have the debt removed first.
func (s *accountService) DeleteAccount(userID, accountID string) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	var debtCount int64
	if err := s.db.Model(&models.Debt{}).Where("account_id = ?", accountID).Count(&debtCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if debtCount > 0 {
		return apperrors.ErrAccountInUse
	}

	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Payments and allocations referencing this account become referential
	// gaps; rerun the pass so balances and goals reflect that immediately.
	_, err = s.recompute.Run(userID)
	return err
}
