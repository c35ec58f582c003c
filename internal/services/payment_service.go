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

// paymentService handles the payment side of the append-only ledger.
type paymentService struct {
	db        *gorm.DB
	recompute RecomputeServicer
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB, recompute RecomputeServicer) PaymentServicer {
	return &paymentService{db: db, recompute: recompute}
}

// RecordPayment appends a payment to the ledger and reruns the
// recomputation pass. A nil debtID records an external expense.
func (s *paymentService) RecordPayment(userID, sourceAccountID string, debtID *string, amount decimal.Decimal, date time.Time, categoryID *string, notes string) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", sourceAccountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if debtID != nil {
		var count int64
		if err := s.db.Model(&models.Debt{}).Where("id = ? AND user_id = ?", *debtID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrDebtNotFound
		}
	}

	payment := &models.Payment{
		UserID:          userID,
		SourceAccountID: sourceAccountID,
		DebtID:          debtID,
		Amount:          amount,
		Date:            date,
		CategoryID:      categoryID,
		Notes:           notes,
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.recompute.Run(userID); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetUserPayments retrieves a paginated list of payments, newest first.
func (s *paymentService) GetUserPayments(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Payment{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.Payment
	if err := base.Order("date DESC, id").Scopes(pagination.Paginate(page)).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPaymentByID retrieves a payment by ID for a specific user.
func (s *paymentService) GetPaymentByID(userID, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("id = ? AND user_id = ?", paymentID, userID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payment, nil
}

// DeletePayment removes a mis-keyed entry and reruns the pass. There is
// deliberately no update: amendments are recorded as new payments.
func (s *paymentService) DeletePayment(userID, paymentID string) error {
	payment, err := s.GetPaymentByID(userID, paymentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(payment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.recompute.Run(userID)
	return err
}
