// Package ledger provides read-only snapshot access to the transaction
// tables. The recomputation core consumes the snapshot shape and stays
// agnostic of the storage behind it.
package ledger

import (
	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/recompute"
)

// Reader loads one consistent in-memory snapshot of a user's ledger.
type Reader struct {
	db *gorm.DB
}

// NewReader creates a Reader over the given database.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// Snapshot reads the user's accounts, debts, payments, revenue, and goals
// in a single transaction so the recomputation pass always operates on a
// consistent view.
func (r *Reader) Snapshot(userID string) (recompute.Snapshot, error) {
	var snap recompute.Snapshot

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Find(&snap.Accounts).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Find(&snap.Debts).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Find(&snap.Payments).Error; err != nil {
			return err
		}
		if err := tx.Preload("Allocations").Where("user_id = ?", userID).Find(&snap.Revenues).Error; err != nil {
			return err
		}
		return tx.Preload("LinkedAccounts").Where("user_id = ?", userID).Find(&snap.Goals).Error
	})
	if err != nil {
		return recompute.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snap, nil
}
