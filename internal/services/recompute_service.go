package services

import (
	"sort"
	"sync"

	"gorm.io/gorm"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/ledger"
	"debttrack/internal/logger"
	"debttrack/internal/models"
	"debttrack/internal/recompute"
)

// recomputeService runs the derived-state recomputation pass: snapshot in,
// derived state out, persisted in one transaction. Passes are serialized
// with a mutex so concurrent ledger edits cannot interleave with a pass.
type recomputeService struct {
	db     *gorm.DB
	reader *ledger.Reader
	mu     sync.Mutex
}

// NewRecomputeService creates a new RecomputeServicer.
func NewRecomputeService(db *gorm.DB) RecomputeServicer {
	return &recomputeService{db: db, reader: ledger.NewReader(db)}
}

// Run loads one consistent ledger snapshot for the user, recomputes every
// derived field from it, and persists the result. Referential gaps in the
// ledger are logged and returned as warnings, never treated as fatal.
func (s *recomputeService) Run(userID string) (*recompute.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.reader.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	result := recompute.Run(snap)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedKeys(result.AccountBalances) {
			if err := tx.Model(&models.Account{}).Where("id = ?", id).
				Update("balance", result.AccountBalances[id]).Error; err != nil {
				return err
			}
		}
		for _, id := range sortedKeys(result.DebtTotals) {
			totals := result.DebtTotals[id]
			if err := tx.Model(&models.Debt{}).Where("id = ?", id).Updates(map[string]interface{}{
				"amount_paid":      totals.AmountPaid,
				"remaining_amount": totals.Remaining,
			}).Error; err != nil {
				return err
			}
		}
		for _, id := range sortedKeys(result.GoalProgress) {
			if err := tx.Model(&models.Goal{}).Where("id = ?", id).
				Update("current_amount", result.GoalProgress[id]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, warning := range result.Warnings {
		logger.Get().Warnw("recompute warning",
			"user_id", userID,
			"kind", warning.Kind,
			"record_id", warning.RecordID,
			"ref_id", warning.RefID,
		)
	}

	return &result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
