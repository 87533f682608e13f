package services

import (
	"fmt"

	"github.com/alperendogan/devboard/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxHistoryLimit = 100

// CreditStats are derived from the same ledger rows as Balance, so
// Net always equals the balance for the same snapshot.
type CreditStats struct {
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
	Net         int64 `json:"net"`
}

// CreditService is an append-only ledger. Record is the only mutation;
// balance and stats are always folds over the transaction rows, never
// a counter that could drift.
type CreditService struct {
	db *gorm.DB
}

func NewCreditService(db *gorm.DB) *CreditService {
	return &CreditService{db: db}
}

// Record appends one immutable transaction.
func (s *CreditService) Record(userID uuid.UUID, amount int64, reason string, metadata datatypes.JSON) (*models.CreditTransaction, error) {
	txn := models.CreditTransaction{
		ID:       uuid.New(),
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		Metadata: metadata,
	}
	if err := s.db.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return &txn, nil
}

func (s *CreditService) Balance(userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.db.Model(&models.CreditTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	return balance, err
}

// History returns transactions newest first. Limit is clamped to
// [1, 100] and offset to >= 0 to keep scans bounded.
func (s *CreditService) History(userID uuid.UUID, limit, offset int) ([]models.CreditTransaction, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	var txns []models.CreditTransaction
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	return txns, err
}

func (s *CreditService) Stats(userID uuid.UUID) (*CreditStats, error) {
	var stats CreditStats
	err := s.db.Model(&models.CreditTransaction{}).
		Where("user_id = ?", userID).
		Select(
			"COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_earned, " +
				"COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS total_spent, " +
				"COALESCE(SUM(amount), 0) AS net").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
