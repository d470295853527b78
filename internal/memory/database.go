package memory

import (
	"context"

	"github.com/aura-finance/backend/internal/merchant"
	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DatabaseStore keeps corrections in the database.
type DatabaseStore struct {
	db *gorm.DB
}

var _ Store = DatabaseStore{}

func NewDatabaseStore(db *gorm.DB) DatabaseStore {
	return DatabaseStore{db: db}
}

func (s DatabaseStore) Remember(ctx context.Context, correction models.Correction) error {
	correction.Vendor = merchant.Normalize(correction.Vendor)
	return s.db.WithContext(ctx).Create(&correction).Error
}

func (s DatabaseStore) Recall(ctx context.Context, userID uuid.UUID, vendor string, limit int) ([]models.Correction, error) {
	var corrections []models.Correction
	if limit <= 0 {
		return corrections, nil
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(gorm.Expr("CASE WHEN vendor = ? THEN 0 ELSE 1 END", merchant.Normalize(vendor))).
		Order("created_at DESC").
		Limit(limit).
		Find(&corrections).Error

	return corrections, err
}
