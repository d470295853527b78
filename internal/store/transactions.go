package store

import (
	"context"
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionStore implements Transactions with gorm.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) TransactionStore {
	return TransactionStore{db: db}
}

func (s TransactionStore) Create(ctx context.Context, transaction *models.Transaction) error {
	return s.db.WithContext(ctx).Create(transaction).Error
}

// SeenEmail reports if a transaction for the email has already been recorded.
func (s TransactionStore) SeenEmail(ctx context.Context, resendEmailID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("resend_email_id = ?", resendEmailID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindForUser returns the transaction if it belongs to the user.
// Transactions of other users are reported as not found.
func (s TransactionStore) FindForUser(ctx context.Context, userID, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transaction).Error

	return transaction, err
}

func (s TransactionStore) UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) error {
	tx := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"category_id": categoryID,
			"updated_at":  time.Now().In(time.UTC),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound("transaction")
	}

	return nil
}

// ListInPeriod returns the transactions of the user in [start, end), oldest first.
func (s TransactionStore) ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", start.In(time.UTC), end.In(time.UTC)).
		Order("date ASC").
		Find(&transactions).Error

	return transactions, err
}
