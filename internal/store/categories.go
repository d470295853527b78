package store

import (
	"context"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryStore implements Categories with gorm.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) CategoryStore {
	return CategoryStore{db: db}
}

// List returns the categories of the user in display order.
func (s CategoryStore) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error

	return categories, err
}

// FindForUser returns the category if it belongs to the user.
func (s CategoryStore) FindForUser(ctx context.Context, userID, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error

	return category, err
}

// BudgetStore implements Budgets with gorm.
type BudgetStore struct {
	db *gorm.DB
}

func NewBudgetStore(db *gorm.DB) BudgetStore {
	return BudgetStore{db: db}
}

// ListForYears returns all budgets of the user in any of the years.
func (s BudgetStore) ListForYears(ctx context.Context, userID uuid.UUID, years ...int) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND year IN ?", userID, years).
		Order("year ASC, month ASC").
		Find(&budgets).Error

	return budgets, err
}

// Upsert sets the budget of the category for the month of the passed budget.
// An existing budget for the month is overwritten.
func (s BudgetStore) Upsert(ctx context.Context, budget models.Budget) (models.Budget, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&budget).Error
	if err != nil {
		return models.Budget{}, err
	}

	var stored models.Budget
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND year = ? AND month = ?", budget.UserID, budget.CategoryID, budget.Year, budget.Month).
		First(&stored).Error

	return stored, err
}
