package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending ceiling for one category in one month.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID       `gorm:"uniqueIndex:budget_user_category_month"`
	User       User            `json:"-"`
	CategoryID uuid.UUID       `gorm:"uniqueIndex:budget_user_category_month"`
	Category   Category        `json:"-"`
	Year       int             `gorm:"uniqueIndex:budget_user_category_month"`
	Month      int             `gorm:"uniqueIndex:budget_user_category_month;check:budget_month_valid,month >= 1 AND month <= 12"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8);check:budget_amount_not_negative,amount >= 0"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Month < 1 || b.Month > 12 {
		return ErrBudgetMonthInvalid
	}

	if b.Amount.IsNegative() {
		return ErrBudgetNegative
	}

	return nil
}
