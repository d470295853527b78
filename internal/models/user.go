package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// swagger:enum BudgetMode
type BudgetMode string

const (
	BudgetModeDirect     BudgetMode = "direct"
	BudgetModePercentage BudgetMode = "percentage"
)

// User is an account holder. Identity is established by the auth provider,
// emails forwarded to the InboundAddress are attributed to the user.
type User struct {
	DefaultModel
	Email          string           `gorm:"uniqueIndex"`
	Name           string
	Provider       string
	ProviderID     string
	InboundAddress string           `gorm:"uniqueIndex"`
	MonthlySalary  *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	BudgetMode     BudgetMode
}

// BeforeSave trims whitespace and lower-cases the addresses so that
// lookups by recipient are case-insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.InboundAddress = strings.ToLower(strings.TrimSpace(u.InboundAddress))
	u.Name = strings.TrimSpace(u.Name)

	if u.BudgetMode == "" {
		u.BudgetMode = BudgetModeDirect
	}

	if u.BudgetMode != BudgetModeDirect && u.BudgetMode != BudgetModePercentage {
		return ErrBudgetModeInvalid
	}

	return nil
}

// EffectiveBudget returns the amount a budget stands for in the users budget mode.
//
// In percentage mode, the budget amount is a percentage of the monthly salary.
// Without a salary, every percentage budget is zero.
func (u User) EffectiveBudget(amount decimal.Decimal) decimal.Decimal {
	if u.BudgetMode != BudgetModePercentage {
		return amount
	}

	if u.MonthlySalary == nil {
		return decimal.Zero
	}

	return u.MonthlySalary.Mul(amount).Div(decimal.NewFromInt(100))
}
