package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a user-owned label for transactions.
type Category struct {
	DefaultModel
	UserID    uuid.UUID `gorm:"uniqueIndex:category_user_name"`
	User      User      `json:"-"`
	Name      string    `gorm:"uniqueIndex:category_user_name"`
	Icon      string
	Color     string
	SortOrder int
	IsDefault bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}

// DefaultCategories are created for every new user.
func DefaultCategories(userID uuid.UUID) []Category {
	defaults := []struct {
		name  string
		icon  string
		color string
	}{
		{"Groceries", "🛒", "#22c55e"},
		{"Food & Dining", "🍜", "#f97316"},
		{"Transport", "🚇", "#3b82f6"},
		{"Shopping", "🛍️", "#a855f7"},
		{"Bills & Utilities", "💡", "#eab308"},
		{"Entertainment", "🎬", "#ec4899"},
		{"Health", "💊", "#14b8a6"},
		{"Travel", "✈️", "#0ea5e9"},
		{"Transfers", "💸", "#64748b"},
		{"Other", "📦", "#94a3b8"},
	}

	categories := make([]Category, 0, len(defaults))
	for i, d := range defaults {
		categories = append(categories, Category{
			UserID:    userID,
			Name:      d.name,
			Icon:      d.icon,
			Color:     d.color,
			SortOrder: i,
			IsDefault: true,
		})
	}

	return categories
}
