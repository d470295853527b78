package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Correction is a user-approved category change. Corrections are recalled
// as context for later categorizations of the same user.
type Correction struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index"`
	User          User      `json:"-"`
	TransactionID uuid.UUID
	Vendor        string `gorm:"index"`
	OldCategory   string
	NewCategory   string
	Reasoning     string
}

func (c *Correction) BeforeSave(_ *gorm.DB) error {
	c.Vendor = strings.TrimSpace(c.Vendor)
	c.Reasoning = strings.TrimSpace(c.Reasoning)
	return nil
}
