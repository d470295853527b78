package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// swagger:enum Confidence
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// swagger:enum TransactionSource
type TransactionSource string

const (
	SourceEmail  TransactionSource = "email"
	SourceManual TransactionSource = "manual"
)

// Transaction is a single spend event. Transactions are never deleted.
type Transaction struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index"`
	User          User      `json:"-"`
	CategoryID    uuid.UUID
	Category      Category        `json:"-"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Vendor        string
	Description   string
	Date          time.Time `gorm:"index"`
	ResendEmailID *string   `gorm:"uniqueIndex"` // The provider ID of the email the transaction was created from
	EmailSubject  string
	Confidence    Confidence
	Source        TransactionSource
}

func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - defaults Source and Confidence
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Vendor = strings.TrimSpace(t.Vendor)
	t.Description = strings.TrimSpace(t.Description)
	t.EmailSubject = strings.TrimSpace(t.EmailSubject)

	// A set but empty email ID would collide on the unique index
	if t.ResendEmailID != nil && strings.TrimSpace(*t.ResendEmailID) == "" {
		t.ResendEmailID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Source == "" {
		t.Source = SourceManual
	}

	if t.Source != SourceEmail && t.Source != SourceManual {
		return ErrTransactionSource
	}

	if t.Confidence == "" {
		t.Confidence = ConfidenceHigh
	}

	if t.Confidence != ConfidenceHigh && t.Confidence != ConfidenceMedium && t.Confidence != ConfidenceLow {
		return ErrConfidenceInvalid
	}

	if t.UserID == uuid.Nil {
		return ErrTransactionNoUser
	}

	return nil
}
