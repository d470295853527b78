// Package agent asks a language model to categorize transaction alert emails.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnavailable     = errors.New("the categorization agent could not be reached")
	ErrInvalidResponse = errors.New("the categorization agent returned an unusable answer")
)

// Categorizer is the contract of the categorization agent.
//
// Every call is bounded by a timeout and never retried. Errors are returned
// to the caller, there is no fallback category.
type Categorizer interface {
	Categorize(ctx context.Context, in Input) (Categorization, error)
	Recategorize(ctx context.Context, in RecategorizeInput) (Proposal, error)
}

// Input is an email to categorize.
type Input struct {
	Subject     string
	Content     string
	Categories  []models.Category   // The categories of the user, the answer must be one of them
	Corrections []models.Correction // Earlier corrections of the user, most recent first
}

// Categorization is the agents reading of an email.
type Categorization struct {
	Vendor       string
	Amount       decimal.Decimal
	HasAmount    bool
	CategoryID   uuid.UUID
	CategoryName string
	Confidence   models.Confidence
	Description  string
}

// Message is one turn of an earlier feedback conversation.
type Message struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"This was a grocery run, not shopping"`
}

// RecategorizeInput is a users dispute of a categorization.
type RecategorizeInput struct {
	Transaction         models.Transaction
	CurrentCategory     string
	FeedbackText        string
	ConversationHistory []Message
	Categories          []models.Category
	Corrections         []models.Correction
}

// Proposal is a replacement category suggested to the user.
type Proposal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Reasoning    string
}

// Unconfigured is the Categorizer of a server without agent credentials.
// Every call fails with ErrUnavailable.
type Unconfigured struct{}

func (Unconfigured) Categorize(_ context.Context, _ Input) (Categorization, error) {
	return Categorization{}, fmt.Errorf("%w: no API key is configured", ErrUnavailable)
}

func (Unconfigured) Recategorize(_ context.Context, _ RecategorizeInput) (Proposal, error) {
	return Proposal{}, fmt.Errorf("%w: no API key is configured", ErrUnavailable)
}
