package pipeline

import (
	"context"
	"fmt"

	"github.com/aura-finance/backend/internal/agent"
	"github.com/aura-finance/backend/internal/memory"
	"github.com/aura-finance/backend/internal/merchant"
	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProposeRequest asks the agent to reconsider the category of a transaction.
type ProposeRequest struct {
	TransactionID       uuid.UUID       `json:"transactionId" example:"e0a0d8d2-7d1f-4bd0-9b6b-6d0e1f5c1e44"`
	FeedbackText        string          `json:"feedbackText" example:"This was my weekly grocery run"`
	ConversationHistory []agent.Message `json:"conversationHistory"`
}

// ApproveRequest applies a category change the user accepted.
type ApproveRequest struct {
	TransactionID uuid.UUID `json:"transactionId" example:"e0a0d8d2-7d1f-4bd0-9b6b-6d0e1f5c1e44"`
	NewCategoryID uuid.UUID `json:"newCategoryId" example:"1e1c64f2-5c1c-4a4e-a3a1-2b7c4b9a8f10"`
	Vendor        string    `json:"vendor" example:"NTUC FAIRPRICE"`
	Reasoning     string    `json:"reasoning" example:"NTUC FairPrice is a supermarket chain"`
}

// ApprovalResult reports which of the independent steps of an approval succeeded.
type ApprovalResult struct {
	TransactionUpdated bool              `json:"transactionUpdated" example:"true"`
	VendorCacheUpdated bool              `json:"vendorCacheUpdated" example:"true"`
	MemoryStored       bool              `json:"memoryStored" example:"true"`
	Errors             map[string]string `json:"errors,omitempty"` // Error message per failed step
}

// Steps of an approval, used as keys of ApprovalResult.Errors.
const (
	StepTransaction = "transaction"
	StepVendorCache = "vendorCache"
	StepMemory      = "memory"
)

// FeedbackConfig configures a Feedback pipeline.
type FeedbackConfig struct {
	Stores     Stores
	Agent      agent.Categorizer
	Memory     memory.Store
	RecallSize int
}

// Feedback lets users dispute categorizations.
type Feedback struct {
	FeedbackConfig
}

func NewFeedback(config FeedbackConfig) Feedback {
	return Feedback{FeedbackConfig: config}
}

// Propose returns the category the agent suggests after the user's feedback.
// Nothing is changed.
func (f Feedback) Propose(ctx context.Context, userID uuid.UUID, req ProposeRequest) (agent.Proposal, error) {
	transaction, err := f.Stores.Transactions.FindForUser(ctx, userID, req.TransactionID)
	if err != nil {
		return agent.Proposal{}, err
	}

	categories, err := f.Stores.Categories.List(ctx, userID)
	if err != nil {
		return agent.Proposal{}, err
	}

	corrections, err := f.Memory.Recall(ctx, userID, transaction.Vendor, f.RecallSize)
	if err != nil {
		log.Warn().Err(err).Str("user", userID.String()).Msg("Corrections could not be recalled")
		corrections = nil
	}

	proposal, err := f.Agent.Recategorize(ctx, agent.RecategorizeInput{
		Transaction:         transaction,
		CurrentCategory:     categoryName(categories, transaction.CategoryID),
		FeedbackText:        req.FeedbackText,
		ConversationHistory: req.ConversationHistory,
		Categories:          categories,
		Corrections:         corrections,
	})
	if err != nil {
		log.Error().Err(err).Str("user", userID.String()).Str("transaction", transaction.ID.String()).Msg("Recategorization failed")
		return agent.Proposal{}, fmt.Errorf("%w: %w", ErrAgentUnavailable, err)
	}

	return proposal, nil
}

// Approve changes the category of the transaction, points the vendor cache
// for the vendor to the new category and remembers the correction.
//
// Ownership of the transaction and the category is checked before anything
// is changed. After that, the three steps are independent and a failing step
// does not prevent the others.
func (f Feedback) Approve(ctx context.Context, userID uuid.UUID, req ApproveRequest) (ApprovalResult, error) {
	transaction, err := f.Stores.Transactions.FindForUser(ctx, userID, req.TransactionID)
	if err != nil {
		return ApprovalResult{}, err
	}

	category, err := f.Stores.Categories.FindForUser(ctx, userID, req.NewCategoryID)
	if err != nil {
		return ApprovalResult{}, err
	}

	oldCategory := ""
	if old, err := f.Stores.Categories.FindForUser(ctx, userID, transaction.CategoryID); err == nil {
		oldCategory = old.Name
	}

	vendor := merchant.Normalize(req.Vendor)
	if vendor == "" {
		vendor = merchant.Normalize(transaction.Vendor)
	}

	logger := log.With().Str("user", userID.String()).Str("transaction", transaction.ID.String()).Str("vendor", vendor).Logger()
	result := ApprovalResult{Errors: map[string]string{}}

	err = f.Stores.Transactions.UpdateCategory(ctx, transaction.ID, category.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Transaction category could not be updated")
		result.Errors[StepTransaction] = err.Error()
	} else {
		result.TransactionUpdated = true
	}

	if vendor == "" {
		result.Errors[StepVendorCache] = models.ErrVendorNameEmpty.Error()
	} else if _, err := f.Stores.VendorCache.Upsert(ctx, userID, vendor, category.ID); err != nil {
		logger.Error().Err(err).Msg("Vendor cache could not be updated")
		result.Errors[StepVendorCache] = err.Error()
	} else {
		result.VendorCacheUpdated = true
	}

	err = f.Memory.Remember(ctx, models.Correction{
		UserID:        userID,
		TransactionID: transaction.ID,
		Vendor:        vendor,
		OldCategory:   oldCategory,
		NewCategory:   category.Name,
		Reasoning:     req.Reasoning,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Correction could not be stored")
		result.Errors[StepMemory] = err.Error()
	} else {
		result.MemoryStored = true
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}

	logger.Info().
		Bool("transaction_updated", result.TransactionUpdated).
		Bool("vendor_cache_updated", result.VendorCacheUpdated).
		Bool("memory_stored", result.MemoryStored).
		Msg("Feedback approved")

	return result, nil
}
