// Package pipeline implements the flows that change transactions: the
// inbound email webhook and the categorization feedback.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/resend"
	"github.com/aura-finance/backend/internal/store"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrUnknownRecipient = fmt.Errorf("%w user for any of the recipient addresses", models.ErrResourceNotFound)
	ErrAgentUnavailable = errors.New("the categorization agent is unavailable, please retry later")
)

// Stores bundles the storage capabilities used by the pipelines.
type Stores struct {
	Transactions store.Transactions
	VendorCache  store.VendorCache
	Users        store.Users
	Categories   store.Categories
}

// EmailFetcher loads the content of an inbound email. resend.Client implements it.
type EmailFetcher interface {
	ReceivedEmail(ctx context.Context, id string) (resend.ReceivedEmail, error)
}

// WebhookOutcomes counts processed webhooks by their outcome.
var WebhookOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "aura_webhook_outcomes_total",
		Help: "How many webhooks were processed, partitioned by outcome.",
	},
	[]string{"status"},
)

// categoryName returns the name of the category with the ID or an empty
// string if it is not in the list.
func categoryName(categories []models.Category, id uuid.UUID) string {
	for _, category := range categories {
		if category.ID == id {
			return category.Name
		}
	}
	return ""
}
