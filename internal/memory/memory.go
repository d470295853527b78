// Package memory is the long-term memory of the categorization agent. It
// stores the corrections users approved and recalls them as context for
// later categorizations.
package memory

import (
	"context"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
)

// Store remembers and recalls corrections.
type Store interface {
	Remember(ctx context.Context, correction models.Correction) error

	// Recall returns at most limit corrections of the user. Corrections for
	// the vendor come first, then the most recent ones.
	Recall(ctx context.Context, userID uuid.UUID, vendor string, limit int) ([]models.Correction, error)
}
