// Package store holds the persistence capabilities the pipelines depend on.
//
// Every capability is an interface so that pipelines can be tested against
// fakes. The gorm implementations in this package are used in production.
package store

import (
	"context"
	"time"

	"github.com/aura-finance/backend/internal/models"
	"github.com/google/uuid"
)

// Transactions stores spend events.
type Transactions interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	SeenEmail(ctx context.Context, resendEmailID string) (bool, error)
	FindForUser(ctx context.Context, userID, id uuid.UUID) (models.Transaction, error)
	UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) error
	ListInPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Transaction, error)
}

// VendorCache maps normalized vendor names to categories.
//
// Callers pass vendor names through merchant.Normalize before calling
// Lookup or Upsert.
type VendorCache interface {
	Lookup(ctx context.Context, userID uuid.UUID, vendorName string) (models.VendorCacheEntry, bool, error)
	Upsert(ctx context.Context, userID uuid.UUID, vendorName string, categoryID uuid.UUID) (models.VendorCacheEntry, error)
	RecordHit(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.VendorCacheEntry, error)
}

// Users resolves account holders.
type Users interface {
	ByID(ctx context.Context, id uuid.UUID) (models.User, error)
	ByInboundAddress(ctx context.Context, addresses ...string) (models.User, error)
	Ensure(ctx context.Context, user models.User) (models.User, error)
}

// Categories lists and resolves categories of a user.
type Categories interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	FindForUser(ctx context.Context, userID, id uuid.UUID) (models.Category, error)
}

// Budgets lists and sets the budgets of a user.
type Budgets interface {
	ListForYears(ctx context.Context, userID uuid.UUID, years ...int) ([]models.Budget, error)
	Upsert(ctx context.Context, budget models.Budget) (models.Budget, error)
}

var (
	_ Transactions = TransactionStore{}
	_ VendorCache  = VendorCacheStore{}
	_ Users        = UserStore{}
	_ Categories   = CategoryStore{}
	_ Budgets      = BudgetStore{}
)
