// Package controllers implements the HTTP API of Aura.
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aura-finance/backend/internal/agent"
	"github.com/aura-finance/backend/internal/auth"
	"github.com/aura-finance/backend/internal/dashboard"
	"github.com/aura-finance/backend/internal/pipeline"
	"github.com/aura-finance/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookProcessor processes inbound email webhooks. pipeline.Webhook implements it.
type WebhookProcessor interface {
	Process(ctx context.Context, header http.Header, body []byte) (pipeline.Result, error)
}

// FeedbackProcessor handles disputes of categorizations. pipeline.Feedback implements it.
type FeedbackProcessor interface {
	Propose(ctx context.Context, userID uuid.UUID, req pipeline.ProposeRequest) (agent.Proposal, error)
	Approve(ctx context.Context, userID uuid.UUID, req pipeline.ApproveRequest) (pipeline.ApprovalResult, error)
}

// Aggregator computes dashboards. dashboard.Aggregator implements it.
type Aggregator interface {
	Summary(ctx context.Context, userID uuid.UUID, q dashboard.Query, now time.Time) (dashboard.Summary, error)
	Alerts(ctx context.Context, userID uuid.UUID, now time.Time) ([]dashboard.Alert, error)
}

type Controller struct {
	DB           *gorm.DB
	Users        store.Users
	Categories   store.Categories
	Budgets      store.Budgets
	Transactions store.Transactions
	VendorCache  store.VendorCache
	Sessions     auth.Sessions
	Webhook      WebhookProcessor
	Feedback     FeedbackProcessor
	Dashboard    Aggregator
	Development  bool             // Enables the development login
	Now          func() time.Time // Defaults to time.Now
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}
	return co.Now()
}

// authenticate returns the middleware that requires a valid session.
func (co Controller) authenticate() gin.HandlerFunc {
	return co.Sessions.Middleware(co.Users)
}
