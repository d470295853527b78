package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aura-finance/backend/internal/agent"
	"github.com/aura-finance/backend/internal/memory"
	"github.com/aura-finance/backend/internal/merchant"
	"github.com/aura-finance/backend/internal/models"
	"github.com/aura-finance/backend/internal/resend"
	"github.com/aura-finance/backend/internal/webhook"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// Status is the terminal outcome of a processed webhook.
//
// swagger:enum Status
type Status string

const (
	StatusDuplicate Status = "duplicate"
	StatusSkipped   Status = "skipped"
	StatusCached    Status = "cached"
	StatusProcessed Status = "processed"
)

// statusFailed is only used as metrics label.
const statusFailed = "failed"

// Result is the outcome of Webhook.Process.
type Result struct {
	Status        Status     `json:"status" example:"processed"`
	TransactionID *uuid.UUID `json:"transactionId,omitempty" example:"e0a0d8d2-7d1f-4bd0-9b6b-6d0e1f5c1e44"`
}

// WebhookConfig configures a Webhook pipeline.
type WebhookConfig struct {
	Verifier   webhook.Verifier
	Stores     Stores
	Agent      agent.Categorizer
	Memory     memory.Store
	Emails     EmailFetcher
	Allowed    []string // Glob patterns for allowed sender addresses. Empty allows all senders
	RecallSize int      // Number of corrections passed to the agent
}

// Webhook turns inbound emails into transactions.
type Webhook struct {
	WebhookConfig
	now func() time.Time
}

func NewWebhook(config WebhookConfig) Webhook {
	return Webhook{WebhookConfig: config, now: time.Now}
}

// WithClock returns a copy of the Webhook that dates transactions without a
// received timestamp with now.
func (w Webhook) WithClock(now func() time.Time) Webhook {
	w.now = now
	return w
}

// Process verifies, deduplicates and categorizes the webhook with the raw body.
//
// A cache hit never changes the cache entry beyond its hit count. The agent
// is only invoked on a miss or when the email of a hit carries no amount.
// Errors are returned before anything is persisted, except for failures to
// update the vendor cache after the transaction was created, which are only
// logged.
func (w Webhook) Process(ctx context.Context, header http.Header, body []byte) (result Result, err error) {
	defer func() {
		status := string(result.Status)
		if err != nil {
			status = statusFailed
		}
		WebhookOutcomes.WithLabelValues(status).Inc()
	}()

	err = w.Verifier.Verify(header, body)
	if err != nil {
		return Result{}, err
	}

	event, err := webhook.ParseEvent(body)
	if err != nil {
		return Result{}, err
	}

	logger := log.With().Str("event", event.Type).Str("email_id", event.Data.EmailID).Logger()

	if event.Type != webhook.EventEmailReceived {
		logger.Debug().Str("status", string(StatusSkipped)).Msg("Webhook")
		return Result{Status: StatusSkipped}, nil
	}

	email := event.Data
	if !w.allowedSender(email.Sender()) {
		logger.Info().Str("sender", email.Sender()).Str("status", string(StatusSkipped)).Msg("Sender is not allowed")
		return Result{Status: StatusSkipped}, nil
	}

	seen, err := w.Stores.Transactions.SeenEmail(ctx, email.EmailID)
	if err != nil {
		return Result{}, err
	}

	if seen {
		logger.Info().Str("status", string(StatusDuplicate)).Msg("Webhook")
		return Result{Status: StatusDuplicate}, nil
	}

	user, err := w.Stores.Users.ByInboundAddress(ctx, email.Recipients()...)
	if errors.Is(err, models.ErrResourceNotFound) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownRecipient, strings.Join(email.Recipients(), ", "))
	} else if err != nil {
		return Result{}, err
	}
	logger = logger.With().Str("user", user.ID.String()).Logger()

	subject, content, err := w.content(ctx, email)
	if err != nil {
		return Result{}, err
	}

	alert := merchant.Extract(subject, content)
	vendor := merchant.Normalize(alert.Vendor)

	transaction := models.Transaction{
		UserID:        user.ID,
		ResendEmailID: &email.EmailID,
		EmailSubject:  subject,
		Date:          email.ReceivedAt(),
		Source:        models.SourceEmail,
	}
	if transaction.Date.IsZero() {
		transaction.Date = w.now()
	}

	entry, hit, err := w.Stores.VendorCache.Lookup(ctx, user.ID, vendor)
	if err != nil {
		return Result{}, err
	}

	status := StatusProcessed
	if hit {
		status = StatusCached

		transaction.CategoryID = entry.CategoryID
		transaction.Vendor = entry.VendorName
		transaction.Amount = alert.Amount
		transaction.Confidence = models.ConfidenceHigh

		// The cached category stands, the agent only reads the amount
		if !alert.HasAmount {
			categorization, err := w.categorize(ctx, logger, user, subject, content, vendor)
			if err != nil {
				return Result{}, err
			}

			if !categorization.HasAmount {
				return Result{}, fmt.Errorf("%w: %w: no amount in the email", ErrAgentUnavailable, agent.ErrInvalidResponse)
			}
			transaction.Amount = categorization.Amount
			transaction.Description = categorization.Description
		}
	} else {
		categorization, err := w.categorize(ctx, logger, user, subject, content, vendor)
		if err != nil {
			return Result{}, err
		}

		amount := categorization.Amount
		if !categorization.HasAmount {
			if !alert.HasAmount {
				return Result{}, fmt.Errorf("%w: %w: no amount in the email", ErrAgentUnavailable, agent.ErrInvalidResponse)
			}
			amount = alert.Amount
		}

		// Later lookups use the vendor extracted from the email, so the
		// cache entry is keyed by it. The agent's spelling is only used
		// when nothing was extracted.
		if vendor == "" {
			vendor = merchant.Normalize(categorization.Vendor)
		}

		transaction.CategoryID = categorization.CategoryID
		transaction.Vendor = vendor
		transaction.Amount = amount
		transaction.Description = categorization.Description
		transaction.Confidence = categorization.Confidence
	}

	err = w.Stores.Transactions.Create(ctx, &transaction)
	if errors.Is(err, models.ErrDuplicateEmail) {
		// Another delivery of the same email won the race
		logger.Info().Str("status", string(StatusDuplicate)).Msg("Webhook")
		return Result{Status: StatusDuplicate}, nil
	} else if err != nil {
		return Result{}, err
	}

	if hit {
		err := w.Stores.VendorCache.RecordHit(ctx, entry.ID)
		if err != nil {
			logger.Warn().Err(err).Str("vendor", vendor).Msg("Vendor cache hit could not be recorded")
		}
	} else {
		_, err := w.Stores.VendorCache.Upsert(ctx, user.ID, vendor, transaction.CategoryID)
		if err != nil {
			logger.Error().Err(err).Str("vendor", vendor).Msg("Vendor cache could not be updated")
		}
	}

	logger.Info().
		Str("vendor", transaction.Vendor).
		Str("status", string(status)).
		Str("transaction", transaction.ID.String()).
		Msg("Webhook")

	return Result{Status: status, TransactionID: &transaction.ID}, nil
}

// allowedSender reports whether the sender matches any of the allowed patterns.
func (w Webhook) allowedSender(sender string) bool {
	if len(w.Allowed) == 0 {
		return true
	}

	for _, pattern := range w.Allowed {
		if glob.Glob(strings.ToLower(pattern), sender) {
			return true
		}
	}
	return false
}

// content returns subject and text of the email. The content is fetched from
// the provider if the payload does not carry it.
func (w Webhook) content(ctx context.Context, email webhook.Email) (string, string, error) {
	if strings.TrimSpace(email.Text) != "" {
		return email.Subject, email.Text, nil
	}

	if strings.TrimSpace(email.HTML) != "" {
		return email.Subject, resend.StripHTML(email.HTML), nil
	}

	received, err := w.Emails.ReceivedEmail(ctx, email.EmailID)
	if err != nil {
		return "", "", err
	}

	subject := email.Subject
	if subject == "" {
		subject = received.Subject
	}

	return subject, received.Content(), nil
}

func (w Webhook) categorize(ctx context.Context, logger zerolog.Logger, user models.User, subject, content, vendor string) (agent.Categorization, error) {
	categories, err := w.Stores.Categories.List(ctx, user.ID)
	if err != nil {
		return agent.Categorization{}, err
	}

	corrections, err := w.Memory.Recall(ctx, user.ID, vendor, w.RecallSize)
	if err != nil {
		logger.Warn().Err(err).Msg("Corrections could not be recalled")
		corrections = nil
	}

	categorization, err := w.Agent.Categorize(ctx, agent.Input{
		Subject:     subject,
		Content:     content,
		Categories:  categories,
		Corrections: corrections,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Categorization failed")
		return agent.Categorization{}, fmt.Errorf("%w: %w", ErrAgentUnavailable, err)
	}

	return categorization, nil
}
