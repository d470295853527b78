package test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/aura-finance/backend/internal/webhook"
	"github.com/google/uuid"
)

// WebhookSecret is a valid signing secret for tests.
const WebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

// SignWebhook returns the headers of a webhook delivery for body, signed
// with WebhookSecret at the current time.
func SignWebhook(t *testing.T, body []byte) http.Header {
	verifier, err := webhook.NewVerifier(WebhookSecret)
	if err != nil {
		t.Fatalf("Webhook verifier could not be created: %v", err)
	}

	id := "msg_" + uuid.New().String()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	header := http.Header{}
	header.Set("svix-id", id)
	header.Set("svix-timestamp", timestamp)
	header.Set("svix-signature", "v1,"+verifier.Sign(id, timestamp, body))
	return header
}

// EmailReceived returns the body of an email.received webhook.
func EmailReceived(emailID, to, subject, text string) []byte {
	return []byte(`{
		"type": "email.received",
		"created_at": "2026-10-15T08:30:00.000Z",
		"data": {
			"email_id": "` + emailID + `",
			"created_at": "2026-10-15T08:29:58.000Z",
			"from": "DBS Alerts <alerts@dbs.com>",
			"to": ["` + to + `"],
			"subject": "` + subject + `",
			"text": "` + text + `"
		}
	}`)
}
