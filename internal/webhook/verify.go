// Package webhook verifies and parses the webhooks Resend delivers for
// inbound emails.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSignature = errors.New("the webhook signature is invalid")
	ErrMalformedPayload = errors.New("the webhook payload could not be parsed")
	ErrInvalidSecret    = errors.New("the webhook secret must be a base64 encoded key prefixed with whsec_")
)

// Tolerance is the maximum difference between the signed timestamp and the
// current time.
const Tolerance = 5 * time.Minute

const secretPrefix = "whsec_"

// Verifier checks webhook signatures. Resend signs webhooks with the
// scheme used by Svix.
type Verifier struct {
	key []byte
	now func() time.Time
}

// NewVerifier returns a Verifier for the signing secret shown in the Resend dashboard.
func NewVerifier(secret string) (Verifier, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
	if err != nil || len(key) == 0 {
		return Verifier{}, ErrInvalidSecret
	}

	return Verifier{key: key, now: time.Now}, nil
}

// WithClock returns a copy of the Verifier that uses now as the current time.
func (v Verifier) WithClock(now func() time.Time) Verifier {
	v.now = now
	return v
}

// Verify checks the signature headers against the raw request body.
// It must be called before the body is parsed.
func (v Verifier) Verify(header http.Header, body []byte) error {
	id := headerValue(header, "svix-id", "webhook-id")
	timestamp := headerValue(header, "svix-timestamp", "webhook-timestamp")
	signatures := headerValue(header, "svix-signature", "webhook-signature")

	if id == "" || timestamp == "" || signatures == "" {
		return fmt.Errorf("%w: missing signature headers", ErrInvalidSignature)
	}

	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: timestamp is not a number", ErrInvalidSignature)
	}

	signedAt := time.Unix(seconds, 0)
	if d := v.now().Sub(signedAt); d > Tolerance || d < -Tolerance {
		return fmt.Errorf("%w: timestamp is outside of the tolerance", ErrInvalidSignature)
	}

	expected := v.Sign(id, timestamp, body)

	// The header holds a space separated list of versioned signatures
	for _, versioned := range strings.Fields(signatures) {
		version, signature, ok := strings.Cut(versioned, ",")
		if !ok || version != "v1" {
			continue
		}

		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// Sign returns the v1 signature for the message.
func (v Verifier) Sign(id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func headerValue(header http.Header, keys ...string) string {
	for _, key := range keys {
		if value := header.Get(key); value != "" {
			return value
		}
	}
	return ""
}
