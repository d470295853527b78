package webhook

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// EventEmailReceived is the only event type that creates transactions.
const EventEmailReceived = "email.received"

// Event is the envelope of every Resend webhook.
type Event struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Data      Email  `json:"data"`
}

// Email is the data of an email.received event.
//
// Text and HTML are only set when the payload carries the content. Otherwise,
// the content needs to be fetched from the API with the EmailID.
type Email struct {
	EmailID   string   `json:"email_id"`
	CreatedAt string   `json:"created_at"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	MessageID string   `json:"message_id"`
	Text      string   `json:"text"`
	HTML      string   `json:"html"`
}

// ParseEvent parses a verified webhook body.
func ParseEvent(body []byte) (Event, error) {
	var event Event
	err := json.Unmarshal(body, &event)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if event.Type == "" {
		return Event{}, fmt.Errorf("%w: the event type is missing", ErrMalformedPayload)
	}

	if event.Type == EventEmailReceived && event.Data.EmailID == "" {
		return Event{}, fmt.Errorf("%w: the email ID is missing", ErrMalformedPayload)
	}

	return event, nil
}

// Recipients returns the bare addresses the email was sent to.
func (e Email) Recipients() []string {
	addresses := make([]string, 0, len(e.To))
	for _, to := range e.To {
		addresses = append(addresses, Address(to))
	}
	return addresses
}

// Sender returns the bare address of the sender.
func (e Email) Sender() string {
	return Address(e.From)
}

// Address returns the lower-cased address part of a header value
// like "Jane Doe <jane@example.com>".
func Address(s string) string {
	if parsed, err := mail.ParseAddress(s); err == nil {
		return strings.ToLower(parsed.Address)
	}

	return strings.ToLower(strings.TrimSpace(s))
}

// ReceivedAt returns the time the email was received. It is zero if the
// payload does not carry a valid timestamp.
func (e Email) ReceivedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
