// Package resend fetches the content of inbound emails from the Resend API.
package resend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrEmailNotFound = errors.New("the email does not exist at the provider")
	ErrUpstream      = errors.New("the email provider could not be reached")
)

// ReceivedEmail is an inbound email as returned by the API.
type ReceivedEmail struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// Content returns the text body, falling back to the HTML body with tags removed.
func (e ReceivedEmail) Content() string {
	if strings.TrimSpace(e.Text) != "" {
		return e.Text
	}
	return StripHTML(e.HTML)
}

// Client is a minimal Resend API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ReceivedEmail fetches the inbound email with the ID.
func (c Client) ReceivedEmail(ctx context.Context, id string) (ReceivedEmail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/emails/receiving/%s", c.baseURL, url.PathEscape(id)), nil)
	if err != nil {
		return ReceivedEmail{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ReceivedEmail{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ReceivedEmail{}, fmt.Errorf("%w: %s", ErrEmailNotFound, id)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ReceivedEmail{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var email ReceivedEmail
	err = json.NewDecoder(resp.Body).Decode(&email)
	if err != nil {
		return ReceivedEmail{}, fmt.Errorf("%w: could not decode response: %v", ErrUpstream, err)
	}

	return email, nil
}
