// Package email sends rendered messages through an HTTP email provider.
//
// One Send is one POST to {base_url}/mail/send with a bearer credential.
// There are no retries, no backoff, and no circuit breaking here: a failed
// delivery surfaces to the workflow that asked for it.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ignite/newsletter-service/internal/config"
	"github.com/ignite/newsletter-service/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Client is the outbound email transport adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sender     domain.SubscriberEmail
}

// NewClient creates an email client from configuration. The configured
// sender address must itself be valid.
func NewClient(cfg config.EmailConfig) (*Client, error) {
	sender, err := domain.ParseSubscriberEmail(cfg.Sender)
	if err != nil {
		return nil, fmt.Errorf("email: invalid sender: %w", err)
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		sender:     sender,
	}, nil
}

// Send delivers one message to the given recipients, one personalization per
// recipient. Any non-2xx response is a failure.
func (c *Client) Send(ctx context.Context, recipients []domain.SubscriberEmail, subject, htmlBody string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("email: no recipients")
	}

	personalizations := make([]personalization, len(recipients))
	for i, r := range recipients {
		personalizations[i] = personalization{To: []emailAddress{{Email: r.String()}}}
	}
	body := sendEmailBody{
		Personalizations: personalizations,
		From:             emailAddress{Email: c.sender.String()},
		Subject:          subject,
		Content:          []contentPart{{ContentType: "text/html", Value: htmlBody}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("email: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email: provider returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
