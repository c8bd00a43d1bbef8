package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"propale/pkg/platform/sentinel"
)

// APIMailer posts messages to an EmailJS-style transactional email API. The
// three credential values (service ID, template ID, public key) are the only
// secrets the dispatch call consumes.
type APIMailer struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	client     *http.Client
}

// NewAPIMailer builds the production mailer. A nil client falls back to
// http.DefaultClient.
func NewAPIMailer(endpoint, serviceID, templateID, publicKey string, client *http.Client) *APIMailer {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIMailer{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		client:     client,
	}
}

type apiRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send performs one POST. Any transport or API failure comes back wrapped in
// sentinel.ErrUnavailable so the service can surface a retryable outcome.
func (m *APIMailer) Send(ctx context.Context, msg Message) error {
	payload := apiRequest{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.publicKey,
		TemplateParams: map[string]string{
			"to_email":      msg.ToEmail,
			"to_name":       msg.ToName,
			"document_name": msg.DocumentName,
			"code":          msg.Code,
			"expires_in":    msg.ExpiresIn,
			"company_name":  msg.CompanyName,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email dispatch: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email dispatch: status %d (%s): %w",
			resp.StatusCode, bytes.TrimSpace(detail), sentinel.ErrUnavailable)
	}
	return nil
}
