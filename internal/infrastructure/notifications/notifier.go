package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"valora.backend/internal/config"
	"valora.backend/pkg/logger"
)

// Notifier sends transactional emails. All sends are best-effort and the
// callers never fail an operation on a notification error.
type Notifier interface {
	Send(ctx context.Context, templateID, recipient string, params map[string]string) error
}

const (
	TemplateDepositRequested  = "deposit_requested_template"
	TemplateDepositConfirmed  = "deposit_template"
	TemplateInvestmentCreated = "investment_template"
	TemplateWithdrawal        = "withdrawal_template"
	TemplateWelcome           = "welcome_template"
	TemplateContact           = "contact_template"
)

// RelayNotifier posts emails to a hosted template relay
type RelayNotifier struct {
	relayURL  string
	serviceID string
	publicKey string
	fromName  string
	client    *http.Client
}

// NewRelayNotifier creates an email relay notifier
func NewRelayNotifier(cfg config.EmailConfig) *RelayNotifier {
	return &RelayNotifier{
		relayURL:  cfg.RelayURL,
		serviceID: cfg.ServiceID,
		publicKey: cfg.PublicKey,
		fromName:  cfg.FromName,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type relayPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts one templated email through the relay
func (n *RelayNotifier) Send(ctx context.Context, templateID, recipient string, params map[string]string) error {
	merged := make(map[string]string, len(params)+2)
	for k, v := range params {
		merged[k] = v
	}
	merged["to_email"] = recipient
	merged["from_name"] = n.fromName

	body, err := json.Marshal(relayPayload{
		ServiceID:      n.serviceID,
		TemplateID:     templateID,
		UserID:         n.publicKey,
		TemplateParams: merged,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.relayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email relay returned status %d", resp.StatusCode)
	}

	logger.Debug(ctx, "notification sent",
		zap.String("template", templateID),
		zap.String("recipient", recipient))
	return nil
}

// NopNotifier discards all notifications. Used when the relay is not
// configured.
type NopNotifier struct{}

// Send discards the notification
func (NopNotifier) Send(context.Context, string, string, map[string]string) error {
	return nil
}
