package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nestnote/nestnote/internal/session/domain"
	"github.com/nestnote/nestnote/pkg/sharelink"
)

// InviteNotification carries everything a delivery channel needs to tell a
// sitter about a new invite.
type InviteNotification struct {
	Invite domain.Invite   `json:"invite"`
	Links  sharelink.Links `json:"links"`
}

// InviteNotifier dispatches push/email notifications when an invite is
// created. Delivery is best-effort: a notifier error never rolls back the
// invite, it is only logged by the caller.
type InviteNotifier interface {
	InviteCreated(ctx context.Context, n InviteNotification) error
}

// LogNotifier is the default notifier: it records the event and nothing
// else. Useful for development and environments without a dispatch gateway.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) InviteCreated(ctx context.Context, ev InviteNotification) error {
	n.Logger.Info("invite notification",
		slog.String("invite_id", ev.Invite.ID),
		slog.String("session_id", ev.Invite.SessionID),
		slog.String("sitter_email", ev.Invite.SitterEmail),
		slog.String("web_url", ev.Links.WebURL),
	)
	return nil
}

// WebhookNotifier POSTs the notification payload to the configured dispatch
// gateway, which owns the actual push/email fan-out.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) InviteCreated(ctx context.Context, ev InviteNotification) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: dispatch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: dispatch gateway returned %d", resp.StatusCode)
	}
	return nil
}
