package nestsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateSession creates a caregiving session owned by the caller.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	var sess Session
	if err := c.doJSON(ctx, http.MethodPost, "/v1/sessions", req, &sess, http.StatusCreated); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSession fetches one of the caller's sessions.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := c.doJSON(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(id), nil, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListSessions returns the caller's sessions, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.doJSON(ctx, http.MethodGet, "/v1/sessions", nil, &sessions, http.StatusOK); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListSitterSessions returns the sessions the caller has joined as a sitter.
func (c *Client) ListSitterSessions(ctx context.Context) ([]SitterSession, error) {
	var sessions []SitterSession
	if err := c.doJSON(ctx, http.MethodGet, "/v1/sitter-sessions", nil, &sessions, http.StatusOK); err != nil {
		return nil, err
	}
	return sessions, nil
}
