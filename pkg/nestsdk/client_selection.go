package nestsdk

import (
	"context"
	"net/http"
	"net/url"
)

// BeginSelection opens a transient invite-editing state for the session,
// seeded from its active invite.
func (c *Client) BeginSelection(ctx context.Context, sessionID string) error {
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection/begin"
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

// SelectSitter picks a sitter in the editing state. Picking the currently
// selected sitter deselects; picking over a different sitter's live invite
// reports requires_confirmation instead of applying.
func (c *Client) SelectSitter(ctx context.Context, sessionID string, req SelectionRequest) (*SelectionResponse, error) {
	var resp SelectionResponse
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection/select"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmSelection promotes the held selection, deleting the invite it
// replaces.
func (c *Client) ConfirmSelection(ctx context.Context, sessionID string) (*SelectionResponse, error) {
	var resp SelectionResponse
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection/confirm"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectionStatus reports whether the editing state diverges from the
// persisted invite.
func (c *Client) SelectionStatus(ctx context.Context, sessionID string) (*SelectionResponse, error) {
	var resp SelectionResponse
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CommitSelection persists the selection as an invite: an update when the
// live invite survived the edit, a fresh create otherwise.
func (c *Client) CommitSelection(ctx context.Context, sessionID string) (*Invite, error) {
	var inv Invite
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection/commit"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

// EndSelection discards the session's editing state. Uncommitted selections
// are lost.
func (c *Client) EndSelection(ctx context.Context, sessionID string) error {
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/selection"
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
