package nestsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInvite invites a sitter to a session. An empty request body creates
// an open invite anyone with the code may accept.
func (c *Client) CreateInvite(ctx context.Context, sessionID string, req InviteRequest) (*Invite, error) {
	var inv Invite
	path := "/v1/sessions/" + url.PathEscape(sessionID) + "/invite"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvite fetches one of the caller's invites.
func (c *Client) GetInvite(ctx context.Context, id string) (*Invite, error) {
	var inv Invite
	if err := c.doJSON(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(id), nil, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvite re-addresses a pending invite. The code is preserved.
func (c *Client) UpdateInvite(ctx context.Context, id string, req InviteUpdateRequest) (*Invite, error) {
	var inv Invite
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/invites/"+url.PathEscape(id), req, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvite removes an invite and unlinks it from its session.
func (c *Client) DeleteInvite(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/invites/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// CancelInvite revokes a pending invite without deleting it.
func (c *Client) CancelInvite(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/invites/"+url.PathEscape(id)+"/cancel", nil, nil, http.StatusNoContent)
}

// GetShareLinks returns the code, deep link and web URL for an invite.
func (c *Client) GetShareLinks(ctx context.Context, id string) (*ShareLinks, error) {
	var links ShareLinks
	if err := c.doJSON(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(id)+"/share", nil, &links, http.StatusOK); err != nil {
		return nil, err
	}
	return &links, nil
}
