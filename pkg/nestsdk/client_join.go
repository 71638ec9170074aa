package nestsdk

import (
	"context"
	"net/http"
)

// ValidateInvite resolves a typed or scanned code to a join preview without
// changing anything. This endpoint is public and strictly rate limited.
func (c *Client) ValidateInvite(ctx context.Context, code string) (*JoinPreview, error) {
	var preview JoinPreview
	if err := c.doJSON(ctx, http.MethodPost, "/v1/join/validate", JoinRequest{Code: code}, &preview, http.StatusOK); err != nil {
		return nil, err
	}
	return &preview, nil
}

// AcceptInvite accepts the invite as the authenticated sitter.
func (c *Client) AcceptInvite(ctx context.Context, code string) (*SitterSession, error) {
	var ss SitterSession
	if err := c.doJSON(ctx, http.MethodPost, "/v1/join/accept", JoinRequest{Code: code}, &ss, http.StatusCreated); err != nil {
		return nil, err
	}
	return &ss, nil
}

// DeclineInvite declines the invite as the authenticated sitter.
func (c *Client) DeclineInvite(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/join/decline", JoinRequest{Code: code}, nil, http.StatusNoContent)
}
