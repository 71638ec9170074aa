package nestsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListSitters returns the caller's saved sitter directory. A non-empty query
// filters by case-insensitive substring over name or email.
func (c *Client) ListSitters(ctx context.Context, query string) ([]Sitter, error) {
	path := "/v1/sitters"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}

	var sitters []Sitter
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &sitters, http.StatusOK); err != nil {
		return nil, err
	}
	return sitters, nil
}

// AddSitter saves a sitter to the caller's directory.
func (c *Client) AddSitter(ctx context.Context, req SitterRequest) (*Sitter, error) {
	var sitter Sitter
	if err := c.doJSON(ctx, http.MethodPost, "/v1/sitters", req, &sitter, http.StatusCreated); err != nil {
		return nil, err
	}
	return &sitter, nil
}

// UpdateSitter edits an existing directory entry.
func (c *Client) UpdateSitter(ctx context.Context, id string, req SitterRequest) (*Sitter, error) {
	var sitter Sitter
	if err := c.doJSON(ctx, http.MethodPut, "/v1/sitters/"+url.PathEscape(id), req, &sitter, http.StatusOK); err != nil {
		return nil, err
	}
	return &sitter, nil
}

// DeleteSitter removes a directory entry. Deleting an absent entry succeeds.
func (c *Client) DeleteSitter(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/sitters/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
