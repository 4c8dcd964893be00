package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateDecisionRequest is the POST /api/decisions payload.
type CreateDecisionRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Context     *string `json:"context,omitempty" validate:"omitempty,max=500"`
}

// UpdateDecisionRequest is the PUT /api/decisions/{id} payload. Nil fields
// are omitted and left unchanged server-side.
type UpdateDecisionRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Context     *string `json:"context,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ListDecisions returns a page of active decisions. Negative skip and
// non-positive limit fall back to the server defaults (0, 10).
func (c *HTTPClient) ListDecisions(ctx context.Context, skip, limit int) ([]Decision, error) {
	var decisions []Decision
	if err := c.do(ctx, http.MethodGet, "/api/decisions", pagination(skip, limit), nil, &decisions); err != nil {
		return nil, err
	}
	return decisions, nil
}

// GetDecision fetches a single decision; a missing id yields ErrNotFound.
func (c *HTTPClient) GetDecision(ctx context.Context, id int64) (*Decision, error) {
	var d Decision
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/decisions/%d", id), nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDecision records a new decision and returns it with its
// server-assigned id and timestamps.
func (c *HTTPClient) CreateDecision(ctx context.Context, req CreateDecisionRequest) (*Decision, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	var d Decision
	if err := c.do(ctx, http.MethodPost, "/api/decisions", nil, req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDecision applies a partial update and returns the updated record.
func (c *HTTPClient) UpdateDecision(ctx context.Context, id int64, req UpdateDecisionRequest) (*Decision, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	var d Decision
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/decisions/%d", id), nil, req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDecision removes a decision. The server soft-deletes by default;
// purge requests permanent removal on servers that support it (servers that
// only soft-delete ignore the parameter).
func (c *HTTPClient) DeleteDecision(ctx context.Context, id int64, purge bool) error {
	var q url.Values
	if purge {
		q = url.Values{"hard": []string{"true"}}
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/decisions/%d", id), q, nil, nil)
}
