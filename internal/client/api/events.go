package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateEventRequest is the POST /api/events payload. An event always
// belongs to exactly one decision.
type CreateEventRequest struct {
	DecisionID  int64     `json:"decision_id" validate:"required,gt=0"`
	EventType   EventType `json:"event_type" validate:"required,oneof=proposed approved rejected implemented on_hold review updated"`
	Source      *string   `json:"source,omitempty" validate:"omitempty,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ListEvents returns a page of events across all decisions, newest first.
func (c *HTTPClient) ListEvents(ctx context.Context, skip, limit int) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, "/api/events", pagination(skip, limit), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListDecisionEvents returns the full event history of one decision.
// A missing decision yields ErrNotFound.
func (c *HTTPClient) ListDecisionEvents(ctx context.Context, decisionID int64) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/decisions/%d/events", decisionID), nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent attaches a new event to a decision. Creating an event on a
// decision that does not exist yields ErrNotFound.
func (c *HTTPClient) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if err := c.checkRequest(req); err != nil {
		return nil, err
	}
	var e Event
	if err := c.do(ctx, http.MethodPost, "/api/events", nil, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteEvent removes a single event; the owning decision is unaffected.
func (c *HTTPClient) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), nil, nil, nil)
}
