package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AnalyticsOverview returns aggregate metrics across all active decisions.
func (c *HTTPClient) AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error) {
	var o AnalyticsOverview
	if err := c.do(ctx, http.MethodGet, "/api/analytics/overview", nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// EventTypeDistribution returns the histogram of event types.
func (c *HTTPClient) EventTypeDistribution(ctx context.Context) (*EventTypeDistribution, error) {
	var d EventTypeDistribution
	if err := c.do(ctx, http.MethodGet, "/api/analytics/event-types", nil, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DecisionTimelineStats returns the decision-creation trend for the trailing
// days window (server default 30 when days <= 0).
func (c *HTTPClient) DecisionTimelineStats(ctx context.Context, days int) (*TimelineStats, error) {
	var q url.Values
	if days > 0 {
		q = url.Values{"days": []string{fmt.Sprintf("%d", days)}}
	}
	var s TimelineStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/timeline", q, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// StatusSummary groups decisions by the type of their most recent event.
func (c *HTTPClient) StatusSummary(ctx context.Context) (*StatusSummary, error) {
	var s StatusSummary
	if err := c.do(ctx, http.MethodGet, "/api/analytics/status-summary", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
