package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GraphStats returns node/relationship counts for the graph projection.
func (c *HTTPClient) GraphStats(ctx context.Context) (*GraphStats, error) {
	var s GraphStats
	if err := c.do(ctx, http.MethodGet, "/api/graph/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecisionTimeline returns a decision's events in chronological order.
func (c *HTTPClient) DecisionTimeline(ctx context.Context, decisionID int64) ([]TimelineEvent, error) {
	var timeline []TimelineEvent
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/graph/timeline/%d", decisionID), nil, nil, &timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}

// RelatedDecisions returns decisions connected to the given one through
// shared events or succession links.
func (c *HTTPClient) RelatedDecisions(ctx context.Context, decisionID int64) ([]RelatedDecision, error) {
	var related []RelatedDecision
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/graph/related-decisions/%d", decisionID), nil, nil, &related); err != nil {
		return nil, err
	}
	return related, nil
}

// EventCausality returns the cause/effect neighborhood of an event.
func (c *HTTPClient) EventCausality(ctx context.Context, eventID int64) (*EventCausality, error) {
	var ec EventCausality
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/graph/causality/%d", eventID), nil, nil, &ec); err != nil {
		return nil, err
	}
	return &ec, nil
}

// DecisionImpact returns reach counts for a decision across the graph.
func (c *HTTPClient) DecisionImpact(ctx context.Context, decisionID int64) (*DecisionImpact, error) {
	var impact DecisionImpact
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/graph/impact/%d", decisionID), nil, nil, &impact); err != nil {
		return nil, err
	}
	return &impact, nil
}

// SearchGraph finds decisions whose title or description contains query.
func (c *HTTPClient) SearchGraph(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{"query": []string{query}}
	var results []SearchResult
	if err := c.do(ctx, http.MethodGet, "/api/graph/search", q, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
