package api

import (
	"context"
	"fmt"
	"net/http"
)

// SummarizeDecision returns an LLM-written narrative of a decision's
// timeline. These endpoints are slow; pass a context with a deadline if the
// caller cannot wait indefinitely.
func (c *HTTPClient) SummarizeDecision(ctx context.Context, decisionID int64) (*DecisionSummary, error) {
	var s DecisionSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/llm/summarize/%d", decisionID), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AnalyzeRisks returns the LLM's risk/opportunity read of a decision.
func (c *HTTPClient) AnalyzeRisks(ctx context.Context, decisionID int64) (*RiskAnalysis, error) {
	var r RiskAnalysis
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/llm/analyze-risks/%d", decisionID), nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// NextSteps returns recommended follow-up actions for a decision.
func (c *HTTPClient) NextSteps(ctx context.Context, decisionID int64) (*NextSteps, error) {
	var n NextSteps
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/llm/next-steps/%d", decisionID), nil, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// QualityScore returns the LLM's assessment of the decision process.
func (c *HTTPClient) QualityScore(ctx context.Context, decisionID int64) (*QualityScore, error) {
	var q QualityScore
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/llm/quality-score/%d", decisionID), nil, nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
