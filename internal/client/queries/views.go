package queries

import (
	"context"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/cache"
)

// Graph views. All share the list staleness window and the "graph" prefix,
// so any event or decision mutation refreshes them together.

func (q *Queries) GraphStats(ctx context.Context) (*api.GraphStats, error) {
	return get(ctx, q.store, cache.Key(resGraph, "stats"), q.listStale, q.api.GraphStats)
}

func (q *Queries) DecisionTimeline(ctx context.Context, decisionID int64) ([]api.TimelineEvent, error) {
	key := cache.Key(resGraph, "timeline", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.TimelineEvent, error) {
		return q.api.DecisionTimeline(ctx, decisionID)
	})
}

func (q *Queries) RelatedDecisions(ctx context.Context, decisionID int64) ([]api.RelatedDecision, error) {
	key := cache.Key(resGraph, "related", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.RelatedDecision, error) {
		return q.api.RelatedDecisions(ctx, decisionID)
	})
}

func (q *Queries) EventCausality(ctx context.Context, eventID int64) (*api.EventCausality, error) {
	key := cache.Key(resGraph, "causality", eventID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.EventCausality, error) {
		return q.api.EventCausality(ctx, eventID)
	})
}

func (q *Queries) DecisionImpact(ctx context.Context, decisionID int64) (*api.DecisionImpact, error) {
	key := cache.Key(resGraph, "impact", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.DecisionImpact, error) {
		return q.api.DecisionImpact(ctx, decisionID)
	})
}

func (q *Queries) SearchGraph(ctx context.Context, query string) ([]api.SearchResult, error) {
	key := cache.Key(resGraph, "search", query)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.SearchResult, error) {
		return q.api.SearchGraph(ctx, query)
	})
}

// Analytics views, all under the "analytics" prefix.

func (q *Queries) AnalyticsOverview(ctx context.Context) (*api.AnalyticsOverview, error) {
	return get(ctx, q.store, cache.Key(resAnalytics, "overview"), q.listStale, q.api.AnalyticsOverview)
}

func (q *Queries) EventTypeDistribution(ctx context.Context) (*api.EventTypeDistribution, error) {
	return get(ctx, q.store, cache.Key(resAnalytics, "event-types"), q.listStale, q.api.EventTypeDistribution)
}

func (q *Queries) DecisionTimelineStats(ctx context.Context, days int) (*api.TimelineStats, error) {
	key := cache.Key(resAnalytics, "timeline", days)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.TimelineStats, error) {
		return q.api.DecisionTimelineStats(ctx, days)
	})
}

func (q *Queries) StatusSummary(ctx context.Context) (*api.StatusSummary, error) {
	return get(ctx, q.store, cache.Key(resAnalytics, "status-summary"), q.listStale, q.api.StatusSummary)
}

// LLM-derived views. Slow to compute server-side, so they are cached like
// lists and dirtied by any event mutation.

func (q *Queries) SummarizeDecision(ctx context.Context, decisionID int64) (*api.DecisionSummary, error) {
	key := cache.Key(resLLM, "summary", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.DecisionSummary, error) {
		return q.api.SummarizeDecision(ctx, decisionID)
	})
}

func (q *Queries) AnalyzeRisks(ctx context.Context, decisionID int64) (*api.RiskAnalysis, error) {
	key := cache.Key(resLLM, "risks", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.RiskAnalysis, error) {
		return q.api.AnalyzeRisks(ctx, decisionID)
	})
}

func (q *Queries) NextSteps(ctx context.Context, decisionID int64) (*api.NextSteps, error) {
	key := cache.Key(resLLM, "next-steps", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.NextSteps, error) {
		return q.api.NextSteps(ctx, decisionID)
	})
}

func (q *Queries) QualityScore(ctx context.Context, decisionID int64) (*api.QualityScore, error) {
	key := cache.Key(resLLM, "quality", decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) (*api.QualityScore, error) {
		return q.api.QualityScore(ctx, decisionID)
	})
}
