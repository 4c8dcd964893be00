package queries

import (
	"context"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/cache"
)

// Decisions returns a page of decisions, cached for the list window.
func (q *Queries) Decisions(ctx context.Context, skip, limit int) ([]api.Decision, error) {
	key := cache.Key(resDecisions, skip, limit)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.Decision, error) {
		return q.api.ListDecisions(ctx, skip, limit)
	})
}

// Decision returns one decision. Detail reads carry no staleness window:
// the cached value is served but revalidated on every access.
func (q *Queries) Decision(ctx context.Context, id int64) (*api.Decision, error) {
	key := cache.Key(resDecision, id)
	return get(ctx, q.store, key, 0, func(ctx context.Context) (*api.Decision, error) {
		return q.api.GetDecision(ctx, id)
	})
}

// CreateDecision records a new decision, then invalidates the list and
// aggregate keys. Nothing is invalidated when the call fails.
func (q *Queries) CreateDecision(ctx context.Context, req api.CreateDecisionRequest) (*api.Decision, error) {
	d, err := q.api.CreateDecision(ctx, req)
	if err != nil {
		return nil, err
	}
	q.store.Invalidate(decisionWriteInvalidates...)
	return d, nil
}

// UpdateDecision applies a partial update. The response already carries the
// fresh record, so the detail entry is replaced in place; list and
// aggregate keys are invalidated as usual.
func (q *Queries) UpdateDecision(ctx context.Context, id int64, req api.UpdateDecisionRequest) (*api.Decision, error) {
	d, err := q.api.UpdateDecision(ctx, id, req)
	if err != nil {
		return nil, err
	}
	q.store.Put(cache.Key(resDecision, id), d, cache.Options{})
	q.store.Invalidate(decisionWriteInvalidates...)
	return d, nil
}

// DeleteDecision removes a decision, evicts its detail and timeline keys,
// and invalidates everything that aggregates over decisions.
func (q *Queries) DeleteDecision(ctx context.Context, id int64, purge bool) error {
	if err := q.api.DeleteDecision(ctx, id, purge); err != nil {
		return err
	}
	q.store.Evict(cache.Key(resDecision, id))
	q.store.Evict(cache.Key(resDecisionEvents, id))
	q.store.Invalidate(decisionDeleteInvalidates...)
	return nil
}
