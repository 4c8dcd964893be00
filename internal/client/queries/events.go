package queries

import (
	"context"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/cache"
)

// Events returns a page of events across all decisions.
func (q *Queries) Events(ctx context.Context, skip, limit int) ([]api.Event, error) {
	key := cache.Key(resEvents, skip, limit)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.Event, error) {
		return q.api.ListEvents(ctx, skip, limit)
	})
}

// DecisionEvents returns one decision's event history.
func (q *Queries) DecisionEvents(ctx context.Context, decisionID int64) ([]api.Event, error) {
	key := cache.Key(resDecisionEvents, decisionID)
	return get(ctx, q.store, key, q.listStale, func(ctx context.Context) ([]api.Event, error) {
		return q.api.ListDecisionEvents(ctx, decisionID)
	})
}

// CreateEvent attaches an event to its decision and invalidates the event
// lists, the owning decision's timeline, and every aggregate built on
// events. A failed call leaves the cache untouched.
func (q *Queries) CreateEvent(ctx context.Context, req api.CreateEventRequest) (*api.Event, error) {
	e, err := q.api.CreateEvent(ctx, req)
	if err != nil {
		return nil, err
	}
	prefixes := append([]string{cache.Key(resDecisionEvents, req.DecisionID)}, eventWriteInvalidates...)
	q.store.Invalidate(prefixes...)
	return e, nil
}

// DeleteEvent removes an event. The owner is not known from the id alone,
// so every per-decision timeline is invalidated along with the aggregates.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	if err := q.api.DeleteEvent(ctx, id); err != nil {
		return err
	}
	prefixes := append([]string{resDecisionEvents}, eventWriteInvalidates...)
	q.store.Invalidate(prefixes...)
	return nil
}
