// Package queries binds the resource-access functions to cache keys. Reads
// declare their key and staleness window; mutations declare the set of key
// prefixes they invalidate on success. The dependency graph between
// mutations and reads lives entirely in the tables here, never inferred.
package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/cache"
)

// Resource name prefixes used to build cache keys.
const (
	resDecisions      = "decisions"
	resDecision       = "decision"
	resEvents         = "events"
	resDecisionEvents = "decision-events"
	resGraph          = "graph"
	resAnalytics      = "analytics"
	resLLM            = "llm"
)

// Invalidation tables: which key prefixes each mutation dirties. Creating or
// deleting an event changes the owning decision's timeline, every aggregate,
// the graph projection, and any LLM narrative built from the timeline.
var (
	decisionWriteInvalidates  = []string{resDecisions, resAnalytics, resGraph}
	decisionDeleteInvalidates = []string{resDecisions, resAnalytics, resGraph, resLLM}
	eventWriteInvalidates     = []string{resEvents, resAnalytics, resGraph, resLLM}
)

// DefaultListStaleness is how long list and view results stay fresh.
// Detail reads have no window: they revalidate on every access.
const DefaultListStaleness = 2 * time.Minute

// Queries is the cached facade over the API client.
type Queries struct {
	api   api.Client
	store *cache.Store

	listStale time.Duration
}

// New wires the facade. listStale <= 0 selects DefaultListStaleness. The
// store's retry classifier is pointed at transport failures so background
// revalidation retries outages but not server-reported errors.
func New(client api.Client, store *cache.Store, listStale time.Duration) *Queries {
	if listStale <= 0 {
		listStale = DefaultListStaleness
	}
	store.Retryable = func(err error) bool {
		return errors.Is(err, api.ErrUnavailable)
	}
	return &Queries{api: client, store: store, listStale: listStale}
}

// Store exposes the underlying cache for subscription management.
func (q *Queries) Store() *cache.Store { return q.store }

// InvalidateAll marks every cached resource stale, forcing a refetch on the
// next read (or immediately, for subscribed keys).
func (q *Queries) InvalidateAll() {
	q.store.Invalidate(resDecisions, resDecision, resEvents, resDecisionEvents, resGraph, resAnalytics, resLLM)
}

// get funnels a typed fetch through the cache.
func get[T any](ctx context.Context, s *cache.Store, key string, staleAfter time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	v, err := s.Get(ctx, key, cache.Options{StaleAfter: staleAfter}, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, v, zero)
	}
	return out, nil
}
