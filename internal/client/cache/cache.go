// Package cache implements the keyed query cache between the UI layers and
// the API client: staleness windows, background revalidation, request
// de-duplication, stale-while-error, and prefix invalidation.
//
// Entries move through EMPTY -> FETCHING -> FRESH -> STALE ->
// FETCHING (revalidate) -> FRESH | ERROR. Reads never block on
// revalidation: a stale entry is served immediately while exactly one
// background refetch runs, no matter how many readers arrive concurrently.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/dpavlenko/dectrack/internal/logging"
)

// State is the lifecycle position of a cache entry.
type State int

const (
	StateEmpty State = iota
	StateFetching
	StateFresh
	StateStale
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFetching:
		return "fetching"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateError:
		return "error"
	}
	return "unknown"
}

// FetchFunc loads the value for one key from the remote source.
type FetchFunc func(ctx context.Context) (any, error)

// Options configure one read. StaleAfter == 0 means the entry is considered
// stale as soon as it lands, i.e. every read triggers a revalidation.
type Options struct {
	StaleAfter time.Duration
}

// Update is delivered to subscribers whenever an entry changes.
type Update struct {
	Key   string
	Value any
	Err   error
}

type entry struct {
	value      any
	hasValue   bool
	err        error
	fetchedAt  time.Time
	staleAfter time.Duration
	fetching   bool

	// remembered so invalidation can refetch without a caller present
	fetch FetchFunc
}

// Store is the cache. All exported methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	subs    map[string]map[int]chan Update
	nextSub int

	group singleflight.Group
	bg    sync.WaitGroup

	log logging.Logger

	// Retryable classifies errors worth retrying during background
	// revalidation (transport failures, typically). Nil disables retries.
	Retryable func(error) bool

	// now is a test seam for staleness checks.
	now func() time.Time
}

// New builds an empty store.
func New(log logging.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		subs:    make(map[string]map[int]chan Update),
		log:     log,
		now:     time.Now,
	}
}

// Get returns the value for key, fetching it with fetch when needed.
//
//   - no usable value yet: blocks on the fetch; concurrent callers for the
//     same key coalesce onto a single request.
//   - fresh value: returned directly, no network.
//   - stale value: returned immediately while one background revalidation
//     is triggered.
//
// A failed refresh leaves the previous value in place (stale-while-error);
// the error is only returned when there is no prior value to serve.
func (s *Store) Get(ctx context.Context, key string, opts Options, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.staleAfter = opts.StaleAfter
	e.fetch = fetch

	if !e.hasValue {
		s.mu.Unlock()
		return s.fetchShared(ctx, key, fetch)
	}

	if s.freshLocked(e) {
		v := e.value
		s.mu.Unlock()
		return v, nil
	}

	v := e.value
	s.mu.Unlock()
	s.revalidate(key)
	return v, nil
}

// Peek returns the cached value without triggering any fetch.
func (s *Store) Peek(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// State reports the lifecycle position of key.
func (s *Store) State(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	switch {
	case !ok:
		return StateEmpty
	case e.fetching:
		return StateFetching
	case e.err != nil:
		return StateError
	case !e.hasValue:
		return StateEmpty
	case s.freshLocked(e):
		return StateFresh
	}
	return StateStale
}

// Err returns the error recorded on key's last failed fetch, if any.
func (s *Store) Err(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.err
	}
	return nil
}

// Subscribe registers interest in key. Updates are delivered on the returned
// channel until the cancel function runs; a fetch in flight at cancel time
// still lands in the cache, but the canceled subscriber hears nothing more.
func (s *Store) Subscribe(key string) (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Update, 16)
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]chan Update)
	}
	s.subs[key][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set, ok := s.subs[key]; ok {
			if _, live := set[id]; live {
				delete(set, id)
				close(ch)
				if len(set) == 0 {
					delete(s.subs, key)
				}
			}
		}
	}
	return ch, cancel
}

// Invalidate marks every entry matching one of the key prefixes as stale.
// Entries with live subscribers revalidate eagerly (once per key); the rest
// revalidate lazily on their next read. Callers invoke this only after a
// mutation has succeeded.
func (s *Store) Invalidate(prefixes ...string) {
	var refetch []string

	s.mu.Lock()
	for key, e := range s.entries {
		if !matchesAny(key, prefixes) {
			continue
		}
		e.fetchedAt = time.Time{}
		if len(s.subs[key]) > 0 && e.fetch != nil {
			refetch = append(refetch, key)
		}
	}
	s.mu.Unlock()

	for _, key := range refetch {
		s.revalidate(key)
	}
}

// Evict drops an entry entirely, for keys that identify deleted resources.
func (s *Store) Evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Put stores a value directly, for mutations whose response already carries
// the fresh resource (e.g. an update returning the updated record).
func (s *Store) Put(key string, value any, opts Options) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.value = value
	e.hasValue = true
	e.err = nil
	e.fetchedAt = s.now()
	e.staleAfter = opts.StaleAfter
	s.notifyLocked(key, Update{Key: key, Value: value})
	s.mu.Unlock()
}

// Wait blocks until all background revalidations in flight have settled.
// Useful in tests and on shutdown.
func (s *Store) Wait() {
	s.bg.Wait()
}

func (s *Store) freshLocked(e *entry) bool {
	if e.staleAfter <= 0 {
		return false
	}
	return s.now().Sub(e.fetchedAt) <= e.staleAfter
}

// fetchShared runs fetch for key, coalescing concurrent callers onto one
// request via singleflight.
func (s *Store) fetchShared(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		s.setFetching(key, true)
		defer s.setFetching(key, false)

		v, err := fetch(ctx)
		s.record(key, v, err)
		return v, err
	})
	if err != nil {
		// stale-while-error: fall back to a prior value when one exists
		if prior, ok := s.Peek(key); ok {
			return prior, nil
		}
		return nil, err
	}
	return v, nil
}

// revalidate triggers at most one background refetch for key.
func (s *Store) revalidate(key string) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.fetching || e.fetch == nil {
		s.mu.Unlock()
		return
	}
	e.fetching = true
	fetch := e.fetch
	s.mu.Unlock()

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		defer s.setFetching(key, false)

		_, _, _ = s.group.Do(key, func() (any, error) {
			v, err := s.fetchWithRetry(context.Background(), fetch)
			s.record(key, v, err)
			return v, err
		})
	}()
}

// fetchWithRetry applies capped exponential backoff to errors the Retryable
// classifier accepts; anything else fails immediately.
func (s *Store) fetchWithRetry(ctx context.Context, fetch FetchFunc) (any, error) {
	if s.Retryable == nil {
		return fetch(ctx)
	}

	var v any
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var ferr error
		v, ferr = fetch(ctx)
		if ferr != nil && s.Retryable(ferr) {
			return retry.RetryableError(ferr)
		}
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// record stores a fetch outcome and notifies subscribers. A failure keeps
// the previous value visible and only records the error.
func (s *Store) record(key string, v any, err error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		// evicted while the fetch ran; drop the result
		s.mu.Unlock()
		return
	}
	if err != nil {
		e.err = err
		if s.log != nil {
			s.log.Warn(context.Background(), "cache refresh failed", "key", key, "error", err)
		}
	} else {
		e.value = v
		e.hasValue = true
		e.err = nil
		e.fetchedAt = s.now()
	}
	s.notifyLocked(key, Update{Key: key, Value: v, Err: err})
	s.mu.Unlock()
}

func (s *Store) setFetching(key string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.fetching = v
	}
}

// notifyLocked delivers without blocking; a subscriber that stopped draining
// its channel loses updates rather than stalling the cache. Caller holds s.mu,
// which also serializes delivery against channel close in Subscribe's cancel.
func (s *Store) notifyLocked(key string, u Update) {
	for _, ch := range s.subs[key] {
		select {
		case ch <- u:
		default:
		}
	}
}
