package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(nil)
}

// setNow pins the store clock to a controllable value.
func setNow(s *Store, at *time.Time, mu *sync.Mutex) {
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return *at
	}
}

func TestGet_EmptyFetchesOnce(t *testing.T) {
	s := newTestStore(t)
	var calls atomic.Int32

	v, err := s.Get(context.Background(), Key("decisions", 0, 10), Options{StaleAfter: time.Minute},
		func(ctx context.Context) (any, error) {
			calls.Add(1)
			return "page-1", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "page-1", v)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateFresh, s.State(Key("decisions", 0, 10)))
}

func TestGet_ConcurrentCallersShareOneRequest(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	var (
		calls    atomic.Int32
		inflight atomic.Int32
		maxSeen  atomic.Int32
	)
	gate := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			prev := maxSeen.Load()
			if n <= prev || maxSeen.CompareAndSwap(prev, n) {
				break
			}
		}
		<-gate
		return "shared", nil
	}

	const readers = 25
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Get(context.Background(), key, Options{StaleAfter: time.Minute}, fetch)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond) // let readers pile up on the gate
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load(), "at most one request in flight per key")
	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestGet_StalenessWindow(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	var nowMu sync.Mutex
	setNow(s, &now, &nowMu)

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}
	opts := Options{StaleAfter: 2 * time.Minute}

	_, err := s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())

	// +1min: fresh, served from cache, no refetch
	nowMu.Lock()
	now = t0.Add(time.Minute)
	nowMu.Unlock()
	v, err := s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, StateFresh, s.State(key))
	assert.Equal(t, int32(1), calls.Load())

	// +3min: stale, cached value served immediately, one background refetch
	nowMu.Lock()
	now = t0.Add(3 * time.Minute)
	nowMu.Unlock()
	assert.Equal(t, StateStale, s.State(key))
	v, err = s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "stale read must not block on revalidation")

	s.Wait()
	assert.Equal(t, int32(2), calls.Load())
	v, _ = s.Peek(key)
	assert.Equal(t, 2, v)
}

func TestGet_StaleReadersTriggerOneRevalidation(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	var nowMu sync.Mutex
	setNow(s, &now, &nowMu)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) > 1 {
			<-release // hold the revalidation open while readers arrive
		}
		return "v", nil
	}
	opts := Options{StaleAfter: 2 * time.Minute}

	_, err := s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)

	nowMu.Lock()
	now = t0.Add(3 * time.Minute)
	nowMu.Unlock()

	const readers = 10
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.Get(context.Background(), key, opts, fetch)
			require.NoError(t, err)
			require.Equal(t, "v", v)
		}()
	}
	wg.Wait()
	close(release)
	s.Wait()

	assert.Equal(t, int32(2), calls.Load(), "one initial fetch plus exactly one revalidation")
}

func TestGet_StaleWhileError(t *testing.T) {
	s := newTestStore(t)
	key := Key("decision", 7)

	var calls atomic.Int32
	boom := errors.New("connection refused")
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "good", nil
		}
		return nil, boom
	}

	// StaleAfter 0: always revalidate on read
	v, err := s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "good", v)

	v, err = s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "good", v, "prior value stays visible while refresh fails")

	s.Wait()
	assert.Equal(t, StateError, s.State(key))
	assert.ErrorIs(t, s.Err(key), boom)

	v, ok := s.Peek(key)
	require.True(t, ok)
	assert.Equal(t, "good", v)
}

func TestGet_ErrorWithoutPriorValue(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	_, err := s.Get(context.Background(), "decisions", Options{}, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateError, s.State("decisions"))
}

func TestInvalidate_SubscribedKeyRefetchesOnce(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}
	opts := Options{StaleAfter: time.Hour}

	_, err := s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)

	updates, cancel := s.Subscribe(key)
	defer cancel()

	s.Invalidate("decisions")
	s.Wait()

	assert.Equal(t, int32(2), calls.Load(), "eager refetch for the subscribed key, exactly once")

	select {
	case u := <-updates:
		assert.Equal(t, 2, u.Value)
		require.NoError(t, u.Err)
	default:
		t.Fatal("subscriber did not observe the refetched value")
	}
}

func TestInvalidate_UnsubscribedKeyIsLazy(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}
	opts := Options{StaleAfter: time.Hour}

	_, err := s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)

	s.Invalidate("decisions")
	s.Wait()
	assert.Equal(t, int32(1), calls.Load(), "no subscriber, no eager refetch")
	assert.Equal(t, StateStale, s.State(key))

	// next read revalidates
	_, err = s.Get(context.Background(), key, opts, fetch)
	require.NoError(t, err)
	s.Wait()
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_PrefixDoesNotCrossResources(t *testing.T) {
	s := newTestStore(t)
	opts := Options{StaleAfter: time.Hour}
	noop := func(ctx context.Context) (any, error) { return "x", nil }

	_, _ = s.Get(context.Background(), "decisions/0/10", opts, noop)
	_, _ = s.Get(context.Background(), "decisions-archive", opts, noop)

	s.Invalidate("decisions")

	assert.Equal(t, StateStale, s.State("decisions/0/10"))
	assert.Equal(t, StateFresh, s.State("decisions-archive"))
}

func TestEvict(t *testing.T) {
	s := newTestStore(t)
	key := Key("decision", 3)

	_, err := s.Get(context.Background(), key, Options{StaleAfter: time.Hour},
		func(ctx context.Context) (any, error) { return "x", nil })
	require.NoError(t, err)

	s.Evict(key)
	assert.Equal(t, StateEmpty, s.State(key))
	_, ok := s.Peek(key)
	assert.False(t, ok)
}

func TestUnsubscribe_ResultStillCached(t *testing.T) {
	s := newTestStore(t)
	key := Key("decisions", 0, 10)

	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "late", nil
	}

	updates, cancel := s.Subscribe(key)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Get(context.Background(), key, Options{StaleAfter: time.Hour}, fetch)
	}()

	<-started
	cancel() // unsubscribe while the fetch is still in flight
	close(release)
	<-done

	v, ok := s.Peek(key)
	require.True(t, ok, "fetch in flight at unsubscribe time still lands in the cache")
	assert.Equal(t, "late", v)

	_, open := <-updates
	assert.False(t, open, "canceled subscriber hears nothing more")
}

func TestRevalidation_RetriesTransportErrors(t *testing.T) {
	s := newTestStore(t)
	transient := errors.New("server unavailable")
	s.Retryable = func(err error) bool { return errors.Is(err, transient) }

	key := Key("decisions", 0, 10)
	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		switch calls.Add(1) {
		case 2:
			return nil, transient // first revalidation attempt
		default:
			return "ok", nil
		}
	}

	_, err := s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)
	s.Wait()

	assert.GreaterOrEqual(t, calls.Load(), int32(3), "transient failure retried in the background")
	assert.Equal(t, StateFresh, s.State(key))
}

func TestRevalidation_DoesNotRetryServerErrors(t *testing.T) {
	s := newTestStore(t)
	s.Retryable = func(err error) bool { return false }

	key := Key("decisions", 0, 10)
	var calls atomic.Int32
	boom := errors.New("server error 500")
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return "ok", nil
		}
		return nil, boom
	}

	_, err := s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), key, Options{}, fetch)
	require.NoError(t, err)
	s.Wait()

	assert.Equal(t, int32(2), calls.Load())
	assert.ErrorIs(t, s.Err(key), boom)
}

func TestKeyAndPrefixes(t *testing.T) {
	assert.Equal(t, "decisions", Key("decisions"))
	assert.Equal(t, "decisions/0/10", Key("decisions", 0, 10))
	assert.Equal(t, "decision-events/5", Key("decision-events", int64(5)))

	assert.True(t, matchesAny("decisions/0/10", []string{"decisions"}))
	assert.True(t, matchesAny("decisions", []string{"decisions"}))
	assert.False(t, matchesAny("decisions-archive", []string{"decisions"}))
	assert.False(t, matchesAny("events", []string{"decisions"}))
}
