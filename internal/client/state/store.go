// Package state holds transient UI state that is not derived from the query
// cache: the working decision list plus a loading flag and a display error.
// Values are read as snapshots; writers replace whole fields.
package state

import (
	"sync"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

// Store is a small mutable bag of view state, safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	decisions []api.Decision
	loading   bool
	err       string
}

func New() *Store {
	return &Store{}
}

// Decisions returns a copy of the working list; mutating it does not affect
// the store.
func (s *Store) Decisions() []api.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Decision, len(s.decisions))
	copy(out, s.decisions)
	return out
}

// SetDecisions replaces the working list.
func (s *Store) SetDecisions(ds []api.Decision) {
	cp := make([]api.Decision, len(ds))
	copy(cp, ds)
	s.mu.Lock()
	s.decisions = cp
	s.mu.Unlock()
}

// AddDecision prepends a newly created decision so it shows first, matching
// the server's newest-first ordering.
func (s *Store) AddDecision(d api.Decision) {
	s.mu.Lock()
	s.decisions = append([]api.Decision{d}, s.decisions...)
	s.mu.Unlock()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Err returns the current display error, "" when clear.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetErr records an error message for display; "" clears it.
func (s *Store) SetErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
