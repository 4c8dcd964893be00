package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

func TestSetDecisions_ReplacesList(t *testing.T) {
	s := New()
	s.SetDecisions([]api.Decision{{ID: 1}, {ID: 2}})
	s.SetDecisions([]api.Decision{{ID: 3}})

	ds := s.Decisions()
	require.Len(t, ds, 1)
	assert.Equal(t, int64(3), ds[0].ID)
}

func TestAddDecision_Prepends(t *testing.T) {
	s := New()
	s.SetDecisions([]api.Decision{{ID: 1}})
	s.AddDecision(api.Decision{ID: 2})

	ds := s.Decisions()
	require.Len(t, ds, 2)
	assert.Equal(t, int64(2), ds[0].ID, "newest decision shows first")
	assert.Equal(t, int64(1), ds[1].ID)
}

func TestDecisions_ReturnsSnapshot(t *testing.T) {
	s := New()
	s.SetDecisions([]api.Decision{{ID: 1, Title: "a"}})

	snap := s.Decisions()
	snap[0].Title = "mutated"

	assert.Equal(t, "a", s.Decisions()[0].Title)
}

func TestSetDecisions_CopiesInput(t *testing.T) {
	s := New()
	in := []api.Decision{{ID: 1, Title: "a"}}
	s.SetDecisions(in)
	in[0].Title = "mutated"

	assert.Equal(t, "a", s.Decisions()[0].Title)
}

func TestLoadingAndErr(t *testing.T) {
	s := New()
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())

	s.SetLoading(true)
	s.SetErr("server unavailable")
	assert.True(t, s.Loading())
	assert.Equal(t, "server unavailable", s.Err())

	s.SetLoading(false)
	s.SetErr("")
	assert.False(t, s.Loading())
	assert.Empty(t, s.Err())
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			s.AddDecision(api.Decision{ID: id})
		}(int64(i))
		go func() {
			defer wg.Done()
			_ = s.Decisions()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Decisions(), 8)
}
