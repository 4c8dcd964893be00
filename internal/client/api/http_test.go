package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken implements TokenSource with a fixed value.
type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})

	c := NewHTTPClient(srv.URL, staticToken("tok-123"))
	h, err := c.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "connected", h.Database)
}

func TestHTTPClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})

	c := NewHTTPClient(srv.URL, staticToken(""))
	_, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantIs     error
		wantDetail string
	}{
		{"not found", http.StatusNotFound, `{"detail":"Decision not found"}`, ErrNotFound, "Decision not found"},
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Invalid token"}`, ErrUnauthorized, "Invalid token"},
		{"forbidden", http.StatusForbidden, `{"detail":"Admin only"}`, ErrUnauthorized, "Admin only"},
		{"plain 500", http.StatusInternalServerError, `boom`, nil, ""},
		{"structured detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","title"]}]}`, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			c := NewHTTPClient(srv.URL, nil)
			_, err := c.GetDecision(context.Background(), 1)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.wantDetail, apiErr.Message)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
		})
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(srv.URL, nil)
	_, err := c.Health(context.Background())
	require.Error(t, err)

	var te *TransportError
	assert.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_MalformedBodyIsTransportError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "not-a-number"`))
	})

	c := NewHTTPClient(srv.URL, nil)
	_, err := c.GetDecision(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateDecision_Success(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/decisions", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ship v2", body["title"])
		_, hasDescription := body["description"]
		require.False(t, hasDescription, "nil description must be omitted")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": 42, "title": "Ship v2", "description": null, "context": null,
			"created_at": "2025-06-01T10:00:00", "updated_at": "2025-06-01T10:00:00",
			"is_active": true
		}`))
	})

	c := NewHTTPClient(srv.URL, staticToken("tok"))
	d, err := c.CreateDecision(context.Background(), CreateDecisionRequest{Title: "Ship v2"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), d.ID)
	assert.Equal(t, "Ship v2", d.Title)
	assert.Nil(t, d.Description)
	assert.True(t, d.IsActive)
	assert.Equal(t, 2025, d.CreatedAt.Year())
}

func TestCreateDecision_ValidationBeforeSend(t *testing.T) {
	called := false
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	c := NewHTTPClient(srv.URL, nil)

	_, err := c.CreateDecision(context.Background(), CreateDecisionRequest{Title: ""})
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.False(t, called, "invalid payload must not reach the wire")
}

func TestListDecisions_PaginationDefaults(t *testing.T) {
	var gotSkip, gotLimit string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotSkip = r.URL.Query().Get("skip")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	})

	c := NewHTTPClient(srv.URL, nil)
	decisions, err := c.ListDecisions(context.Background(), -5, 0)
	require.NoError(t, err)

	assert.Empty(t, decisions)
	assert.Equal(t, "0", gotSkip)
	assert.Equal(t, "10", gotLimit)
}

func TestCreateEvent_MissingDecision(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Decision not found"}`))
	})

	c := NewHTTPClient(srv.URL, staticToken("tok"))
	desc := "sign-off"
	_, err := c.CreateEvent(context.Background(), CreateEventRequest{
		DecisionID:  5,
		EventType:   EventApproved,
		Description: &desc,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateEvent_RejectsUnknownType(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:0", nil)
	_, err := c.CreateEvent(context.Background(), CreateEventRequest{
		DecisionID: 1,
		EventType:  EventType("celebrated"),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDeleteDecision_PurgeFlag(t *testing.T) {
	var gotHard string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotHard = r.URL.Query().Get("hard")
		w.WriteHeader(http.StatusNoContent)
	})

	c := NewHTTPClient(srv.URL, staticToken("tok"))
	require.NoError(t, c.DeleteDecision(context.Background(), 3, false))
	assert.Empty(t, gotHard)

	require.NoError(t, c.DeleteDecision(context.Background(), 3, true))
	assert.Equal(t, "true", gotHard)
}

func TestErrorIsAcrossWrapping(t *testing.T) {
	err := error(&APIError{Status: 404, Message: "gone"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}
