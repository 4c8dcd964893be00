package session

import (
	"sync/atomic"

	"github.com/dpavlenko/dectrack/internal/client/api"
)

// TokenHolder is the shared access-token cell. The API client reads it on
// every request; only the session store writes it. Reads and writes are
// atomic swaps of the whole value, so readers never observe a partial token.
type TokenHolder struct {
	v atomic.Value
}

func NewTokenHolder() *TokenHolder {
	h := &TokenHolder{}
	h.v.Store("")
	return h
}

// AccessToken returns the current token, or "" when signed out.
func (h *TokenHolder) AccessToken() string {
	return h.v.Load().(string)
}

func (h *TokenHolder) Set(token string) {
	h.v.Store(token)
}

func (h *TokenHolder) Clear() {
	h.v.Store("")
}

var _ api.TokenSource = (*TokenHolder)(nil)
