// Package session owns the authentication state of the client: the access
// token handed to the API layer, the signed-in user's profile, and the copy
// of the token persisted locally so a restart can restore the session.
//
// The store is the only writer of the token holder. Everything else reads
// the token through the api.TokenSource interface.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dpavlenko/dectrack/internal/client/api"
	"github.com/dpavlenko/dectrack/internal/client/repositories/metadata"
	"github.com/dpavlenko/dectrack/internal/logging"
)

// ErrNoSession is returned by Restore when no usable persisted session
// exists (never signed in, signed out, or the saved token already expired).
var ErrNoSession = errors.New("no saved session")

// Metadata keys for the persisted session.
const (
	keyToken = "auth_token"
	keyEmail = "auth_email"
)

// Store tracks who is signed in. All methods are safe for concurrent use;
// state transitions are serialized so a login racing a logout cannot
// interleave half of each.
type Store struct {
	api    api.Client
	meta   metadata.Repository
	tokens *TokenHolder
	log    logging.Logger

	mu   sync.Mutex
	user *api.User

	// test seam for the expiry check
	now func() time.Time
}

func NewStore(client api.Client, meta metadata.Repository, tokens *TokenHolder, log logging.Logger) *Store {
	return &Store{
		api:    client,
		meta:   meta,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Tokens exposes the holder for wiring into the API client.
func (s *Store) Tokens() *TokenHolder { return s.tokens }

// User returns the signed-in user's profile, or nil when signed out.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether a user is currently signed in.
func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Login exchanges credentials for a token, persists it, and loads the user
// profile. A failed exchange leaves the store exactly as it was: no token,
// nothing persisted.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, email, tok.AccessToken)
}

// Signup registers a new account. The server issues a token right away, so
// a successful signup signs the user in like Login does. Accounts awaiting
// admin approval get a token but the profile fetch reports their status.
func (s *Store) Signup(ctx context.Context, email, username, password string) (*api.User, error) {
	tok, err := s.api.Signup(ctx, email, username, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, email, tok.AccessToken)
}

// Logout discards the in-memory session and the persisted copy. Calling it
// while already signed out is a no-op. Both saved keys go in one atomic
// delete, so a half-signed-out state cannot be left behind.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.tokens.Clear()
	s.mu.Unlock()

	if err := s.meta.Delete(ctx, keyToken, keyEmail); err != nil {
		return fmt.Errorf("failed to drop saved session: %w", err)
	}
	return nil
}

// Restore brings back a persisted session on startup. A token whose exp
// claim has already passed is dropped without a network round trip; an
// unexpired token is installed and validated against the server. The server
// rejecting the token is the one case that clears the persisted copy.
func (s *Store) Restore(ctx context.Context) (*api.User, error) {
	raw, err := s.meta.Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved session: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoSession
	}

	if expired(string(raw), s.now()) {
		_ = s.meta.Delete(ctx, keyToken, keyEmail)
		return nil, ErrNoSession
	}

	s.tokens.Set(string(raw))
	u, err := s.fetchCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// RefreshUser re-fetches the signed-in user's profile (status may change
// server-side, e.g. admin approval).
func (s *Store) RefreshUser(ctx context.Context) (*api.User, error) {
	return s.fetchCurrentUser(ctx)
}

// establish installs a freshly issued token: holder first, then the
// persisted copy, then the profile fetch.
func (s *Store) establish(ctx context.Context, email, token string) (*api.User, error) {
	s.tokens.Set(token)

	if err := s.meta.Set(ctx, keyToken, []byte(token)); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.meta.Set(ctx, keyEmail, []byte(email)); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return s.fetchCurrentUser(ctx)
}

// fetchCurrentUser asks the server who the token belongs to. A 401 means
// the token is dead: the session is torn down here and nowhere else.
func (s *Store) fetchCurrentUser(ctx context.Context) (*api.User, error) {
	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if s.log != nil {
				s.log.Info(ctx, "saved session rejected by server, signing out")
			}
			if lerr := s.Logout(ctx); lerr != nil && s.log != nil {
				s.log.Warn(ctx, "failed to clear rejected session", "error", lerr)
			}
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return u, nil
}

// expired checks the token's exp claim without verifying the signature; the
// server remains the authority, this only skips a doomed round trip. Tokens
// that do not parse or carry no exp are left for the server to judge.
func expired(raw string, now time.Time) bool {
	tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
