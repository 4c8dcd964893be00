// Package metadata persists the client's small key/value state, the session
// token and the last signed-in account, in the local sqlite database so a
// restart can restore the session.
package metadata

import (
	"context"
)

// Repository is the narrow store the session layer needs. Get returns
// (nil, nil) when the key is absent. Delete removes every named key in one
// transaction, so a signed-out session never loses its token while keeping
// its email; deleting absent keys is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
