// Package logging holds the small logging interface the client codebase
// writes to. The one production implementation wraps log/slog; tests that
// want to assert on log output swap in whatever they need.
package logging

import "context"

// Logger is a leveled, context-aware logger. The variadic args are
// alternating key-value pairs, as in:
//
//	log.Info(ctx, "session restored", "email", email)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given pairs on every line.
	With(args ...any) Logger
}
