package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug, // so Debug lines are captured too
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_LevelsAndAttributes(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "cache miss", "key", "decisions")
	log.Info(ctx, "session restored", "email", "u@example.com")
	log.Warn(ctx, "refetch failed", "attempt", 2)
	log.Error(ctx, "request failed", "status", 503)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=\"cache miss\"")
	assert.Contains(t, out, "key=decisions")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "email=u@example.com")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "attempt=2")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=503")
}

func TestSlogLogger_With_CarriesPairsOnEveryLine(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	child := log.With("component", "cache")
	child.Info(ctx, "entry refreshed", "key", "analytics")
	child.Warn(ctx, "entry stale", "key", "graph")

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("component=cache")), "every line from the child carries the pair:\n%s", out)
	assert.Contains(t, out, "key=analytics")
	assert.Contains(t, out, "key=graph")
}

func TestSlogLogger_AnyContext(t *testing.T) {
	log, _ := newTestLogger(t)

	ctx := context.TODO()
	log.Debug(ctx, "ok")
	log.Info(ctx, "ok")
	log.Warn(ctx, "ok")
	log.Error(ctx, "ok")
}
