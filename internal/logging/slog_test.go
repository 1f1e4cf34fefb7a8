package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewJSONLogger(&buf, "debug"), &buf
}

// records decodes one JSON object per logged line.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "vote created", "vote_id", "v1")
	log.Info(ctx, "vote activated", "vote_id", "v1")
	log.Warn(ctx, "notification failed", "request_id", "r1")
	log.Error(ctx, "transfer failed", "vnt_id", "VNT-1")

	got := records(t, buf)
	require.Len(t, got, 4)

	want := []struct{ level, msg, key, val string }{
		{"DEBUG", "vote created", "vote_id", "v1"},
		{"INFO", "vote activated", "vote_id", "v1"},
		{"WARN", "notification failed", "request_id", "r1"},
		{"ERROR", "transfer failed", "vnt_id", "VNT-1"},
	}
	for i, w := range want {
		assert.Equal(t, w.level, got[i]["level"])
		assert.Equal(t, w.msg, got[i]["msg"])
		assert.Equal(t, w.val, got[i][w.key])
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "ledger").Info(context.Background(), "transfer", "amount", "12.50")

	got := records(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "ledger", got[0]["module"])
	assert.Equal(t, "12.50", got[0]["amount"])
}

func TestContextWith_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	ctx := ContextWith(context.Background(), "rpc", "Transfer")
	ctx = ContextWith(ctx, "user", "ann@example.com")
	log.With("module", "ledger").Info(ctx, "transfer")
	log.Info(context.Background(), "no request")

	got := records(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "Transfer", got[0]["rpc"])
	assert.Equal(t, "ann@example.com", got[0]["user"])
	assert.Equal(t, "ledger", got[0]["module"])
	assert.NotContains(t, got[1], "rpc")
}

func TestContextWith_DoesNotLeakIntoParent(t *testing.T) {
	parent := ContextWith(context.Background(), "rpc", "Transfer")
	child := ContextWith(parent, "user", "ann@example.com")

	assert.Equal(t, []any{"rpc", "Transfer"}, contextAttrs(parent))
	assert.Equal(t, []any{"rpc", "Transfer", "user", "ann@example.com"}, contextAttrs(child))
	assert.Equal(t, parent, ContextWith(parent))
}

func TestNewSlogLogger_WrapsOnce(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	l := NewSlogLogger(base)
	again := NewSlogLogger(l.l)

	_, ok := again.l.Handler().(contextHandler)
	require.True(t, ok)
	_, nested := again.l.Handler().(contextHandler).Handler.(contextHandler)
	assert.False(t, nested)

	l.Info(ContextWith(context.Background(), "k", "v"), "text")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNewJSONLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "warn")
	ctx := context.Background()

	log.Info(ctx, "hidden")
	log.Warn(ctx, "shown", "vote_id", "v1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"vote_id":"v1"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	l.With("k", "v").Error(context.Background(), "ignored")
}
