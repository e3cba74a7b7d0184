package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/voicedex/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (r *recorder) beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func testHub(t *testing.T) (*sentry.Hub, *recorder) {
	t.Helper()
	rec := &recorder{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:        "https://public@sentry.example.com/1",
		BeforeSend: rec.beforeSend,
	})
	require.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), rec
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Level: "info", Format: "json"}, nil)
	logger.Info("catalog loaded", "chords", 3)

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "catalog loaded", m["msg"])
	assert.Equal(t, float64(3), m["chords"])
}

func TestNew_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Level: "warn", Format: "text"}, nil)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "source=")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestErrorsGoToSentry(t *testing.T) {
	hub, rec := testHub(t)
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Level: "debug", Format: "json"}, hub).With("request_id", "abc")

	logger.Warn("not reported")
	logger.Error("reload failed", "error", errors.New("bad alias"), "path", "My.voc")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	require.NotEmpty(t, ev.Exception)
	assert.Equal(t, "bad alias", ev.Exception[0].Value)
	assert.Equal(t, "abc", ev.Tags["request_id"])
	assert.Equal(t, "My.voc", ev.Contexts["log"]["path"])
}

func TestNoClientNoCapture(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Format: "json"}, sentry.NewHub(nil, sentry.NewScope()))
	assert.NotPanics(t, func() { logger.Error("boom") })
	assert.Contains(t, buf.String(), "boom")
}

func TestInitSentryWithoutDSN(t *testing.T) {
	flush, err := InitSentry(config.SentryConfig{}, "dev")
	require.NoError(t, err)
	assert.NotPanics(t, flush)
}
