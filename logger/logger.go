// Package logger builds the process logger. Records at error level and
// above are also reported to Sentry once InitSentry has configured a client.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jsphweid/voicedex/config"
)

const flushTimeout = 2 * time.Second

// NewLogger creates a *slog.Logger writing to os.Stderr and sets it as the
// default logger.
//
// Format "json" produces structured JSON output.
// Format "text" produces human-readable output with source info.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := New(os.Stderr, cfg, nil)
	slog.SetDefault(logger)
	return logger
}

// New is NewLogger with an explicit writer and hub and no global side
// effects. A nil hub means the current global hub at log time.
func New(w io.Writer, cfg config.LogConfig, hub *sentry.Hub) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(&sentryHandler{next: handler, hub: hub})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitSentry configures the global Sentry client. With an empty DSN it does
// nothing. The returned func flushes buffered events and is always safe to
// call.
func InitSentry(cfg config.SentryConfig, release string) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     "voicedex@" + release,
		Debug:       cfg.Environment == "development",
	})
	if err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(flushTimeout) }, nil
}

type sentryHandler struct {
	next  slog.Handler
	hub   *sentry.Hub
	attrs []slog.Attr
}

func (h *sentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.capture(r)
	}
	return h.next.Handle(ctx, r)
}

func (h *sentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &sentryHandler{next: h.next.WithAttrs(attrs), hub: h.hub, attrs: merged}
}

func (h *sentryHandler) WithGroup(name string) slog.Handler {
	return &sentryHandler{next: h.next.WithGroup(name), hub: h.hub, attrs: h.attrs}
}

func (h *sentryHandler) capture(r slog.Record) {
	hub := h.hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	fields := sentry.Context{}
	var cause error
	collect := func(a slog.Attr) bool {
		if err, ok := a.Value.Any().(error); ok && cause == nil {
			cause = err
		}
		fields[a.Key] = a.Value.String()
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetContext("log", fields)
		if id, ok := fields["request_id"].(string); ok {
			scope.SetTag("request_id", id)
		}
		if cause == nil {
			cause = errors.New(r.Message)
		} else {
			scope.SetTag("message", r.Message)
		}
		hub.CaptureException(cause)
	})
}
