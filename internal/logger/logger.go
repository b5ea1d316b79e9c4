package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	ownerIDKey   contextKey = "owner_id"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Init installs the process-wide slog logger writing to stdout.
func Init(cfg Config, loc *time.Location) {
	slog.SetDefault(New(os.Stdout, cfg, loc))
}

// New builds a logger for w. Timestamps are rendered in loc.
func New(w io.Writer, cfg Config, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch s {
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

// WithRequestID stores the request id for later log calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithOwnerID stores the authenticated owner id for later log calls.
func WithOwnerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ownerIDKey, id)
}

// WithContext returns the default logger enriched with request-scoped values.
func WithContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if ctx == nil {
		return l
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		l = l.With("request_id", v)
	}
	if v, ok := ctx.Value(ownerIDKey).(string); ok && v != "" {
		l = l.With("owner_id", v)
	}
	return l
}

func Debug(ctx context.Context, msg string, args ...any) { WithContext(ctx).Debug(msg, args...) }
func Info(ctx context.Context, msg string, args ...any)  { WithContext(ctx).Info(msg, args...) }
func Warn(ctx context.Context, msg string, args ...any)  { WithContext(ctx).Warn(msg, args...) }
func Error(ctx context.Context, msg string, args ...any) { WithContext(ctx).Error(msg, args...) }
