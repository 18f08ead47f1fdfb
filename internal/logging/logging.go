package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger hands out component loggers that share one level.
type Logger struct {
	levelVar *slog.LevelVar
	handler  slog.Handler
}

// New builds the process logger. Production environments log JSON, everything
// else logs text.
func New(env, level string) *Logger {
	return NewWithWriter(os.Stdout, env, level)
}

func NewWithWriter(w io.Writer, env, level string) *Logger {
	levelVar := &slog.LevelVar{}
	levelVar.Set(ParseLevel(level))

	opts := &slog.HandlerOptions{Level: levelVar}
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{levelVar: levelVar, handler: handler}
}

func (l *Logger) SetLevel(level slog.Level) {
	l.levelVar.Set(level)
}

// Component returns a logger tagged with the given component name.
func (l *Logger) Component(name string) *slog.Logger {
	return slog.New(l.handler).With("component", name)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type requestIDKey struct{}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id from ctx.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

type adminKey struct{}

// WithAdmin records which admin session is making the request.
func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey{}, subject)
}

// FromContext decorates base with the request id carried by ctx and the
// operation being performed. Requests made by an admin session also carry
// the admin name.
func FromContext(ctx context.Context, base *slog.Logger, operation string) *slog.Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	log := base.With("request_id", requestID, "operation", operation)
	if admin, ok := ctx.Value(adminKey{}).(string); ok && admin != "" {
		log = log.With("admin", admin)
	}
	return log
}

// Discard is a logger that drops everything, handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
