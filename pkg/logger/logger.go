package logger

import (
	"context"
	"log/slog"
	"os"
)

// New builds the process logger. Local and dev environments get a human
// readable text handler at debug level; staging and production emit JSON
// at info so log shippers can parse every line.
func New(appEnv string) *slog.Logger {
	var h slog.Handler
	switch appEnv {
	case "local", "dev":
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(h).With("service", "fintrack-api")
}

type ctxKey struct{}

// With attaches a logger to the context. Request middleware uses this to
// carry the request-scoped logger down into services.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger carried by ctx, or slog.Default() when none is.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
