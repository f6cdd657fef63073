// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers are chosen by APP_ENV: JSON on stdout in production, human-readable
// text in development. When MONGO_LOG_URI is configured, records are also
// shipped asynchronously to MongoDB (see mongo_handler.go).
//
// The per-request pattern: middleware.Logger stores a request-scoped logger
// (pre-tagged with the request ID) in the context, and WithCtx retrieves it:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_number", ord.OrderNumber)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/stockroomhq/stockroom/config"
)

var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// EnableMongo tees log records into MongoDB. Called at server boot when
// MONGO_LOG_URI is set; returns the handler so the caller can Close it on
// shutdown.
func EnableMongo(uri, db, collection string) (*MongoHandler, error) {
	mh, err := NewMongoHandler(L.Handler(), uri, db, collection)
	if err != nil {
		return nil, err
	}
	L = slog.New(mh)
	slog.SetDefault(L)
	return mh, nil
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a *slog.Logger (pre-tagged with request attributes) into ctx.
// Called by the Logger middleware; application code rarely needs it.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
