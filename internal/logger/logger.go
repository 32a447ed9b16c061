package logger

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	loggerKey contextKey = "logger"
	sendIDKey contextKey = "send_id"
)

// New creates a zerolog.Logger with the specified level and JSON output.
// If the level string is invalid, it defaults to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// WithSendID stores a per-send correlation ID in the context.
func WithSendID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sendIDKey, id)
}

// SendIDFromContext retrieves the per-send correlation ID from the context.
// Returns an empty string if not set.
func SendIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sendIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext retrieves the logger from the context. If a send ID is
// present, it is attached to the returned logger. If no logger is found
// in the context, a default info-level logger is returned.
func FromContext(ctx context.Context) zerolog.Logger {
	var log zerolog.Logger

	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		log = l
	} else {
		log = New("info")
	}

	if id := SendIDFromContext(ctx); id != "" {
		log = log.With().Str("send_id", id).Logger()
	}

	return log
}

// NewSendID generates a new UUID-based send correlation ID.
func NewSendID() string {
	return uuid.New().String()
}
