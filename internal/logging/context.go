package logging

import (
	"context"
	"log/slog"

	"lyricsync/internal/services"
)

// contextKeys maps the identifiers carried on a context to their log keys.
var contextKeys = []struct {
	key     string
	extract func(context.Context) (string, bool)
}{
	{FieldRunID, services.RunIDFromContext},
	{FieldStage, services.StageFromContext},
	{FieldCorrelationID, services.RequestIDFromContext},
}

// WithContext returns logger tagged with the run ID, stage and request
// correlation ID found on ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	for _, ck := range contextKeys {
		if value, ok := ck.extract(ctx); ok {
			args = append(args, slog.String(ck.key, value))
		}
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
