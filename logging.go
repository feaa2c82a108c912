package betterwpdb

import (
	"context"
	"log/slog"
	"os"
)

var defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SlogQueryLogger logs every executed statement through a *slog.Logger
// with structured fields. Binding values are not logged, only their
// count; statements regularly carry sensitive data.
type SlogQueryLogger struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogQueryLogger wraps logger; nil selects a JSON logger on stdout.
func NewSlogQueryLogger(logger *slog.Logger) *SlogQueryLogger {
	if logger == nil {
		logger = defaultLogger
	}
	return &SlogQueryLogger{Logger: logger, Level: slog.LevelInfo}
}

func (l *SlogQueryLogger) Record(ctx context.Context, info QueryInfo) {
	attrs := []slog.Attr{
		slog.String("query", info.SQL),
		slog.Float64("duration_ms", float64(info.Duration().Nanoseconds())/1e6),
	}
	if len(info.Bindings) > 0 {
		attrs = append(attrs, slog.Int("binding_count", len(info.Bindings)))
	}
	l.Logger.LogAttrs(ctx, l.Level, "database query executed", attrs...)
}
