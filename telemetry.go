package betterwpdb

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/pgroot91/better-wpdb"
	instrumentationVersion = "v0.1.0"
)

// QueryInfo is the immutable per-statement record handed to the sink:
// execution timing, SQL text, and the ordered binding values as supplied
// by the caller. Records are created per execution and never retained by
// this package.
type QueryInfo struct {
	StartedAt  time.Time
	FinishedAt time.Time
	SQL        string
	Bindings   []any
}

// Duration is the wall time spent in the statement's execute step.
func (q QueryInfo) Duration() time.Duration { return q.FinishedAt.Sub(q.StartedAt) }

// QueryLogger receives one QueryInfo per executed statement.
type QueryLogger interface {
	Record(ctx context.Context, info QueryInfo)
}

// NopLogger returns the default sink, which discards every record.
func NopLogger() QueryLogger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Record(context.Context, QueryInfo) {}

var tracer = otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))

// OTelQueryLogger emits one OpenTelemetry span per executed statement,
// using the statement's real start and end timestamps.
type OTelQueryLogger struct{}

func (OTelQueryLogger) Record(ctx context.Context, info QueryInfo) {
	_, span := tracer.Start(ctx, "betterwpdb.query",
		trace.WithTimestamp(info.StartedAt),
		trace.WithAttributes(
			attribute.String("db.system", "mysql"),
			attribute.String("db.statement", info.SQL),
			attribute.Int("db.binding_count", len(info.Bindings)),
		),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(info.FinishedAt))
}
