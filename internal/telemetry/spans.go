// Package telemetry wraps pkg/telemetry with the specific spans relocator
// emits around scanning and search.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/relocator/relocator"

// StartScan opens a span around a scan, recording root as its
// relocator.root attribute. The CLI opens one such span for the whole
// multi-root scan and passes the first root.
func StartScan(ctx context.Context, root string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "relocator.scan", trace.WithAttributes(
		attribute.String("relocator.root", root),
	))
}

// StartSearch opens a span around the planner's search call.
func StartSearch(ctx context.Context, rootCount, scratchCount int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "relocator.search", trace.WithAttributes(
		attribute.Int("relocator.root_count", rootCount),
		attribute.Int("relocator.scratch_count", scratchCount),
	))
}

// RecordOutcome annotates a search span with its final outcome.
func RecordOutcome(span trace.Span, outcome string, moveCount int, totalCost uint64) {
	span.SetAttributes(
		attribute.String("relocator.outcome", outcome),
		attribute.Int("relocator.move_count", moveCount),
		attribute.Int64("relocator.total_cost", int64(totalCost)),
	)
}
