// Package tracing carries W3C trace context across process boundaries: an
// HTTP request's span context is stored alongside its outbox row, and the
// dispatcher replays it as a Kafka header.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const TraceparentHeader = "traceparent"

// Setup installs the W3C trace-context propagator. Call once at startup;
// without it Inject produces no headers.
func Setup() {
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

// Traceparent renders the current span context as a traceparent header value,
// or "" when no span is active.
func Traceparent(ctx context.Context) string {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier[TraceparentHeader]
}
