package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/reconcile"
)

// Default tracer name.
const defaultTracerName = "vtree"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vtree").
	TracerName string

	// Provider supplies the tracer. Defaults to the global provider.
	Provider trace.TracerProvider

	// Filter determines which passes to trace.
	// If nil, all passes are traced.
	Filter func(info reconcile.PassInfo) bool

	// AttributeExtractor adds custom attributes when a span starts.
	AttributeExtractor func(ctx context.Context, info reconcile.PassInfo) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithPassFilter sets a filter function for passes.
func WithPassFilter(filter func(info reconcile.PassInfo) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx context.Context, info reconcile.PassInfo) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracer is a reconcile.Observer that wraps each pass in a span.
type Tracer struct {
	config OTelConfig
	tracer trace.Tracer
}

var _ reconcile.Observer = (*Tracer)(nil)

// OpenTelemetry creates the tracing observer.
//
// Spans are named "vtree.<kind>" and carry the container handle. When the
// pass ends the span receives the match and mutation counts, and its
// status is set from the pass error.
func OpenTelemetry(opts ...OTelOption) *Tracer {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{
		config: config,
		tracer: provider.Tracer(config.TracerName),
	}
}

type spanKey struct{}

// PassStart implements reconcile.Observer.
func (t *Tracer) PassStart(ctx context.Context, info reconcile.PassInfo) context.Context {
	if t.config.Filter != nil && !t.config.Filter(info) {
		return ctx
	}

	attrs := []attribute.KeyValue{
		attribute.String("vtree.pass", info.Kind.String()),
		attribute.Int64("vtree.container", int64(info.Container)),
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(ctx, info)...)
	}

	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("vtree.%s", info.Kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	// Stored under our own key so a filtered pass never ends a span that
	// belongs to the caller.
	return context.WithValue(ctx, spanKey{}, span)
}

// PassEnd implements reconcile.Observer.
func (t *Tracer) PassEnd(ctx context.Context, _ reconcile.PassInfo, stats reconcile.PassStats, err error) {
	span, ok := ctx.Value(spanKey{}).(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int("vtree.created", stats.Matches[reconcile.MatchNone]),
		attribute.Int("vtree.matched_by_key", stats.Matches[reconcile.MatchKey]),
		attribute.Int("vtree.matched_by_index", stats.Matches[reconcile.MatchIndex]),
		attribute.Int("vtree.mutations", stats.Mutations.Total()),
		attribute.Int("vtree.placements", stats.Mutations.Placements()),
		attribute.Int("vtree.unmounted", stats.Unmounted),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// SpanFromContext returns the pass span stored in ctx by PassStart, or nil.
func SpanFromContext(ctx context.Context) trace.Span {
	if span, ok := ctx.Value(spanKey{}).(trace.Span); ok {
		return span
	}
	return nil
}
