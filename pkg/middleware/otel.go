package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/canonui/canon/pkg/behavior"
)

// Default tracer name for canon.
const defaultTracerName = "canon"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "canon").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider

	// Filter determines which attaches to trace.
	// If nil, all attaches are traced.
	Filter func(ctx behavior.AttachContext) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ctx behavior.AttachContext) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
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
		c.TracerProvider = tp
	}
}

// WithAttachFilter sets a filter function for attaches.
func WithAttachFilter(filter func(ctx behavior.AttachContext) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx behavior.AttachContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every attach.
//
// The span is a child of the scan span carried in AttachContext.Context and
// records the element id, attribute and behaviour kind. Errors are recorded
// on the span and returned unchanged.
func OpenTelemetry(opts ...OTelOption) behavior.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(ctx behavior.AttachContext, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("canon.element_id", ctx.ElementID),
			attribute.String("canon.attribute", ctx.Attribute),
			attribute.String("canon.kind", ctx.Kind.String()),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		parent := ctx.Context
		if parent == nil {
			parent = context.Background()
		}
		_, span := config.tracer.Start(parent, formatSpanName(ctx),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// formatSpanName creates a span name from the attach context.
func formatSpanName(ctx behavior.AttachContext) string {
	return fmt.Sprintf("canon.attach %s", ctx.Attribute)
}
