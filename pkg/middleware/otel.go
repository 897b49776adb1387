package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vango-dev/sitekit/pkg/features/validate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for sitekit.
const defaultTracerName = "sitekit"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "sitekit").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider

	// IncludeMessages records failure messages as span event attributes.
	// Messages may echo user-defined pattern errors; disabled by default.
	IncludeMessages bool
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
		c.TracerProvider = tp
	}
}

// WithIncludeMessages enables failure messages on span events.
func WithIncludeMessages(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeMessages = include
	}
}

// Tracing records a span per form submission and traces HTTP handlers.
// It implements validate.Observer.
type Tracing struct {
	tracer          trace.Tracer
	includeMessages bool
	ctx             context.Context
}

// OpenTelemetry creates a tracing observer. The tracer comes from the global
// provider unless WithTracerProvider is given.
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracing{
		tracer:          tp.Tracer(config.TracerName),
		includeMessages: config.IncludeMessages,
		ctx:             context.Background(),
	}
}

// WithContext returns a copy whose submit spans are children of the span in ctx.
func (t *Tracing) WithContext(ctx context.Context) *Tracing {
	c := *t
	c.ctx = ctx
	return &c
}

// ObserveField implements validate.Observer. Blur validations are recorded
// as events on the current span, if any.
func (t *Tracing) ObserveField(r validate.FieldResult) {
	if r.Trigger == validate.TriggerSubmit {
		return
	}
	span := trace.SpanFromContext(t.ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("field.validated", trace.WithAttributes(t.fieldAttrs(r)...))
}

// ObserveSubmit implements validate.Observer.
func (t *Tracing) ObserveSubmit(r validate.SubmitResult) {
	_, span := t.tracer.Start(t.ctx, fmt.Sprintf("sitekit.submit %s", r.Form),
		trace.WithTimestamp(r.Start),
		trace.WithAttributes(
			attribute.String("sitekit.form", r.Form),
			attribute.Bool("sitekit.valid", r.Valid),
			attribute.Int("sitekit.field_count", len(r.Fields)),
		),
	)
	invalid := 0
	for _, f := range r.Fields {
		if !f.State.Valid {
			invalid++
		}
		span.AddEvent("field.validated", trace.WithTimestamp(r.End), trace.WithAttributes(t.fieldAttrs(f)...))
	}
	span.SetAttributes(attribute.Int("sitekit.invalid_count", invalid))
	if r.Valid {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, "validation failed")
	}
	span.End(trace.WithTimestamp(r.End))
}

func (t *Tracing) fieldAttrs(r validate.FieldResult) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("sitekit.field", r.Field),
		attribute.String("sitekit.trigger", string(r.Trigger)),
		attribute.Bool("sitekit.valid", r.State.Valid),
		attribute.String("sitekit.rule", r.State.Kind.String()),
	}
	if t.includeMessages && r.State.Message != "" {
		attrs = append(attrs, attribute.String("sitekit.message", r.State.Message))
	}
	return attrs
}

// Trace wraps an HTTP handler in a server span named after the method and path.
func (t *Tracing) Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := t.tracer.Start(r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
