// Package telemetry exports layout activity as OpenTelemetry traces.
// Export is enabled only when OTEL_EXPORTER_OTLP_ENDPOINT is set; otherwise
// spans go to the global no-op provider.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"practicestudio/internal/layout"
)

// DefaultServiceName is reported when neither a service name nor
// OTEL_SERVICE_NAME is given.
const DefaultServiceName = "practicestudio"

// TracerName is the instrumentation scope of layout spans.
const TracerName = "practicestudio/layout"

// Provider owns the SDK tracer provider installed by Setup.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Setup installs an OTLP/HTTP tracer provider as the global provider if
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Returns nil when export is disabled.
func Setup(ctx context.Context, serviceName string) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	if env := os.Getenv("OTEL_SERVICE_NAME"); env != "" {
		serviceName = env
	}
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider}, nil
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}

// SpanObserver records one span per instance store mutation.
type SpanObserver struct {
	tracer oteltrace.Tracer
}

// Ensure SpanObserver implements layout.Observer.
var _ layout.Observer = (*SpanObserver)(nil)

// NewSpanObserver traces through tp, or the global provider when tp is nil.
func NewSpanObserver(tp oteltrace.TracerProvider) *SpanObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &SpanObserver{tracer: tp.Tracer(TracerName)}
}

// InstanceAdded implements layout.Observer.
func (o *SpanObserver) InstanceAdded(inst layout.Instance) {
	_, span := o.tracer.Start(context.Background(), "layout.add")
	span.SetAttributes(
		attribute.String("practicestudio.module.id", inst.ID),
		attribute.String("practicestudio.module.kind", inst.Kind.String()),
		attribute.Int("practicestudio.module.x", inst.X),
	)
	span.End()
}

// InstanceRemoved implements layout.Observer.
func (o *SpanObserver) InstanceRemoved(id string) {
	_, span := o.tracer.Start(context.Background(), "layout.remove")
	span.SetAttributes(attribute.String("practicestudio.module.id", id))
	span.End()
}

// LayoutReplaced implements layout.Observer.
func (o *SpanObserver) LayoutReplaced(instances []layout.Instance) {
	_, span := o.tracer.Start(context.Background(), "layout.reconcile")
	rows := 0
	for _, inst := range instances {
		rows = max(rows, inst.Bottom())
	}
	span.SetAttributes(
		attribute.Int("practicestudio.layout.count", len(instances)),
		attribute.Int("practicestudio.layout.rows", rows),
	)
	span.End()
}
