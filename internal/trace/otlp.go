// Package trace sets up OpenTelemetry tracing for workspace actions.
//
// When no OTLP endpoint is configured the global no-op provider stays in place
// and spans cost nothing.
package trace

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for every studiodash span.
const TracerName = "studiodash"

// Attribute keys, all under the studiodash.* namespace.
const (
	AttrWorkspaceKey = attribute.Key("studiodash.workspace.key")
	AttrAction       = attribute.Key("studiodash.workspace.action")
	AttrAPICode      = attribute.Key("studiodash.api.code")
	AttrHTTPRoute    = attribute.Key("studiodash.http.route")
)

// Provider owns the SDK tracer provider installed by Setup.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup installs an OTLP/HTTP exporter as the global tracer provider.
// Returns a nil Provider (and nil error) when endpoint is empty.
func Setup(ctx context.Context, endpoint, serviceName string) (*Provider, error) {
	if endpoint == "" {
		return nil, nil // Disabled
	}

	var opts []otlptracehttp.Option
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if serviceName == "" {
		serviceName = TracerName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}, nil
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// Tracer returns the studiodash tracer from the global provider.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(TracerName)
}

// Start opens a span on the global tracer.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// End records err on span (if any) and ends it.
func End(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
