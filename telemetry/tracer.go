package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ServiceName identifies this library in exported trace resources.
const ServiceName = "snowtask"

// NewTracerProvider creates a TracerProvider that sends spans to the
// given exporter.
//
// The provider uses a SimpleSpanProcessor for immediate export without
// batching, so short-lived pipeline processes do not lose spans on
// exit. Batch processing belongs to callers that run long enough to
// benefit from it; they should build their own provider instead.
func NewTracerProvider(ctx context.Context, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
		),
	)
	if err != nil {
		res = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return tp, nil
}

// Install builds a provider around the exporter, registers it as the
// global tracer provider, and returns its shutdown function. The
// returned function flushes pending spans; call it before the process
// exits.
func Install(ctx context.Context, exporter sdktrace.SpanExporter) (func(context.Context) error, error) {
	tp, err := NewTracerProvider(ctx, exporter)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
