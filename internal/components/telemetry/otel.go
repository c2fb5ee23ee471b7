package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c OtlpConnConfig) enabled() bool {
	return c.GrpcEndpoint != "" || c.HttpEndpoint != ""
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

// Otel holds the providers installed by Setup, either of them may be nil if the
// corresponding exporter was not configured.
type Otel struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

func (t Otel) Shutdown(ctx context.Context) error {
	var errlist []error
	if t.TracerProvider != nil {
		err := t.TracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if t.MeterProvider != nil {
		err := t.MeterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

// SetupOtel installs global otel providers exporting over OTLP. Signals without an
// endpoint keep the default no-op provider.
func SetupOtel(ctx context.Context, serviceName string, config OtlpConfig) (Otel, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	var out Otel
	if !config.Traces.enabled() && !config.Metrics.enabled() {
		return out, nil
	}

	r, err := newResource(serviceName)
	if err != nil {
		return out, err
	}

	if config.Traces.enabled() {
		tracerProvider, err := newTraceProvider(ctx, r, config.Traces)
		if err != nil {
			return out, err
		}
		otel.SetTracerProvider(tracerProvider)
		out.TracerProvider = tracerProvider
	}

	if config.Metrics.enabled() {
		meterProvider, err := newMetricProvider(ctx, r, config.Metrics)
		if err != nil {
			return out, errors.Join(err, out.Shutdown(context.Background()))
		}
		otel.SetMeterProvider(meterProvider)
		out.MeterProvider = meterProvider
	}

	return out, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c OtlpConnConfig) (*trace.TracerProvider, error) {
	exporter, err := otlpTraceExporter(ctx, c)
	if err != nil {
		return nil, err
	}

	traceProvider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	)
	return traceProvider, nil
}

func otlpTraceExporter(ctx context.Context, c OtlpConnConfig) (trace.SpanExporter, error) {
	if c.GrpcEndpoint != "" {
		slog.Debug(
			"tracer export initialized",
			"type", "grpc",
			"endpoint", c.GrpcEndpoint,
			"headers", len(c.Headers) > 0,
		)
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.GrpcEndpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	}

	slog.Debug(
		"tracer export initialized",
		"type", "http",
		"endpoint", c.HttpEndpoint,
		"headers", len(c.Headers) > 0,
	)
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(c.HttpEndpoint),
		otlptracehttp.WithHeaders(c.Headers),
	)
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c OtlpConnConfig) (*metric.MeterProvider, error) {
	exporter, err := otlpMetricExporter(ctx, c)
	if err != nil {
		return nil, err
	}

	provider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(time.Second*5))),
		metric.WithResource(r),
	)
	return provider, nil
}

func otlpMetricExporter(ctx context.Context, c OtlpConnConfig) (metric.Exporter, error) {
	if c.GrpcEndpoint != "" {
		slog.Debug(
			"metric exporter initialized",
			"type", "grpc",
			"endpoint", c.GrpcEndpoint,
			"headers", len(c.Headers) > 0,
		)
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(c.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(c.Headers),
		)
	}
	slog.Debug(
		"metric exporter initialized",
		"type", "http",
		"endpoint", c.HttpEndpoint,
		"headers", len(c.Headers) > 0,
	)
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(c.HttpEndpoint),
		otlpmetrichttp.WithHeaders(c.Headers),
	)
}
