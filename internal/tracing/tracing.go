// Package tracing configures the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type ShutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs an OTLP/HTTP exporting tracer provider. When tracing is disabled
// the global no-op provider stays in place.
func Setup(ctx context.Context, cfg *config.OtelConfig, env, version string) (ShutdownFunc, error) {

	if !cfg.Enabled {
		slog.Info("Tracing disabled")
		return noopShutdown, nil
	}

	if cfg.SamplerRatio < 0 || cfg.SamplerRatio > 1 {
		return nil, fmt.Errorf("otel sampler ratio must be within [0, 1], got %v", cfg.SamplerRatio)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.ExporterEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version),
		attribute.String("deployment.environment", env),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("Tracing enabled",
		slog.String("endpoint", cfg.ExporterEndpoint),
		slog.Float64("sampler_ratio", cfg.SamplerRatio),
	)

	return provider.Shutdown, nil
}
