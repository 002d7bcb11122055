// Package telemetry wires the process-wide tracer, meter and logger providers.
package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Config struct {
	ServiceName string
	// Endpoint empty keeps everything local: no exporters are created and
	// logs go to Output as text.
	Endpoint string
	Level    slog.Level
	Output   io.Writer
	// MetricReaders are attached to the meter provider.
	MetricReaders []sdkmetric.Reader
}

type Providers struct {
	Logger        *slog.Logger
	MeterProvider *sdkmetric.MeterProvider

	shutdown []func(context.Context) error
}

// Setup installs the providers globally and returns them. Shutdown must be
// called to flush pending telemetry.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "botarena"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName)))
	if err != nil {
		return nil, err
	}

	p := &Providers{}
	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range cfg.MetricReaders {
		metricOpts = append(metricOpts, sdkmetric.WithReader(r))
	}
	p.MeterProvider = sdkmetric.NewMeterProvider(metricOpts...)
	p.shutdown = append(p.shutdown, p.MeterProvider.Shutdown)
	otel.SetMeterProvider(p.MeterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	if cfg.Endpoint == "" {
		p.Logger = slog.New(slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level}))
		return p, nil
	}

	traceExp, err := otlptracegrpc.New(ctx, traceEndpoint(cfg.Endpoint)...)
	if err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExp), sdktrace.WithResource(res))
	p.shutdown = append(p.shutdown, tp.Shutdown)
	otel.SetTracerProvider(tp)

	logExp, err := otlploggrpc.New(ctx, logEndpoint(cfg.Endpoint)...)
	if err != nil {
		return nil, errors.Join(err, p.Shutdown(ctx))
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	p.shutdown = append(p.shutdown, lp.Shutdown)
	p.Logger = otelslog.NewLogger(cfg.ServiceName, otelslog.WithLoggerProvider(lp))
	return p, nil
}

// Shutdown flushes providers in reverse order of creation.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(p.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, p.shutdown[i](ctx))
	}
	p.shutdown = nil
	return errors.Join(errs...)
}

// OTEL_EXPORTER_OTLP_ENDPOINT is usually a URL; a bare host:port is dialed
// without TLS.
func traceEndpoint(endpoint string) []otlptracegrpc.Option {
	if hasScheme(endpoint) {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure()}
}

func logEndpoint(endpoint string) []otlploggrpc.Option {
	if hasScheme(endpoint) {
		return []otlploggrpc.Option{otlploggrpc.WithEndpointURL(endpoint)}
	}
	return []otlploggrpc.Option{otlploggrpc.WithEndpoint(endpoint), otlploggrpc.WithInsecure()}
}

func hasScheme(endpoint string) bool {
	return strings.Contains(endpoint, "://")
}
