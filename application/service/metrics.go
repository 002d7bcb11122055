package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "botarena/application/service"

// OTelMetrics records service metrics through an OpenTelemetry meter.
type OTelMetrics struct {
	latency  metric.Float64Histogram
	requests metric.Int64Counter
}

// NewOTelMetrics builds the instruments on provider, or on the global
// provider when nil.
func NewOTelMetrics(provider metric.MeterProvider) (*OTelMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)
	latency, err := meter.Float64Histogram("botarena.service.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Latency of arena service calls."),
	)
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter("botarena.service.requests",
		metric.WithDescription("Arena service calls by name."),
	)
	if err != nil {
		return nil, err
	}
	return &OTelMetrics{latency: latency, requests: requests}, nil
}

func (m *OTelMetrics) RecordLatency(ctx context.Context, endpoint string, duration time.Duration) {
	m.latency.Record(ctx, float64(duration)/float64(time.Millisecond),
		metric.WithAttributes(attribute.String("endpoint", endpoint)))
}

func (m *OTelMetrics) IncrementCounter(ctx context.Context, name string, delta int) {
	m.requests.Add(ctx, int64(delta), metric.WithAttributes(attribute.String("name", name)))
}
