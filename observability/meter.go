package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ayalpani/remotekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the client service.
	ServiceName string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		Interval:    15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ClientMetrics holds the metric instruments recorded by this module.
type ClientMetrics struct {
	// AsyncCalls counts asynchronous dispatches issued by proxies.
	AsyncCalls metric.Int64Counter
	// BatchSize observes the requested size of each buffered-iterator fetch.
	BatchSize metric.Int64Histogram
	// Pumps counts serving rounds performed by background workers.
	Pumps metric.Int64Counter
	// PumpFailures counts serving rounds that ended in a transport error.
	PumpFailures metric.Int64Counter
}

// NewClientMetrics creates the module's instruments on the given meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	asyncCalls, err := meter.Int64Counter("remote.async_calls",
		metric.WithDescription("Asynchronous dispatches issued"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating remote.async_calls counter: %w", err)
	}

	batchSize, err := meter.Int64Histogram("remote.buffiter_batch_size",
		metric.WithDescription("Requested size of buffered-iterator fetches"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating remote.buffiter_batch_size histogram: %w", err)
	}

	pumps, err := meter.Int64Counter("remote.serve_rounds",
		metric.WithDescription("Serving rounds performed by background workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating remote.serve_rounds counter: %w", err)
	}

	pumpFailures, err := meter.Int64Counter("remote.serve_failures",
		metric.WithDescription("Serving rounds that ended in a transport error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating remote.serve_failures counter: %w", err)
	}

	return &ClientMetrics{
		AsyncCalls:   asyncCalls,
		BatchSize:    batchSize,
		Pumps:        pumps,
		PumpFailures: pumpFailures,
	}, nil
}

// RecordAsyncCall counts one asynchronous dispatch.
func (m *ClientMetrics) RecordAsyncCall(ctx context.Context) {
	if m.AsyncCalls != nil {
		m.AsyncCalls.Add(ctx, 1)
	}
}

// RecordBatch observes one buffered-iterator fetch of the given size.
func (m *ClientMetrics) RecordBatch(ctx context.Context, size int) {
	if m.BatchSize != nil {
		m.BatchSize.Record(ctx, int64(size))
	}
}

// RecordPump counts one serving round.
func (m *ClientMetrics) RecordPump(ctx context.Context) {
	if m.Pumps != nil {
		m.Pumps.Add(ctx, 1)
	}
}

// RecordPumpFailure counts one failed serving round.
func (m *ClientMetrics) RecordPumpFailure(ctx context.Context) {
	if m.PumpFailures != nil {
		m.PumpFailures.Add(ctx, 1)
	}
}

// --- package-level instruments shared by proxy, buffiter and bgserve ---

var (
	clientMetrics     *ClientMetrics
	clientMetricsOnce sync.Once
)

// Default returns the module's shared instruments, creating them on the
// global meter on first use. First use may come from any goroutine: the
// serving worker and foreground callers record through the same instance.
// Instrument creation on a no-op provider never fails; a failure on a real
// provider falls back to no-op instruments.
func Default() *ClientMetrics {
	clientMetricsOnce.Do(func() {
		m, err := NewClientMetrics(Meter(defaultTracerName))
		if err != nil {
			logger.Warn("falling back to no-op metrics", logger.ErrorFields("init_metrics", err))
			m = &ClientMetrics{}
		}
		clientMetrics = m
	})
	return clientMetrics
}
