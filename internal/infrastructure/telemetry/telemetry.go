// Package telemetry wires OpenTelemetry traces, metrics and logs, plus
// Pyroscope continuous profiling, into the billing service.
//
// Every provider degrades to a no-op when its signal is disabled, so callers
// can construct them unconditionally and always defer Shutdown.
package telemetry

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceNameDefault is used when no service name is configured
const ServiceNameDefault = "gstbill"

// shutdownTimeout bounds how long a provider may spend flushing on exit
const shutdownTimeout = 10 * time.Second

// Config holds the settings shared by all OTLP exporters.
type Config struct {
	Enabled           bool
	CollectorEndpoint string  // host:port of the OTLP gRPC receiver
	SamplingRatio     float64 // 0.0-1.0, traces only
	ServiceName       string
	ServiceVersion    string
	Environment       string
	Insecure          bool
}

func (c Config) serviceName() string {
	if c.ServiceName == "" {
		return ServiceNameDefault
	}
	return c.ServiceName
}

// newResource describes this process to the collector
func newResource(cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.serviceName()),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment.name", cfg.Environment))
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
