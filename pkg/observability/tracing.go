// Package observability sets up OpenTelemetry tracing for spawnpool and wraps
// spans with a small helper that batches attributes.
package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

// InstrumentationName is the tracer name used by spawnpool components
const InstrumentationName = "github.com/ajitpratap0/spawnpool"

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// SamplingRate is the fraction of traces kept; <= 0 disables, >= 1 keeps all
	SamplingRate float64
	// Output receives exported spans; nil means stderr
	Output       io.Writer
	PrettyPrint  bool
	BatchTimeout time.Duration
}

// DefaultTracingConfig samples everything and pretty-prints to stderr
func DefaultTracingConfig(version string) TracingConfig {
	return TracingConfig{
		ServiceName:    "spawnpool",
		ServiceVersion: version,
		Environment:    getEnv("ENVIRONMENT", "development"),
		SamplingRate:   1,
		PrettyPrint:    true,
		BatchTimeout:   time.Second,
	}
}

// InitTracing installs a global tracer provider exporting to cfg.Output.
// The returned provider must be shut down to flush pending spans.
func InitTracing(ctx context.Context, cfg TracingConfig) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create trace resource")
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(out)}
	if cfg.PrettyPrint {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create stdout exporter")
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case cfg.SamplingRate >= 1:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(batchTimeout)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// Tracer returns the spawnpool tracer from the global provider. Without
// InitTracing it is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Span wraps a trace span and collects attributes until End
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// StartSpan starts a span named name on tracer
func StartSpan(ctx context.Context, tracer trace.Tracer, name string) (context.Context, *Span) {
	ctx, span := tracer.Start(ctx, name)
	return ctx, &Span{span: span, startTime: time.Now()}
}

// SetAttribute queues an attribute for the span
func (s *Span) SetAttribute(key string, value any) {
	var attr attribute.KeyValue
	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	case fmt.Stringer:
		attr = attribute.String(key, v.String())
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}
	s.attributes = append(s.attributes, attr)
}

// AddEvent adds an event to the span
func (s *Span) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records err on the span without changing its status
func (s *Span) RecordError(err error) {
	s.span.RecordError(err, trace.WithAttributes(
		attribute.String("error.type", string(errors.TypeOf(err))),
	))
}

// Fail marks the span as failed
func (s *Span) Fail(err error) {
	s.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End flushes queued attributes and ends the span. It returns the span's
// wall time.
func (s *Span) End() time.Duration {
	elapsed := time.Since(s.startTime)
	s.attributes = append(s.attributes, attribute.Int64("duration_us", elapsed.Microseconds()))
	s.span.SetAttributes(s.attributes...)
	s.span.End()
	return elapsed
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
