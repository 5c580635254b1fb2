// Package tracing wires OpenTelemetry spans around countdown runs.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span names and attribute keys.
const (
	SpanSessionRun        = "session.run"
	SpanIntervalCountdown = "interval.countdown"

	AttrSessionID      = "session.id"
	AttrSessionLength  = "session.intervals"
	AttrOutcome        = "session.outcome"
	AttrIntervalKind   = "interval.kind"
	AttrIntervalIndex  = "interval.index"
	AttrIntervalCycle  = "interval.cycle"
	AttrIntervalLength = "interval.duration_ms"
	AttrTicks          = "interval.ticks"
)

// Config configures the tracing subsystem.
type Config struct {
	// Exporter selects the export backend: "none", "file", "stderr", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSON output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// ServiceName identifies this program in traces.
	ServiceName string `mapstructure:"service_name"`
}

// DefaultConfig returns tracing disabled.
func DefaultConfig() Config {
	return Config{
		Exporter:     "none",
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "pomodoro",
	}
}

// Provider owns the tracer provider for one process run.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	closer   io.Closer
}

// NewProvider creates the tracer provider described by cfg.
// The "none" exporter returns a no-op tracer with zero overhead.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	var (
		exporter sdktrace.SpanExporter
		closer   io.Closer
		err      error
	)

	switch cfg.Exporter {
	case "none", "":
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		f, ferr := openTraceFile(cfg.FilePath)
		if ferr != nil {
			return nil, ferr
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))
		closer = f
	case "stderr":
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	case "otlp":
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Exporter, err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "pomodoro"
	}

	return newProvider(serviceName, sdktrace.WithBatcher(exporter), closer), nil
}

// NewProviderWithProcessor builds a provider around an explicit span
// processor, e.g. a tracetest.SpanRecorder.
func NewProviderWithProcessor(serviceName string, sp sdktrace.SpanProcessor) *Provider {
	return newProvider(serviceName, sdktrace.WithSpanProcessor(sp), nil)
}

func newProvider(serviceName string, opt sdktrace.TracerProviderOption, closer io.Closer) *Provider {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))
	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res), opt)
	return &Provider{
		provider: tp,
		tracer:   tp.Tracer(serviceName),
		closer:   closer,
	}
}

func openTraceFile(path string) (*os.File, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return f, nil
}

// Tracer returns the configured tracer; never nil.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	err := p.provider.Shutdown(ctx)
	if p.closer != nil {
		if cerr := p.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
