// Package otel wires the OpenTelemetry log pipeline used by slpscan.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/framelog/slp/internal/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultBatchTimeout = 5 * time.Second

// ErrNoSink is returned when OTel is enabled with neither a log writer nor
// an OTLP endpoint.
var ErrNoSink = errors.New("otel enabled but no log writer or endpoint configured")

// Config holds OTel configuration.
type Config struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	LogWriter    io.Writer // session OTel log file
	Endpoint     string    // OTLP/HTTP collector, optional
	Insecure     bool
	// Session tags every record with the scan session it belongs to.
	Session time.Time
}

// Provider owns the log provider behind the otelslog bridge. A disabled
// provider is a no-op.
type Provider struct {
	logProvider *sdklog.LoggerProvider
}

// New builds the log pipeline for cfg.
func New(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	ctx := context.Background()
	res, err := resource.New(ctx, resource.WithAttributes(sessionAttrs(cfg)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporters, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	for _, exp := range exporters {
		opts = append(opts, sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exp, sdklog.WithExportTimeout(cfg.BatchTimeout)),
		))
	}
	return &Provider{logProvider: sdklog.NewLoggerProvider(opts...)}, nil
}

func sessionAttrs(cfg Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if !cfg.Session.IsZero() {
		attrs = append(attrs, attribute.String("slpscan.session", cfg.Session.UTC().Format(time.RFC3339)))
	}
	return attrs
}

// newExporters returns the file exporter, the OTLP exporter, or both.
func newExporters(ctx context.Context, cfg Config) ([]sdklog.Exporter, error) {
	var out []sdklog.Exporter
	if cfg.LogWriter != nil {
		exp, err := stdoutlog.New(stdoutlog.WithWriter(cfg.LogWriter), stdoutlog.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create file log exporter: %w", err)
		}
		out = append(out, exp)
	}
	if cfg.Endpoint != "" {
		opts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		}
		exp, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		out = append(out, exp)
	}
	if len(out) == 0 {
		return nil, ErrNoSink
	}
	return out, nil
}

// LoggerProvider returns the provider for the otelslog bridge, or nil when
// disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	return p.logProvider
}

// Enabled reports whether a log pipeline is running.
func (p *Provider) Enabled() bool {
	return p.logProvider != nil
}

// Flush exports pending records. The store command calls it once the
// batch is written.
func (p *Provider) Flush(ctx context.Context) error {
	if p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush failed: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the pipeline.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("log shutdown failed: %w", err)
	}
	return nil
}

// FromConfig maps the otel config section onto a provider Config. logs
// receives the file exporter output and session tags the resource.
func FromConfig(c config.OTelConfig, logs io.Writer, session time.Time) Config {
	timeout := c.BatchTimeout
	if timeout <= 0 {
		timeout = defaultBatchTimeout
	}
	return Config{
		Enabled:      c.Enabled,
		ServiceName:  c.ServiceName,
		BatchTimeout: timeout,
		LogWriter:    logs,
		Endpoint:     c.Endpoint,
		Insecure:     c.Insecure,
		Session:      session,
	}
}
