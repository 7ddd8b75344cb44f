package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted by Config.
const (
	ExporterNone       = "none"
	ExporterStdout     = "stdout"
	ExporterPrometheus = "prometheus"
)

// ErrUnknownExporter is returned for an unrecognised exporter name.
var ErrUnknownExporter = errors.New("telemetry: unknown exporter")

// Config selects where spans and metrics go.
type Config struct {
	// ServiceName is attached to every span and metric as service.name.
	ServiceName string

	// ServiceVersion is attached as service.version.
	ServiceVersion string

	// RunID is attached as aegis.run_id when set.
	RunID string

	// TraceExporter is "stdout" or "none".
	TraceExporter string

	// MetricExporter is "stdout", "prometheus" or "none". The prometheus
	// exporter writes the text exposition format to Writer at shutdown.
	MetricExporter string

	// Writer receives exported data. Defaults to os.Stderr.
	Writer io.Writer
}

// Init installs global tracer and meter providers per cfg and returns a
// shutdown function that flushes them. With both exporters "none" it
// installs nothing and the no-op globals stay in place.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}

		return errors.Join(errs...)
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	}
	if cfg.RunID != "" {
		attrs = append(attrs, attribute.String("aegis.run_id", cfg.RunID))
	}
	res := resource.NewWithAttributes("", attrs...)

	switch cfg.TraceExporter {
	case "", ExporterNone:
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("Init: trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	default:
		return nil, fmt.Errorf("Init: trace %q: %w", cfg.TraceExporter, ErrUnknownExporter)
	}

	switch cfg.MetricExporter {
	case "", ExporterNone:
	case ExporterStdout:
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("Init: metric exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		)
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs, mp.Shutdown)
	case ExporterPrometheus:
		reg := prometheus.NewRegistry()
		exp, err := promexporter.New(promexporter.WithRegisterer(reg))
		if err != nil {
			return nil, fmt.Errorf("Init: prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exp),
		)
		otel.SetMeterProvider(mp)
		shutdownFuncs = append(shutdownFuncs,
			func(context.Context) error { return WriteExposition(reg, w) },
			mp.Shutdown,
		)
	default:
		return nil, fmt.Errorf("Init: metric %q: %w", cfg.MetricExporter, ErrUnknownExporter)
	}

	return shutdown, nil
}

// WriteExposition gathers g and writes it in the Prometheus text format.
func WriteExposition(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("WriteExposition: gather: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("WriteExposition: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
