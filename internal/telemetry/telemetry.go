// Package telemetry holds the tracer, meter and instruments shared by the
// solver packages. Instruments are created lazily against the global
// providers, so nothing is exported until a binary installs an SDK.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans and metrics emitted by this module.
const InstrumentationName = "github.com/katalvlaran/aegis"

// Span attribute keys.
const (
	AttrN           = attribute.Key("aegis.n")
	AttrMethod      = attribute.Key("aegis.method")
	AttrTier        = attribute.Key("aegis.tier")
	AttrRepaired    = attribute.Key("aegis.repaired")
	AttrDegraded    = attribute.Key("aegis.degraded")
	AttrEvaluations = attribute.Key("aegis.evaluations")
)

var (
	tracer = otel.Tracer(InstrumentationName)
	meter  = otel.Meter(InstrumentationName)
)

var (
	solveLatency metric.Float64Histogram
	solveTotal   metric.Int64Counter
	tierTotal    metric.Int64Counter
	repairTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		solveLatency, err = meter.Float64Histogram(
			"aegis_solve_duration_seconds",
			metric.WithDescription("Duration of solver invocations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		solveTotal, err = meter.Int64Counter(
			"aegis_solve_total",
			metric.WithDescription("Total number of solver invocations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		tierTotal, err = meter.Int64Counter(
			"aegis_extraction_tier_total",
			metric.WithDescription("Bitstring extractions by the tier that succeeded"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		repairTotal, err = meter.Int64Counter(
			"aegis_constraint_repair_total",
			metric.WithDescription("Variational results replaced by the greedy one-hot choice"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// StartSolve opens the span "solver.<method>.Solve".
func StartSolve(ctx context.Context, method string, n int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "solver."+method+".Solve",
		trace.WithAttributes(
			AttrN.Int(n),
			AttrMethod.String(method),
		),
	)
}

// EndSolve records duration and outcome metrics, marks the span status and
// ends it.
func EndSolve(ctx context.Context, span trace.Span, method string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Bool("success", err == nil),
	)
	solveLatency.Record(ctx, time.Since(start).Seconds(), attrs)
	solveTotal.Add(ctx, 1, attrs)
}

// RecordTier counts a successful extraction by tier.
func RecordTier(ctx context.Context, method, tier string) {
	if initMetrics() != nil {
		return
	}
	tierTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("tier", tier),
	))
}

// RecordRepair counts a constraint repair.
func RecordRepair(ctx context.Context, method string) {
	if initMetrics() != nil {
		return
	}
	repairTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("method", method)))
}
