package rules

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/vesta-ai/estate/finding"
)

const instrumentationName = "github.com/vesta-ai/estate/rules"

// otelMetrics holds the metric instruments for the engine. They are created
// once in New and reused for every evaluation.
type otelMetrics struct {
	// countCounter increments for each evaluation performed
	countCounter metric.Int64Counter

	// durationHistogram records evaluation duration in milliseconds
	durationHistogram metric.Float64Histogram

	// findingsCounter counts emitted findings by severity
	findingsCounter metric.Int64Counter
}

func initOTelMetrics(provider metric.MeterProvider) (*otelMetrics, error) {
	if provider == nil {
		return nil, nil
	}
	meter := provider.Meter(instrumentationName)

	metrics := &otelMetrics{}
	var err error

	metrics.countCounter, err = meter.Int64Counter(
		"estate.evaluate.count",
		metric.WithDescription("Number of client evaluations performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create count counter: %w", err)
	}

	metrics.durationHistogram, err = meter.Float64Histogram(
		"estate.evaluate.duration",
		metric.WithDescription("Client evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	metrics.findingsCounter, err = meter.Int64Counter(
		"estate.findings",
		metric.WithDescription("Number of estate-planning gaps found"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create findings counter: %w", err)
	}

	return metrics, nil
}

// startSpan starts an evaluation span when a tracer is configured. The
// returned span is never nil.
func (e *Engine) startSpan(ctx context.Context, clientName string, accounts int) (context.Context, trace.Span) {
	if e.cfg.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return e.cfg.tracer.Start(ctx, "estate.evaluate", trace.WithAttributes(
		attribute.String("client.name", clientName),
		attribute.Int("client.accounts", accounts),
		attribute.Bool("rules.extended", e.cfg.extended),
	))
}

// recordEvaluation ends span and records metrics for one evaluation.
func (e *Engine) recordEvaluation(ctx context.Context, span trace.Span, findings []finding.Finding, elapsed time.Duration, err error) {
	counts := finding.Count(findings)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	if e.cfg.tracer != nil {
		span.SetAttributes(
			attribute.Int("estate.findings.total", counts.Total),
			attribute.Int("estate.findings.critical", counts.Critical),
			attribute.Int("estate.findings.high", counts.High),
			attribute.Int("estate.findings.medium", counts.Medium),
			attribute.Int("estate.findings.low", counts.Low),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	if e.metrics == nil {
		return
	}
	opts := metric.WithAttributes(attribute.String("outcome", outcome))
	e.metrics.countCounter.Add(ctx, 1, opts)
	e.metrics.durationHistogram.Record(ctx, float64(elapsed.Microseconds())/1000, opts)
	for _, sev := range finding.AllSeverities() {
		var n int
		switch sev {
		case finding.SeverityCritical:
			n = counts.Critical
		case finding.SeverityHigh:
			n = counts.High
		case finding.SeverityMedium:
			n = counts.Medium
		case finding.SeverityLow:
			n = counts.Low
		}
		if n > 0 {
			e.metrics.findingsCounter.Add(ctx, int64(n), metric.WithAttributes(attribute.String("severity", sev.String())))
		}
	}
}
