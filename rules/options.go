package rules

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// Checker is an additional rule set run after the built-in rules. Findings
// it returns are validated and ordered together with the built-in ones.
type Checker interface {
	// Name identifies the checker in logs and errors.
	Name() string

	// Check evaluates the client. It must not modify c.
	Check(c *client.Client) ([]finding.Finding, error)
}

// Option configures an Engine.
type Option func(*config)

// config holds configuration for an Engine instance.
type config struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	meterProvider metric.MeterProvider
	extended      bool
	now           func() time.Time
	checkers      []Checker
	concurrency   int
}

func defaultConfig() *config {
	return &config{
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
		concurrency: 4,
	}
}

// WithLogger sets the logger used for evaluation events.
// If not provided, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OTelOptions configures OpenTelemetry instrumentation for an Engine.
type OTelOptions struct {
	// Tracer creates a span per evaluation. Optional.
	Tracer trace.Tracer

	// MeterProvider supplies the meter for evaluation metrics. Optional.
	MeterProvider metric.MeterProvider
}

// WithOTel enables OpenTelemetry tracing and metrics. Nil fields are
// ignored, so tracing and metrics can be enabled independently.
func WithOTel(opts OTelOptions) Option {
	return func(c *config) {
		c.tracer = opts.Tracer
		c.meterProvider = opts.MeterProvider
	}
}

// WithExtendedRules enables the additional designation-quality, life-event
// and portfolio checks (T2, T5, R2–R5, RRIF R1/R3, C6, L3, L5, L0b, C2).
func WithExtendedRules() Option {
	return func(c *config) {
		c.extended = true
	}
}

// WithClock sets the time source for rules that measure elapsed periods,
// such as the age of a will.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithChecker adds a custom rule set run after the built-in rules.
func WithChecker(checker Checker) Option {
	return func(c *config) {
		if checker != nil {
			c.checkers = append(c.checkers, checker)
		}
	}
}

// WithConcurrency bounds the number of clients EvaluateAll evaluates at
// once. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}
