package rules

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// Engine evaluates clients with a fixed set of rules and instrumentation.
// An Engine holds no per-evaluation state and is safe for concurrent use.
type Engine struct {
	cfg     *config
	metrics *otelMetrics
}

// New creates an Engine. Without options it runs the same rules as Evaluate
// and records nothing.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	metrics, err := initOTelMetrics(cfg.meterProvider)
	if err != nil {
		return nil, estate.NewConfigurationError("rules.New", err)
	}
	return &Engine{cfg: cfg, metrics: metrics}, nil
}

// Evaluate runs the engine's rules over c. It behaves like the package-level
// Evaluate plus any extended rules and checkers the engine was built with.
func (e *Engine) Evaluate(ctx context.Context, c *client.Client) ([]finding.Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, accounts := "", 0
	if c != nil {
		name, accounts = c.Name, len(c.Accounts)
	}
	ctx, span := e.startSpan(ctx, name, accounts)

	for _, u := range c.UnrecognizedRelationships() {
		e.cfg.logger.WarnContext(ctx, "unrecognized relationship",
			"client", name,
			"account", u.AccountID,
			"role", u.Role.String(),
			"relationship", u.Relationship.String(),
		)
	}

	start := time.Now()
	findings, err := evaluate(c, e.cfg)
	elapsed := time.Since(start)
	e.recordEvaluation(ctx, span, findings, elapsed, err)

	if err != nil {
		e.cfg.logger.WarnContext(ctx, "client evaluation failed", "client", name, "error", err)
		return nil, err
	}

	counts := finding.Count(findings)
	e.cfg.logger.DebugContext(ctx, "client evaluated",
		"client", name,
		"accounts", accounts,
		"findings", counts.Total,
		"critical", counts.Critical,
		"high", counts.High,
		"duration", elapsed,
	)
	return findings, nil
}

// Report is the outcome of evaluating one client.
type Report struct {
	Client   *client.Client
	Findings []finding.Finding
}

// Risk classifies one of the client's accounts.
func (r Report) Risk(accountID string) RiskLevel {
	return Classify(accountID, r.Findings)
}

// Portfolio returns the findings not tied to a single account.
func (r Report) Portfolio() []finding.Finding {
	return (&finding.Filter{PortfolioOnly: true}).Apply(r.Findings)
}

// EvaluateAll evaluates every client, running up to the configured
// concurrency at once. Reports are returned in input order. The first
// failing client cancels the remaining work and its error is returned.
func (e *Engine) EvaluateAll(ctx context.Context, clients []*client.Client) ([]Report, error) {
	reports := make([]Report, len(clients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.concurrency)
	for i, c := range clients {
		g.Go(func() error {
			findings, err := e.Evaluate(gctx, c)
			if err != nil {
				return err
			}
			reports[i] = Report{Client: c, Findings: findings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.cfg.logger.InfoContext(ctx, "catalog evaluated", "clients", len(clients))
	return reports, nil
}
