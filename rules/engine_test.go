package rules

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

type stubChecker struct {
	name     string
	findings []finding.Finding
	err      error
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(*client.Client) ([]finding.Finding, error) {
	return s.findings, s.err
}

func TestNew_Defaults(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	assert.Nil(t, e.metrics)
	assert.Equal(t, 4, e.cfg.concurrency)
	assert.False(t, e.cfg.extended)
}

func TestEngine_EvaluateMatchesPackageEvaluate(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	for _, c := range sampleClients() {
		want, err := Evaluate(c)
		require.NoError(t, err)
		got, err := e.Evaluate(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEngine_EvaluateCanceled(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Evaluate(ctx, sampleClients()[0])
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e, err := New(WithLogger(logger))
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), sampleClients()[1])
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "client evaluated")
	assert.Contains(t, buf.String(), `client="Margaret Chen"`)

	buf.Reset()
	_, err = e.Evaluate(context.Background(), &client.Client{MaritalStatus: "engaged"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "client evaluation failed")
}

func TestEngine_UnrecognizedRelationshipIsEvaluated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	e, err := New(WithLogger(logger))
	require.NoError(t, err)

	c := &client.Client{
		Name:          "Ruth Ames",
		MaritalStatus: client.MaritalWidowed,
		HasWill:       true,
		Accounts: []client.Account{
			{ID: "tfsa-1", Type: client.AccountTFSA, Balance: 30000,
				BeneficiaryPrimary: &client.Designation{Name: "Ana", Relationship: "niece", IsCurrentlyAlive: client.Bool(false)}},
			{ID: "rrsp-1", Type: client.AccountRRSP, Balance: 50000},
		},
	}

	findings, err := e.Evaluate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"T6", "R1"}, rulesOf(findings))

	logs := buf.String()
	assert.Contains(t, logs, "unrecognized relationship")
	assert.Contains(t, logs, "account=tfsa-1")
	assert.Contains(t, logs, "relationship=niece")
}

func TestEngine_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	e, err := New(WithOTel(OTelOptions{Tracer: tp.Tracer("test")}))
	require.NoError(t, err)

	_, err = e.Evaluate(context.Background(), sampleClients()[1])
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), nil)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "estate.evaluate", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "Margaret Chen", attrs["client.name"])
	assert.Equal(t, int64(3), attrs["client.accounts"])
	assert.Equal(t, int64(3), attrs["estate.findings.critical"])

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestEngine_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	e, err := New(WithOTel(OTelOptions{MeterProvider: mp}))
	require.NoError(t, err)
	require.NotNil(t, e.metrics)

	for _, c := range sampleClients() {
		_, err := e.Evaluate(context.Background(), c)
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	var sawDuration bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					key := m.Name
					if sev, ok := dp.Attributes.Value("severity"); ok {
						key += "." + sev.AsString()
					}
					sums[key] += dp.Value
				}
			case metricdata.Histogram[float64]:
				if m.Name == "estate.evaluate.duration" {
					sawDuration = true
				}
			}
		}
	}

	assert.Equal(t, int64(4), sums["estate.evaluate.count"])
	assert.Positive(t, sums["estate.findings.CRITICAL"])
	assert.Positive(t, sums["estate.findings.HIGH"])
	assert.True(t, sawDuration)
}

func TestEngine_Checker(t *testing.T) {
	c := willed(client.Account{ID: "t", Type: client.AccountTFSA, SuccessorHolder: person(client.RelationshipSpouse)})
	custom := stubChecker{name: "custom", findings: []finding.Finding{
		finding.ForAccount("t", "TFSA", finding.SeverityLow, "X1", finding.CategoryCustom, "i", "c", "a"),
		finding.ForPortfolio(finding.SeverityCritical, "X2", finding.CategoryCustom, "i", "c", "a"),
	}}

	e, err := New(WithChecker(custom), WithChecker(nil))
	require.NoError(t, err)

	got, err := e.Evaluate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"X2", "X1"}, rulesOf(got))
	for _, f := range got {
		assert.NotEmpty(t, f.ID)
	}
}

func TestEngine_CheckerErrors(t *testing.T) {
	c := willed(client.Account{ID: "t", Type: client.AccountTFSA})

	tests := []struct {
		name    string
		checker stubChecker
	}{
		{"checker fails", stubChecker{name: "broken", err: errors.New("boom")}},
		{"dangling account", stubChecker{name: "dangling", findings: []finding.Finding{
			finding.ForAccount("missing", "TFSA", finding.SeverityLow, "X1", finding.CategoryCustom, "i", "c", "a"),
		}}},
		{"invalid finding", stubChecker{name: "invalid", findings: []finding.Finding{
			finding.ForPortfolio(finding.Severity("INFO"), "X1", finding.CategoryCustom, "i", "c", "a"),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(WithChecker(tt.checker))
			require.NoError(t, err)

			_, err = e.Evaluate(context.Background(), c)
			require.Error(t, err)

			var ee *estate.Error
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, estate.KindInternal, ee.Kind)
			assert.Contains(t, err.Error(), tt.checker.name)
		})
	}
}

func TestEngine_EvaluateAll(t *testing.T) {
	e, err := New(WithConcurrency(2), WithConcurrency(0))
	require.NoError(t, err)
	assert.Equal(t, 2, e.cfg.concurrency)

	clients := sampleClients()
	reports, err := e.EvaluateAll(context.Background(), clients)
	require.NoError(t, err)
	require.Len(t, reports, len(clients))

	for i, r := range reports {
		assert.Same(t, clients[i], r.Client)
		want, err := Evaluate(clients[i])
		require.NoError(t, err)
		assert.Equal(t, want, r.Findings)
	}

	margaret := reports[1]
	assert.Equal(t, RiskCritical, margaret.Risk("tfsa-1"))
	assert.Equal(t, RiskClean, margaret.Risk("nr-1"))
	assert.Equal(t, []string{"L2"}, rulesOf(margaret.Portfolio()))
}

func TestEngine_EvaluateAllFailsFast(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	clients := append(sampleClients(), &client.Client{Name: "Bad", MaritalStatus: "engaged"})
	reports, err := e.EvaluateAll(context.Background(), clients)
	require.Error(t, err)
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, estate.ErrInvalidInput)
}

func TestEngine_EvaluateAllEmpty(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	reports, err := e.EvaluateAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
