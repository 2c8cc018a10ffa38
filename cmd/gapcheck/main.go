// Command gapcheck evaluates a catalog of client records and prints the
// estate-planning gaps found for each client.
//
// Usage:
//
//	gapcheck --catalog clients.json
//	gapcheck --catalog clients.json --client "Margaret Chen" --format json
//	gapcheck --catalog clients.json --policy policies.yaml --extended --fail-on high
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
	"github.com/vesta-ai/estate/policy"
	"github.com/vesta-ai/estate/rules"
)

// errFindingsAtThreshold is returned when --fail-on is set and a finding at
// or above that severity was reported.
var errFindingsAtThreshold = errors.New("findings at or above the failure threshold")

type options struct {
	catalog     string
	clientName  string
	format      string
	output      string
	policyPath  string
	extended    bool
	concurrency int
	failOn      string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "gapcheck",
		Short: "Find estate-planning gaps in client account designations",
		Long: `gapcheck runs the designation rule engine over a catalog of client records.

Each client is checked for missing, stale and failed designations, liquidity
risk at death and life events that invalidate an existing plan. Findings are
printed ordered by severity, followed by a risk level for every account.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.catalog, "catalog", "c", "", "Client catalog file (JSON or YAML)")
	flags.StringVarP(&opts.clientName, "client", "n", "", "Evaluate only the named client")
	flags.StringVarP(&opts.format, "format", "f", "text", "Output format: "+formatNames())
	flags.StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout (extension added when missing)")
	flags.StringVarP(&opts.policyPath, "policy", "p", "", "Policy file or directory with firm-specific rules")
	flags.BoolVar(&opts.extended, "extended", false, "Also run the extended designation and life-event rules")
	flags.IntVar(&opts.concurrency, "concurrency", 4, "Number of clients evaluated at once")
	flags.StringVar(&opts.failOn, "fail-on", "", "Exit non-zero when a finding at or above this severity is reported")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, opts *options) error {
	logger, err := newLogger(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	format, err := finding.ParseExportFormat(opts.format)
	if err != nil {
		return err
	}

	var threshold finding.Severity
	if opts.failOn != "" {
		if threshold, err = finding.ParseSeverity(opts.failOn); err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
	}

	catalog, err := client.LoadCatalog(opts.catalog)
	if err != nil {
		return err
	}
	clients := catalog.Clients()
	if opts.clientName != "" {
		c, err := catalog.Find(opts.clientName)
		if err != nil {
			return err
		}
		clients = []*client.Client{c}
	}

	engineOpts := []rules.Option{
		rules.WithLogger(logger),
		rules.WithConcurrency(opts.concurrency),
	}
	if opts.extended {
		engineOpts = append(engineOpts, rules.WithExtendedRules())
	}
	if opts.policyPath != "" {
		set, err := policy.Load(opts.policyPath)
		if err != nil {
			return err
		}
		logger.Info("policy loaded", "policy", set.Name(), "rules", set.Len())
		engineOpts = append(engineOpts, rules.WithChecker(set))
	}

	engine, err := rules.New(engineOpts...)
	if err != nil {
		return err
	}

	reports, err := engine.EvaluateAll(ctx, clients)
	if err != nil {
		return err
	}

	if opts.output != "" {
		path, err := writeReportFile(opts.output, format, reports)
		if err != nil {
			return err
		}
		logger.Info("report written", "path", path, "clients", len(reports))
	} else if err := writeReports(stdout, format, reports); err != nil {
		return err
	}

	if threshold != "" {
		for _, r := range reports {
			filter := finding.Filter{MinSeverity: threshold}
			if len(filter.Apply(r.Findings)) > 0 {
				return errFindingsAtThreshold
			}
		}
	}
	return nil
}

func formatNames() string {
	formats := finding.AllExportFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("--log-format: unknown format %q", format)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
