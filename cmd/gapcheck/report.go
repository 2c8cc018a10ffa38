package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/vesta-ai/estate/finding"
	"github.com/vesta-ai/estate/rules"
)

type accountRisk struct {
	AccountID string          `json:"account_id"`
	Type      string          `json:"type"`
	Balance   float64         `json:"balance"`
	Risk      rules.RiskLevel `json:"risk"`
}

type clientReport struct {
	Client   string            `json:"client"`
	Counts   finding.Counts    `json:"counts"`
	Accounts []accountRisk     `json:"accounts"`
	Findings []finding.Finding `json:"findings"`
}

func summarize(r rules.Report) clientReport {
	out := clientReport{
		Client:   r.Client.Name,
		Counts:   finding.Count(r.Findings),
		Accounts: make([]accountRisk, 0, len(r.Client.Accounts)),
		Findings: r.Findings,
	}
	if out.Findings == nil {
		out.Findings = []finding.Finding{}
	}
	for _, a := range r.Client.Accounts {
		out.Accounts = append(out.Accounts, accountRisk{
			AccountID: a.ID,
			Type:      a.Type.String(),
			Balance:   a.Balance,
			Risk:      r.Risk(a.ID),
		})
	}
	return out
}

// writeReportFile writes the reports to path, adding the format's file
// extension when path has none. It returns the path written.
func writeReportFile(path string, format finding.ExportFormat, reports []rules.Report) (string, error) {
	if filepath.Ext(path) == "" {
		path += format.FileExtension()
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeReports(f, format, reports); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}

// writeReports prints the reports in the requested format. CSV lists the
// findings of every client in a single table.
func writeReports(w io.Writer, format finding.ExportFormat, reports []rules.Report) error {
	switch format {
	case finding.FormatJSON:
		summaries := make([]clientReport, 0, len(reports))
		for _, r := range reports {
			summaries = append(summaries, summarize(r))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)

	case finding.FormatCSV:
		var all []finding.Finding
		for _, r := range reports {
			all = append(all, r.Findings...)
		}
		return finding.Export(w, finding.FormatCSV, all)

	default:
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := writeText(w, summarize(r)); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeText(w io.Writer, s clientReport) error {
	fmt.Fprintf(w, "== %s: %d findings (%d critical, %d high, %d medium, %d low) ==\n",
		s.Client, s.Counts.Total, s.Counts.Critical, s.Counts.High, s.Counts.Medium, s.Counts.Low)

	if len(s.Accounts) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, a := range s.Accounts {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", a.AccountID, a.Type, a.Risk)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(s.Findings) == 0 {
		_, err := fmt.Fprintln(w, "No gaps found.")
		return err
	}
	fmt.Fprintln(w)
	return finding.Export(w, finding.FormatText, s.Findings)
}
