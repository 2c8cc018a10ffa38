package finding

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExportFormat represents the format for exporting findings.
type ExportFormat string

const (
	// FormatJSON exports findings as a JSON array.
	FormatJSON ExportFormat = "json"

	// FormatCSV exports findings as comma-separated values with a header row.
	FormatCSV ExportFormat = "csv"

	// FormatText exports findings as the plain-text block handed to the
	// advisor assistant as context.
	FormatText ExportFormat = "text"
)

// IsValid returns true if the export format is valid.
func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatText:
		return true
	default:
		return false
	}
}

// String returns the string representation of the export format.
func (f ExportFormat) String() string {
	return string(f)
}

// FileExtension returns the file extension for the export format.
func (f ExportFormat) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}

// ParseExportFormat parses a string into an ExportFormat value.
// Returns an error if the string is not a valid export format.
func ParseExportFormat(s string) (ExportFormat, error) {
	format := ExportFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return format, nil
}

// AllExportFormats returns all valid export formats.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{
		FormatJSON,
		FormatCSV,
		FormatText,
	}
}

// csvHeader is the header row written by the CSV exporter.
var csvHeader = []string{"id", "severity", "account_id", "account_type", "rule", "category", "issue", "consequence", "action"}

// Export writes findings to w in the given format. Findings are written in
// the order given.
func Export(w io.Writer, format ExportFormat, findings []Finding) error {
	switch format {
	case FormatJSON:
		if findings == nil {
			findings = []Finding{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return fmt.Errorf("failed to encode findings: %w", err)
		}
		return nil

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, f := range findings {
			record := []string{
				f.ID,
				f.Severity.String(),
				f.Account(),
				f.AccountType,
				f.Rule,
				f.Category.String(),
				f.Issue,
				f.Consequence,
				f.Action,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write csv record for rule %s: %w", f.Rule, err)
			}
		}
		cw.Flush()
		return cw.Error()

	case FormatText:
		_, err := io.WriteString(w, RenderText(findings))
		return err

	default:
		return fmt.Errorf("invalid export format: %s", format)
	}
}

// RenderText renders findings as the text block used as assistant context.
// Each finding becomes a "- [SEVERITY] Rule CODE: issue" line followed by
// indented "Consequence:" and "Action:" lines, with a blank line between
// findings. An empty list renders as an empty string.
func RenderText(findings []Finding) string {
	var b strings.Builder
	for i, f := range findings {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- [%s] Rule %s: %s\n", f.Severity, f.Rule, f.Issue)
		fmt.Fprintf(&b, "  Consequence: %s\n", f.Consequence)
		fmt.Fprintf(&b, "  Action: %s\n", f.Action)
	}
	return b.String()
}
