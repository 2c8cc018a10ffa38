// Package finding provides the types used to report estate-planning gaps
// detected in a client's accounts.
//
// # Core Types
//
// Finding is an immutable record of one gap:
//   - Severity, ordered CRITICAL > HIGH > MEDIUM > LOW
//   - The owning account id, or nil for portfolio-wide findings
//   - A short rule code such as "T1", "R7" or "L2"
//   - Issue, consequence and action texts for the advisor
//
// # Severity Levels
//
// Severity ranks are CRITICAL=0, HIGH=1, MEDIUM=2 and LOW=3. Unknown
// severities rank after LOW. Sort orders findings by rank and keeps equal
// severities in their original order.
//
// # Export and Filtering
//
// Findings can be exported as JSON, CSV or the plain-text block given to
// the advisor assistant, filtered by account, severity, category or rule,
// counted by severity, and grouped per account for display.
//
// Example usage:
//
//	f := finding.ForAccount("tfsa-1", "TFSA", finding.SeverityHigh, "T1",
//		finding.CategoryMissingDesignation,
//		"No successor holder or beneficiary named on TFSA",
//		"Account loses tax-free status on death and enters estate.",
//		"Name a beneficiary at minimum.",
//	)
//
//	if err := f.Validate(); err != nil {
//		log.Fatal(err)
//	}
package finding
