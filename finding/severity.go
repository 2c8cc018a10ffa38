package finding

import (
	"fmt"
	"strings"
)

// Severity represents how urgently a gap needs fixing.
type Severity string

const (
	// SeverityCritical indicates money will reach the wrong person or the
	// designation has already failed.
	// Examples: Ex-spouse still successor holder, deceased beneficiary
	SeverityCritical Severity = "CRITICAL"

	// SeverityHigh indicates avoidable tax or probate exposure.
	// Examples: No designation on an RRSP, no will on file
	SeverityHigh Severity = "HIGH"

	// SeverityMedium indicates a sub-optimal but working setup.
	// Examples: Spouse named beneficiary rather than successor holder
	SeverityMedium Severity = "MEDIUM"

	// SeverityLow indicates housekeeping.
	SeverityLow Severity = "LOW"
)

// rankUnknown sorts unrecognized severities after every known level.
const rankUnknown = 4

// severityRanks maps severity levels to their sort position. Lower ranks
// come first.
var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the sort position of the severity: CRITICAL=0, HIGH=1,
// MEDIUM=2, LOW=3. Unrecognized severities rank last.
func (s Severity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return rankUnknown
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value, ignoring case.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// CompareSeverity compares two severity levels by urgency.
// Returns:
//   - negative if s1 is less urgent than s2
//   - zero if s1 == s2
//   - positive if s1 is more urgent than s2
func CompareSeverity(s1, s2 Severity) int {
	return s2.Rank() - s1.Rank()
}

// AllSeverities returns all valid severity levels in order from critical to low.
func AllSeverities() []Severity {
	return []Severity{
		SeverityCritical,
		SeverityHigh,
		SeverityMedium,
		SeverityLow,
	}
}
