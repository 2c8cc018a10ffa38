package rules

import "github.com/vesta-ai/estate/finding"

// RiskLevel is the coarse risk shown for one account.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskClean    RiskLevel = "clean"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// Classify reduces the findings owned by accountID to a single risk level:
// the most severe of critical, high and medium among them, or clean when
// none belong to the account. Accounts whose findings are all LOW (or of an
// unrecognized severity) are reported as medium.
func Classify(accountID string, findings []finding.Finding) RiskLevel {
	var hits, critical, high, medium bool
	for _, f := range findings {
		if !f.BelongsTo(accountID) {
			continue
		}
		hits = true
		switch f.Severity {
		case finding.SeverityCritical:
			critical = true
		case finding.SeverityHigh:
			high = true
		case finding.SeverityMedium:
			medium = true
		}
	}

	switch {
	case critical:
		return RiskCritical
	case high:
		return RiskHigh
	case medium:
		return RiskMedium
	case !hits:
		return RiskClean
	default:
		return RiskMedium
	}
}
