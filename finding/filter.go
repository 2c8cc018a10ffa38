package finding

import (
	"fmt"
	"slices"
)

// Filter represents criteria for selecting findings.
type Filter struct {
	// AccountID keeps only findings owned by this account.
	AccountID string `json:"account_id,omitempty"`

	// PortfolioOnly keeps only findings not tied to an account.
	PortfolioOnly bool `json:"portfolio_only,omitempty"`

	// Severities filters by one or more severity levels.
	Severities []Severity `json:"severities,omitempty"`

	// Categories filters by one or more categories.
	Categories []Category `json:"categories,omitempty"`

	// Rules filters by rule code.
	Rules []string `json:"rules,omitempty"`

	// MinSeverity keeps findings at least this urgent.
	MinSeverity Severity `json:"min_severity,omitempty"`
}

// Matches returns true if the given finding matches all filter criteria.
func (f *Filter) Matches(finding Finding) bool {
	if f.AccountID != "" && !finding.BelongsTo(f.AccountID) {
		return false
	}
	if f.PortfolioOnly && !finding.IsPortfolio() {
		return false
	}
	if len(f.Severities) > 0 && !slices.Contains(f.Severities, finding.Severity) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, finding.Category) {
		return false
	}
	if len(f.Rules) > 0 && !slices.Contains(f.Rules, finding.Rule) {
		return false
	}
	if f.MinSeverity != "" && finding.Severity.Rank() > f.MinSeverity.Rank() {
		return false
	}
	return true
}

// Apply returns the findings that match the filter, in their original order.
func (f *Filter) Apply(findings []Finding) []Finding {
	var out []Finding
	for _, finding := range findings {
		if f.Matches(finding) {
			out = append(out, finding)
		}
	}
	return out
}

// Validate checks if the filter configuration is valid.
func (f *Filter) Validate() error {
	for _, sev := range f.Severities {
		if !sev.IsValid() {
			return fmt.Errorf("invalid severity in filter: %s", sev)
		}
	}
	for _, cat := range f.Categories {
		if !cat.IsValid() {
			return fmt.Errorf("invalid category in filter: %s", cat)
		}
	}
	if f.MinSeverity != "" && !f.MinSeverity.IsValid() {
		return fmt.Errorf("invalid min_severity in filter: %s", f.MinSeverity)
	}
	if f.AccountID != "" && f.PortfolioOnly {
		return fmt.Errorf("account_id and portfolio_only are mutually exclusive")
	}
	return nil
}

// Counts holds the number of findings at each severity.
type Counts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Count tallies findings by severity. Unknown severities only add to Total.
func Count(findings []Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		}
		c.Total++
	}
	return c
}

// AccountGroup is the findings owned by one account, or by the portfolio
// when AccountID is empty.
type AccountGroup struct {
	AccountID   string
	AccountType string
	Findings    []Finding
}

// GroupByAccount groups findings by owning account. Groups appear in the
// order their first finding appears; findings keep their order within a
// group. Portfolio findings form a single group with an empty AccountID.
func GroupByAccount(findings []Finding) []AccountGroup {
	var groups []AccountGroup
	index := make(map[string]int)
	for _, f := range findings {
		key := f.Account()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, AccountGroup{AccountID: key, AccountType: f.AccountType})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups
}
