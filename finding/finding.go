package finding

import (
	"fmt"
	"strings"
)

// PortfolioAccountType is the account type label carried by findings that
// concern the whole portfolio rather than one account.
const PortfolioAccountType = "ALL"

// Finding represents one estate-planning gap detected for a client.
// Findings are values: rule sets build them once and nothing modifies them
// afterwards.
type Finding struct {
	// ID is a stable identifier for the finding. It is derived from the
	// client, rule and account so repeated evaluations produce the same ID.
	ID string `json:"id,omitempty"`

	// Severity indicates how urgently the gap needs fixing.
	Severity Severity `json:"severity"`

	// AccountID identifies the account the finding belongs to. Nil means
	// the finding concerns the whole portfolio.
	AccountID *string `json:"account_id"`

	// AccountType is the type label of the owning account, or "ALL" for
	// portfolio findings.
	AccountType string `json:"account_type"`

	// Rule is the short code of the rule that fired (e.g. "T1", "R7", "L2").
	Rule string `json:"rule"`

	// Category classifies the kind of gap.
	Category Category `json:"category,omitempty"`

	// Issue is a one-line statement of the problem.
	Issue string `json:"issue"`

	// Consequence describes what happens on death if nothing changes.
	Consequence string `json:"consequence"`

	// Action is the recommended remediation.
	Action string `json:"action"`
}

// ForAccount returns a finding owned by the account with the given id and
// type label.
func ForAccount(accountID, accountType string, severity Severity, rule string, category Category, issue, consequence, action string) Finding {
	id := accountID
	return Finding{
		Severity:    severity,
		AccountID:   &id,
		AccountType: accountType,
		Rule:        rule,
		Category:    category,
		Issue:       issue,
		Consequence: consequence,
		Action:      action,
	}
}

// ForPortfolio returns a finding that concerns every account.
func ForPortfolio(severity Severity, rule string, category Category, issue, consequence, action string) Finding {
	return Finding{
		Severity:    severity,
		AccountType: PortfolioAccountType,
		Rule:        rule,
		Category:    category,
		Issue:       issue,
		Consequence: consequence,
		Action:      action,
	}
}

// IsPortfolio returns true if the finding is not tied to a single account.
func (f Finding) IsPortfolio() bool {
	return f.AccountID == nil
}

// BelongsTo returns true if the finding is owned by the given account.
func (f Finding) BelongsTo(accountID string) bool {
	return f.AccountID != nil && *f.AccountID == accountID
}

// Account returns the owning account id, or "" for portfolio findings.
func (f Finding) Account() string {
	if f.AccountID == nil {
		return ""
	}
	return *f.AccountID
}

// Family returns the rule family letter ("T", "R", "L", "C"), or "" when the
// rule code is empty.
func (f Finding) Family() string {
	if f.Rule == "" {
		return ""
	}
	return strings.ToUpper(f.Rule[:1])
}

// Validate checks if the finding has all required fields and valid values.
func (f Finding) Validate() error {
	if !f.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", f.Severity)
	}
	if f.Rule == "" {
		return fmt.Errorf("rule is required")
	}
	if f.AccountType == "" {
		return fmt.Errorf("account type is required")
	}
	if f.AccountID != nil && *f.AccountID == "" {
		return fmt.Errorf("account id must be nil or non-empty")
	}
	if f.AccountID == nil && f.AccountType != PortfolioAccountType {
		return fmt.Errorf("portfolio finding must have account type %s, got %s", PortfolioAccountType, f.AccountType)
	}
	if f.Category != "" && !f.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", f.Category)
	}
	if f.Issue == "" {
		return fmt.Errorf("issue is required")
	}
	if f.Consequence == "" {
		return fmt.Errorf("consequence is required")
	}
	if f.Action == "" {
		return fmt.Errorf("action is required")
	}
	return nil
}
