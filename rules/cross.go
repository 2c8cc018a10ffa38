package rules

import (
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// crossAccountRules checks the portfolio as a whole.
func crossAccountRules(c *client.Client) []finding.Finding {
	if len(c.Accounts) == 0 {
		return nil
	}
	for i := range c.Accounts {
		if hasAnyDesignation(&c.Accounts[i]) {
			return nil
		}
	}
	return []finding.Finding{finding.ForPortfolio(finding.SeverityCritical, "C5", finding.CategoryPortfolio,
		"No beneficiary named on any account — complete estate planning gap",
		"Entire portfolio goes through probate. Maximum tax exposure on all registered accounts.",
		"Start with your RRSP or RRIF — the tax consequences there are most severe.")}
}
