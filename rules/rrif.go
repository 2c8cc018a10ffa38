package rules

import (
	"fmt"

	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

const (
	// liquidityThreshold is the RRIF balance above which estate liquidity
	// is checked.
	liquidityThreshold = 100000

	// liquidityCoverage is the share of the RRIF balance that non-registered
	// assets must reach to be considered enough to pay the tax bill.
	liquidityCoverage = 0.3
)

// rrifRules checks a registered retirement income fund's designations and
// the client's liquidity against it.
func rrifRules(c *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if deceased(a, client.RoleSuccessorAnnuitant) {
		emit(finding.SeverityCritical, "R6", finding.CategoryFailedDesignation,
			"Successor annuitant on RRIF is deceased",
			fmt.Sprintf("RRIF balance of %s collapses into estate. Tax bill could reach %s+.",
				formatCurrency(a.Balance), formatCurrency(estimatedTax(a.Balance))),
			"Update successor annuitant immediately. Review estate liquidity.")
	}

	if deceased(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityCritical, "R6", finding.CategoryFailedDesignation,
			"Primary beneficiary on RRIF is deceased",
			"Designation failed. Full RRIF value enters estate as taxable income.",
			"Update beneficiary immediately.")
	}

	out = append(out, liquidityRule(c, a)...)
	return out
}

// liquidityRule fires when a large RRIF is not covered by the client's
// non-registered assets across every account.
func liquidityRule(c *client.Client, a *client.Account) []finding.Finding {
	nonRegistered := c.TotalBalance(client.AccountNonRegistered)
	if a.Balance <= liquidityThreshold || nonRegistered >= a.Balance*liquidityCoverage {
		return nil
	}
	return []finding.Finding{finding.ForAccount(a.ID, a.Type.String(), finding.SeverityHigh, "R7", finding.CategoryLiquidity,
		"Large RRIF with insufficient liquid assets to cover estate tax bill",
		fmt.Sprintf("RRIF: %s. Potential tax: %s+. Non-registered assets: only %s.",
			formatCurrency(a.Balance), formatCurrency(estimatedTax(a.Balance)), formatCurrency(nonRegistered)),
		"Review estate liquidity with a financial advisor. Consider life insurance.")}
}
