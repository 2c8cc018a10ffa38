package rules

import (
	"fmt"

	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// rrspRules checks a registered retirement savings account. Unlike the TFSA
// and RRIF sets there is no check for a deceased successor annuitant.
func rrspRules(_ *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if !named(a, client.RoleSuccessorAnnuitant) && !named(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityHigh, "R1", finding.CategoryMissingDesignation,
			"No beneficiary or successor annuitant named on RRSP",
			fmt.Sprintf("Full RRSP value added to income in year of death. Potential tax bill: %s+.",
				formatCurrency(estimatedTax(a.Balance))),
			"Name spouse as successor annuitant. If no spouse, name a beneficiary.")
	}

	if exSpouse(a, client.RoleSuccessorAnnuitant) {
		emit(finding.SeverityCritical, "R3", finding.CategoryStaleDesignation,
			"Ex-spouse still listed as successor annuitant on RRSP",
			"Ex-spouse legally receives the entire RRSP. Your will cannot override it.",
			"Update immediately. Highest priority fix.")
	}

	if deceased(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityCritical, "R6", finding.CategoryFailedDesignation,
			"Primary beneficiary on RRSP is deceased",
			"Designation failed. Full RRSP collapses into estate as taxable income.",
			"Update beneficiary immediately.")
	}

	return out
}
