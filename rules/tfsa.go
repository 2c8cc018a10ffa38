package rules

import (
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// tfsaRules checks a tax-free savings account's successor holder and
// primary beneficiary.
func tfsaRules(_ *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if !named(a, client.RoleSuccessorHolder) && !named(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityHigh, "T1", finding.CategoryMissingDesignation,
			"No successor holder or beneficiary named on TFSA",
			"Account loses tax-free status on death and enters estate — probate delays and tax on growth after death.",
			"Name a successor holder if married. Name a beneficiary at minimum.")
	}

	if exSpouse(a, client.RoleSuccessorHolder) {
		emit(finding.SeverityCritical, "T3", finding.CategoryStaleDesignation,
			"Ex-spouse still listed as successor holder on TFSA",
			"Ex-spouse inherits the entire TFSA tax-free immediately. Your will cannot override this.",
			"Update immediately — highest priority fix.")
	}

	if deceased(a, client.RoleSuccessorHolder) {
		emit(finding.SeverityCritical, "T6", finding.CategoryFailedDesignation,
			"Successor holder on TFSA is deceased",
			"Designation has failed. Account falls to estate — probate, loss of tax-free status.",
			"Name a new successor holder immediately.")
	}

	if deceased(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityCritical, "T6", finding.CategoryFailedDesignation,
			"Primary beneficiary on TFSA is deceased",
			"Designation has failed. Account falls to estate.",
			"Update to a living person immediately.")
	}

	return out
}

// accountEmitter returns a helper that appends findings owned by a to out.
func accountEmitter(a *client.Account, out *[]finding.Finding) func(finding.Severity, string, finding.Category, string, string, string) {
	return func(sev finding.Severity, rule string, cat finding.Category, issue, consequence, action string) {
		*out = append(*out, finding.ForAccount(a.ID, a.Type.String(), sev, rule, cat, issue, consequence, action))
	}
}
