package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
	"github.com/vesta-ai/estate/input"
)

const (
	// newbornMonths is the age up to which a child counts as a new arrival.
	newbornMonths = 12

	// commonLawMonths is the cohabitation period after which a partner is
	// treated as common-law.
	commonLawMonths = 12

	// staleWillYears is the age at which a will is considered outdated.
	staleWillYears = 10
)

// nonSpouseAdults are beneficiary relationships whose recipients pay the full
// income tax on a collapsed RRSP.
var nonSpouseAdults = []client.Relationship{
	client.RelationshipBrother,
	client.RelationshipSister,
	client.RelationshipSibling,
	client.RelationshipFriend,
	client.RelationshipParent,
	client.RelationshipMother,
	client.RelationshipFather,
}

// extendedAccountRules are the additional per-account checks enabled by
// WithExtendedRules.
var extendedAccountRules = map[client.AccountType]func(*client.Client, *client.Account) []finding.Finding{
	client.AccountTFSA: tfsaExtendedRules,
	client.AccountRRSP: rrspExtendedRules,
	client.AccountRRIF: rrifExtendedRules,
}

func tfsaExtendedRules(c *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if c.MaritalStatus == client.MaritalMarried &&
		related(a, client.RoleBeneficiaryPrimary, client.RelationshipSpouse) &&
		!named(a, client.RoleSuccessorHolder) {
		emit(finding.SeverityMedium, "T2", finding.CategoryDesignationQuality,
			"Spouse named as beneficiary instead of successor holder",
			"Spouse receives the money tax-free but the account itself closes, along with its contribution room and tax-free status.",
			"Upgrade the designation from beneficiary to successor holder so your spouse keeps the account itself.")
	}

	if minorChildBeneficiary(c, a) {
		emit(finding.SeverityMedium, "T5", finding.CategoryDesignationQuality,
			"Minor child named as TFSA beneficiary",
			"Minors cannot receive large sums directly. A court-appointed trustee controls the funds until the age of majority, adding legal costs and delays.",
			"Consider naming the other parent instead, or set up a formal trust for the child.")
	}

	out = append(out, contingentRule(a)...)
	return out
}

func rrspExtendedRules(c *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if c.MaritalStatus == client.MaritalMarried &&
		related(a, client.RoleBeneficiaryPrimary, client.RelationshipSpouse) &&
		!named(a, client.RoleSuccessorAnnuitant) {
		emit(finding.SeverityMedium, "R2", finding.CategoryDesignationQuality,
			"Spouse named as beneficiary instead of successor annuitant on RRSP",
			"Spouse still gets the spousal rollover, but the account closes and is paid out as a lump sum transfer instead of passing intact.",
			"Upgrade the designation to successor annuitant for a cleaner transfer with the same tax benefit.")
	}

	if exSpouse(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityCritical, "R3", finding.CategoryStaleDesignation,
			"Ex-spouse still listed as primary beneficiary on RRSP",
			"Ex-spouse legally receives the full RRSP value. Your will cannot override this designation.",
			"Update beneficiary designation immediately.")
	}

	if rel, ok := nonSpouseAdultBeneficiary(a); ok && a.Balance > 0 {
		emit(finding.SeverityMedium, "R4", finding.CategoryDesignationQuality,
			fmt.Sprintf("Non-spouse (%s) named as RRSP beneficiary — significant tax consequence", rel),
			fmt.Sprintf("Your %s receives the full RRSP value but it is added to their income that year. On this account balance of %s they could owe %s+ in taxes.",
				rel, formatCurrency(a.Balance), formatCurrency(truncatedTax(a.Balance))),
			"Make sure your beneficiary understands the tax bill. Consider life insurance to cover it, or confirm the designation still reflects your intent.")
	}

	if minorChildBeneficiary(c, a) {
		emit(finding.SeverityMedium, "R5", finding.CategoryDesignationQuality,
			"Minor child named as RRSP beneficiary",
			"Minor children cannot receive RRSP proceeds directly. A court-appointed trustee controls the funds until the age of majority unless the child qualifies as a financially dependent minor.",
			"Confirm whether the child qualifies as a dependent and document it. Otherwise name the other parent or set up a trust.")
	}

	out = append(out, contingentRule(a)...)
	return out
}

func rrifExtendedRules(_ *client.Client, a *client.Account) []finding.Finding {
	var out []finding.Finding
	emit := accountEmitter(a, &out)

	if !named(a, client.RoleSuccessorAnnuitant) && !named(a, client.RoleBeneficiaryPrimary) {
		emit(finding.SeverityHigh, "R1", finding.CategoryMissingDesignation,
			"No beneficiary or successor annuitant named on RRIF",
			fmt.Sprintf("Full RRIF value added to income in year of death. Potential tax bill: %s+. Account also enters probate.",
				formatCurrency(estimatedTax(a.Balance))),
			"Name your spouse as successor annuitant. If no spouse, name a beneficiary.")
	}

	if exSpouse(a, client.RoleSuccessorAnnuitant) {
		emit(finding.SeverityCritical, "R3", finding.CategoryStaleDesignation,
			"Ex-spouse still listed as successor annuitant on RRIF",
			"Ex-spouse steps into your RRIF and keeps receiving payments. Your will cannot override it.",
			"Update immediately. Highest priority fix.")
	}

	out = append(out, contingentRule(a)...)
	return out
}

// contingentRule fires when a primary beneficiary has no backup.
func contingentRule(a *client.Account) []finding.Finding {
	if !named(a, client.RoleBeneficiaryPrimary) || named(a, client.RoleBeneficiaryContingent) {
		return nil
	}
	return []finding.Finding{finding.ForAccount(a.ID, a.Type.String(), finding.SeverityMedium, "C6", finding.CategoryDesignationQuality,
		fmt.Sprintf("No contingent beneficiary named on %s", a.Type),
		"If your primary beneficiary dies before you and the designation is not updated, the account falls to your estate.",
		"Name a contingent beneficiary on this account as a backup.")}
}

// extendedLifeEventRules are the additional whole-client checks enabled by
// WithExtendedRules. Elapsed periods are measured against now.
func extendedLifeEventRules(c *client.Client, now time.Time) []finding.Finding {
	var out []finding.Finding

	if hasNewborn(c) && !childDesignated(c) {
		out = append(out, finding.ForPortfolio(finding.SeverityMedium, "L3", finding.CategoryLifeEvent,
			"New child not reflected in any account designations",
			"Your new child receives nothing from your registered accounts by default, and no guardian is named if both parents die.",
			"Review all account designations with your new child in mind. Update your will and name a guardian."))
	}

	if months, ok := cohabitationMonths(c.CurrentPartner, now); ok && months >= commonLawMonths && !anyDesignation(c, commonLawNamed) {
		out = append(out, finding.ForPortfolio(finding.SeverityMedium, "L5", finding.CategoryLifeEvent,
			fmt.Sprintf("Common-law partner of %d months not named on any account", months),
			"A common-law partner qualifies for the same tax advantages as a married spouse, but only if properly designated.",
			"Update designations to reflect your common-law relationship. Confirm your province's definition applies."))
	}

	if updated, ok := c.WillUpdatedAt(); ok {
		if years := int(now.Sub(updated).Hours()/24) / 365; years >= staleWillYears {
			out = append(out, finding.ForPortfolio(finding.SeverityMedium, "L0b", finding.CategoryEstateDocuments,
				fmt.Sprintf("Will has not been updated in %d years", years),
				"A will that predates major life events may no longer reflect your wishes. Named executors or beneficiaries may have died or become estranged.",
				"Review your will with an estate lawyer. Confirm the executor and beneficiaries still reflect your wishes."))
		}
	}

	return out
}

// extendedCrossAccountRules fires C2 when registered accounts are only
// partly designated. Non-registered accounts cannot carry designations and
// are not counted.
func extendedCrossAccountRules(c *client.Client) []finding.Finding {
	var designated int
	var missing []string
	for i := range c.Accounts {
		a := &c.Accounts[i]
		if !a.Type.IsRegistered() {
			continue
		}
		if hasAnyDesignation(a) {
			designated++
		} else {
			missing = append(missing, a.Type.String())
		}
	}
	if designated == 0 || len(missing) == 0 {
		return nil
	}
	types := strings.Join(missing, ", ")
	return []finding.Finding{finding.ForPortfolio(finding.SeverityHigh, "C2", finding.CategoryPortfolio,
		fmt.Sprintf("Beneficiaries named on some accounts but missing on others: %s", types),
		"Designated accounts transfer quickly to your beneficiaries while the rest go through probate with full tax exposure.",
		fmt.Sprintf("Complete beneficiary designations on: %s.", types))}
}

// minorChildBeneficiary reports whether the primary beneficiary's name
// matches a child recorded as a minor.
func minorChildBeneficiary(c *client.Client, a *client.Account) bool {
	name, ok := input.Lookup(a, string(client.RoleBeneficiaryPrimary), fieldName).AsString()
	if !ok {
		return false
	}
	for _, child := range c.Children {
		if child.Name == name && child.IsMinor != nil && *child.IsMinor {
			return true
		}
	}
	return false
}

func nonSpouseAdultBeneficiary(a *client.Account) (client.Relationship, bool) {
	for _, rel := range nonSpouseAdults {
		if related(a, client.RoleBeneficiaryPrimary, rel) {
			return rel, true
		}
	}
	return "", false
}

func hasNewborn(c *client.Client) bool {
	for _, child := range c.Children {
		if child.AgeMonths != nil && *child.AgeMonths <= newbornMonths {
			return true
		}
	}
	return false
}

// childDesignated reports whether any account names a child as primary or
// contingent beneficiary.
func childDesignated(c *client.Client) bool {
	for i := range c.Accounts {
		a := &c.Accounts[i]
		for _, role := range []client.Role{client.RoleBeneficiaryPrimary, client.RoleBeneficiaryContingent} {
			if d := a.Designation(role); d != nil && d.Relationship.IsChild() {
				return true
			}
		}
	}
	return false
}

func commonLawNamed(a *client.Account, role client.Role) bool {
	return related(a, role, client.RelationshipCommonLaw)
}

// cohabitationMonths returns how long the client has lived with their
// partner. A recorded start date takes precedence over the stored count.
func cohabitationMonths(p *client.Partner, now time.Time) (int, bool) {
	if p == nil {
		return 0, false
	}
	if start, ok := p.CohabitingSince(); ok {
		return int(now.Sub(start).Hours()/24) / 30, true
	}
	return p.MonthsLivingTogether, true
}

// truncatedTax is the tax estimate with cents dropped.
func truncatedTax(balance float64) float64 {
	return float64(int64(balance * taxRate))
}
