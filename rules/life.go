package rules

import (
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// lifeEventRules checks whole-client circumstances. L1 and L2 fire on the
// current marital status; records carry nothing that says how recent the
// change was.
func lifeEventRules(c *client.Client) []finding.Finding {
	var out []finding.Finding

	if c.MaritalStatus == client.MaritalMarried && !anyDesignation(c, spouseNamed) {
		out = append(out, finding.ForPortfolio(finding.SeverityHigh, "L1", finding.CategoryLifeEvent,
			"Recently married but spouse not named on any account",
			"Spouse has no legal claim to any registered accounts. Marriage does not automatically update designations.",
			"Review and update all account designations. Update your will."))
	}

	if c.MaritalStatus == client.MaritalDivorced && anyDesignation(c, exSpouse) {
		out = append(out, finding.ForPortfolio(finding.SeverityCritical, "L2", finding.CategoryLifeEvent,
			"Recently divorced but ex-spouse still named on one or more accounts",
			"Divorce does NOT remove designations in Canada. Ex-spouse will legally inherit every account still in their name.",
			"Treat this as an emergency. Update every designation today."))
	}

	if !c.HasWill {
		out = append(out, finding.ForPortfolio(finding.SeverityHigh, "L0a", finding.CategoryEstateDocuments,
			"No will on file",
			"Provincial intestacy laws distribute everything by formula — not your wishes. No guardian named for minor children.",
			"Create a will as soon as possible."))
	}

	return out
}

func spouseNamed(a *client.Account, role client.Role) bool {
	return related(a, role, client.RelationshipSpouse)
}
