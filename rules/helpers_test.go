package rules

import (
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

func person(rel client.Relationship) *client.Designation {
	return &client.Designation{Relationship: rel}
}

func exSpouseDesignation() *client.Designation {
	return &client.Designation{
		Name:              "Robert",
		Relationship:      client.RelationshipExSpouse,
		IsCurrentlySpouse: client.Bool(false),
		IsCurrentlyAlive:  client.Bool(true),
	}
}

func deceasedDesignation(rel client.Relationship) *client.Designation {
	return &client.Designation{Relationship: rel, IsCurrentlyAlive: client.Bool(false)}
}

func rulesOf(findings []finding.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func forAccount(findings []finding.Finding, id string) []finding.Finding {
	return (&finding.Filter{AccountID: id}).Apply(findings)
}

func byRule(findings []finding.Finding, rule string) []finding.Finding {
	return (&finding.Filter{Rules: []string{rule}}).Apply(findings)
}

// willed returns a client with a will and the given accounts so that only
// account rules and C5 can fire.
func willed(accounts ...client.Account) *client.Client {
	return &client.Client{
		Name:          "Test Client",
		MaritalStatus: client.MaritalSingle,
		HasWill:       true,
		Accounts:      accounts,
	}
}
