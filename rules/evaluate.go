package rules

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

const opEvaluate = "rules.Evaluate"

// findingNamespace scopes the name-based UUIDs given to findings.
var findingNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("estate.finding"))

// accountRuleSets maps each supported account type to its rule set.
// Accounts of any other type are skipped.
var accountRuleSets = map[client.AccountType]func(*client.Client, *client.Account) []finding.Finding{
	client.AccountTFSA: tfsaRules,
	client.AccountRRSP: rrspRules,
	client.AccountRRIF: rrifRules,
}

// Evaluate runs the built-in rule sets over c and returns its findings,
// most severe first.
//
// Each account is checked by the rule set for its type, then the life-event
// rules and the cross-account rules run once. Findings of equal severity
// keep the order in which their rules ran. Every finding either belongs to
// one of c's accounts or to the portfolio as a whole. c is never modified,
// and evaluating the same client twice yields identical output.
//
// An error matching estate.ErrInvalidInput is returned when c is nil or
// fails validation.
func Evaluate(c *client.Client) ([]finding.Finding, error) {
	return evaluate(c, defaultConfig())
}

func evaluate(c *client.Client, cfg *config) ([]finding.Finding, error) {
	if err := c.Validate(); err != nil {
		return nil, estate.NewValidationError(opEvaluate, err)
	}

	var out []finding.Finding
	for i := range c.Accounts {
		a := &c.Accounts[i]
		rules, ok := accountRuleSets[a.Type]
		if !ok {
			continue
		}
		out = append(out, rules(c, a)...)
		if cfg.extended {
			out = append(out, extendedAccountRules[a.Type](c, a)...)
		}
	}

	out = append(out, lifeEventRules(c)...)
	if cfg.extended {
		out = append(out, extendedLifeEventRules(c, cfg.now())...)
	}

	out = append(out, crossAccountRules(c)...)
	if cfg.extended {
		out = append(out, extendedCrossAccountRules(c)...)
	}

	for _, checker := range cfg.checkers {
		found, err := checker.Check(c)
		if err != nil {
			return nil, estate.NewInternalError(opEvaluate, fmt.Errorf("checker %s: %w", checker.Name(), err)).
				WithContext(map[string]any{"client": c.Name})
		}
		for _, f := range found {
			if err := checkOwnership(c, f); err != nil {
				return nil, estate.NewInternalError(opEvaluate, fmt.Errorf("checker %s: rule %s: %w", checker.Name(), f.Rule, err)).
					WithContext(map[string]any{"client": c.Name})
			}
		}
		out = append(out, found...)
	}

	assignIDs(c, out)
	return finding.Sort(out), nil
}

// checkOwnership rejects findings that are malformed or point at an account
// the client does not hold.
func checkOwnership(c *client.Client, f finding.Finding) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.IsPortfolio() {
		return nil
	}
	if _, ok := c.Account(f.Account()); !ok {
		return fmt.Errorf("unknown account %q", f.Account())
	}
	return nil
}

// assignIDs gives each finding a name-based UUID derived from the client,
// rule, account and the number of earlier findings with the same rule and
// account. IDs are assigned in rule order so they do not depend on sorting.
func assignIDs(c *client.Client, findings []finding.Finding) {
	seen := make(map[string]int, len(findings))
	for i := range findings {
		f := &findings[i]
		key := f.Rule + "\x00" + f.Account()
		ordinal := seen[key]
		seen[key]++
		name := c.Name + "\x00" + key + "\x00" + strconv.Itoa(ordinal)
		f.ID = uuid.NewSHA1(findingNamespace, []byte(name)).String()
	}
}
