package policy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

// Set is a compiled group of policy rules. It is immutable and safe for
// concurrent use, and satisfies rules.Checker.
type Set struct {
	name  string
	rules []*rule
}

type rule struct {
	id           string
	severity     finding.Severity
	scope        Scope
	accountTypes []client.AccountType
	program      cel.Program
	issue        string
	consequence  string
	action       string
}

// newEnv declares the variables available to policy expressions.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("account", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("client", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// Compile validates every rule in file and compiles its expression. All
// problems are reported together in an error matching
// estate.ErrInvalidConfig.
func Compile(file File) (*Set, error) {
	env, err := newEnv()
	if err != nil {
		return nil, estate.NewInternalError("policy.Compile", fmt.Errorf("create CEL environment: %w", err))
	}

	set := &Set{name: file.Name}
	if set.name == "" {
		set.name = "policy"
	}

	var errs []error
	seen := make(map[string]bool, len(file.Rules))
	for i, rc := range file.Rules {
		r, err := compileRule(env, rc)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d (%s): %w", i, rc.ID, err))
			continue
		}
		if seen[r.id] {
			errs = append(errs, fmt.Errorf("rule %d: duplicate id %q", i, r.id))
			continue
		}
		seen[r.id] = true
		set.rules = append(set.rules, r)
	}
	if len(errs) > 0 {
		return nil, estate.NewConfigurationError("policy.Compile", errors.Join(errs...)).
			WithContext(map[string]any{"policy": set.name})
	}
	return set, nil
}

func compileRule(env *cel.Env, rc RuleConfig) (*rule, error) {
	id := strings.TrimSpace(rc.ID)
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	severity, err := finding.ParseSeverity(rc.Severity)
	if err != nil {
		return nil, err
	}
	scope := rc.Scope
	if scope == "" {
		scope = ScopeAccount
	}
	if scope != ScopeAccount && scope != ScopeClient {
		return nil, fmt.Errorf("invalid scope: %s", rc.Scope)
	}
	if scope == ScopeClient && len(rc.AccountTypes) > 0 {
		return nil, fmt.Errorf("account_types only applies to account scope")
	}
	if rc.Issue == "" || rc.Consequence == "" || rc.Action == "" {
		return nil, fmt.Errorf("issue, consequence and action are required")
	}
	if strings.TrimSpace(rc.When) == "" {
		return nil, fmt.Errorf("when expression is required")
	}

	ast, iss := env.Compile(rc.When)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", rc.When, iss.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q must produce a bool, got %s", rc.When, out)
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}

	r := &rule{
		id:          id,
		severity:    severity,
		scope:       scope,
		program:     program,
		issue:       rc.Issue,
		consequence: rc.Consequence,
		action:      rc.Action,
	}
	for _, t := range rc.AccountTypes {
		r.accountTypes = append(r.accountTypes, client.AccountType(t))
	}
	return r, nil
}

// Name returns the policy set's name.
func (s *Set) Name() string {
	return s.name
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// Check evaluates every rule against c. Account rules run for each matching
// account in account order, then client rules run once.
func (s *Set) Check(c *client.Client) ([]finding.Finding, error) {
	clientVars := clientActivation(c)

	var out []finding.Finding
	for _, r := range s.rules {
		if r.scope != ScopeAccount {
			continue
		}
		for i := range c.Accounts {
			a := &c.Accounts[i]
			if len(r.accountTypes) > 0 && !slices.Contains(r.accountTypes, a.Type) {
				continue
			}
			matched, err := r.eval(map[string]any{"account": accountActivation(a), "client": clientVars})
			if err != nil {
				return nil, fmt.Errorf("rule %s on account %s: %w", r.id, a.ID, err)
			}
			if matched {
				out = append(out, finding.ForAccount(a.ID, a.Type.String(), r.severity, r.id, finding.CategoryCustom,
					r.issue, r.consequence, r.action))
			}
		}
	}

	for _, r := range s.rules {
		if r.scope != ScopeClient {
			continue
		}
		matched, err := r.eval(map[string]any{"client": clientVars, "account": map[string]any{}})
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.id, err)
		}
		if matched {
			out = append(out, finding.ForPortfolio(r.severity, r.id, finding.CategoryCustom,
				r.issue, r.consequence, r.action))
		}
	}
	return out, nil
}

func (r *rule) eval(vars map[string]any) (bool, error) {
	val, _, err := r.program.Eval(vars)
	if err != nil {
		return false, err
	}
	matched, ok := val.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression produced %T, want bool", val.Value())
	}
	return matched, nil
}
