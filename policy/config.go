package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vesta-ai/estate"
)

// File is the on-disk form of a policy file.
type File struct {
	// Name labels the policy set in logs and errors.
	Name string `yaml:"name"`

	// Rules are the policy rules, evaluated in file order.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is one advisor-authored rule.
type RuleConfig struct {
	// ID is the rule code reported on findings (e.g. "X1").
	ID string `yaml:"id"`

	// Severity is one of CRITICAL, HIGH, MEDIUM or LOW (case-insensitive).
	Severity string `yaml:"severity"`

	// Scope is "account" (evaluated per account, default) or "client"
	// (evaluated once, producing a portfolio finding).
	Scope Scope `yaml:"scope,omitempty"`

	// AccountTypes restricts an account-scoped rule to these types.
	// Empty means every account.
	AccountTypes []string `yaml:"account_types,omitempty"`

	// When is a CEL expression that must evaluate to a boolean. Account
	// rules see the variables "account" and "client"; client rules see
	// "client".
	When string `yaml:"when"`

	Issue       string `yaml:"issue"`
	Consequence string `yaml:"consequence"`
	Action      string `yaml:"action"`
}

// Scope selects what a rule is evaluated against.
type Scope string

const (
	ScopeAccount Scope = "account"
	ScopeClient  Scope = "client"
)

// Load reads and compiles a policy file from the given path.
// If the path is a directory, it looks for policies.yaml or policies.yml in
// that directory.
func Load(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, estate.NewNotFoundError("policy.Load", fmt.Errorf("%w: failed to stat path: %w", estate.ErrNotFound, err)).
			WithContext(map[string]any{"path": path})
	}

	filePath := path
	if info.IsDir() {
		filePath = ""
		for _, name := range []string{"policies.yaml", "policies.yml"} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				filePath = candidate
				break
			}
		}
		if filePath == "" {
			return nil, estate.NewNotFoundError("policy.Load", fmt.Errorf("%w: no policies.yaml or policies.yml found in %s", estate.ErrNotFound, path))
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, estate.NewNotFoundError("policy.Load", fmt.Errorf("%w: failed to read policy file: %w", estate.ErrNotFound, err)).
			WithContext(map[string]any{"path": filePath})
	}
	return Parse(data)
}

// Parse decodes and compiles a policy document.
func Parse(data []byte) (*Set, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, estate.NewConfigurationError("policy.Parse", fmt.Errorf("failed to parse policy file: %w", err))
	}
	return Compile(file)
}
