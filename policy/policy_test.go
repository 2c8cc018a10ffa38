package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesta-ai/estate"
	"github.com/vesta-ai/estate/client"
	"github.com/vesta-ai/estate/finding"
)

func testClient() *client.Client {
	return &client.Client{
		Name:          "Walter Okafor",
		MaritalStatus: client.MaritalWidowed,
		HasWill:       true,
		Accounts: []client.Account{
			{ID: "rrif-1", Type: client.AccountRRIF, Balance: 310000,
				BeneficiaryPrimary: &client.Designation{Name: "Daniel", Relationship: client.RelationshipSon}},
			{ID: "tfsa-1", Type: client.AccountTFSA, Balance: 400000,
				BeneficiaryPrimary: &client.Designation{Name: "Ann", Relationship: client.RelationshipFriend}},
			{ID: "rrsp-1", Type: client.AccountRRSP, Balance: 260000,
				BeneficiaryPrimary:    &client.Designation{Relationship: client.RelationshipSon},
				BeneficiaryContingent: &client.Designation{Relationship: client.RelationshipDaughter}},
		},
	}
}

func TestLoad_File(t *testing.T) {
	set, err := Load("testdata/policies.yaml")
	require.NoError(t, err)
	assert.Equal(t, "firm-policies", set.Name())
	assert.Equal(t, 3, set.Len())
}

func TestLoad_Directory(t *testing.T) {
	set, err := Load("testdata")
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, estate.ErrNotFound))

	_, err = Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, estate.ErrNotFound))
}

func TestSet_Check(t *testing.T) {
	set, err := Load("testdata/policies.yaml")
	require.NoError(t, err)

	got, err := set.Check(testClient())
	require.NoError(t, err)

	require.Len(t, got, 3)

	assert.Equal(t, "X1", got[0].Rule)
	assert.True(t, got[0].BelongsTo("rrif-1"))
	assert.Equal(t, finding.SeverityMedium, got[0].Severity)
	assert.Equal(t, finding.CategoryCustom, got[0].Category)

	assert.Equal(t, "X3", got[1].Rule)
	assert.True(t, got[1].BelongsTo("tfsa-1"))

	assert.Equal(t, "X2", got[2].Rule)
	assert.True(t, got[2].IsPortfolio())
	assert.Equal(t, finding.PortfolioAccountType, got[2].AccountType)

	for _, f := range got {
		assert.NoError(t, f.Validate())
	}
}

func TestSet_CheckClientVariables(t *testing.T) {
	set, err := Compile(File{Rules: []RuleConfig{{
		ID:          "X9",
		Severity:    "HIGH",
		Scope:       ScopeClient,
		When:        `client.marital_status == "widowed" && client.total_balance > 900000.0 && size(client.accounts) == 3 && client.accounts.exists(a, a.account_id == "rrif-1")`,
		Issue:       "i",
		Consequence: "c",
		Action:      "a",
	}}})
	require.NoError(t, err)
	assert.Equal(t, "policy", set.Name())

	got, err := set.Check(testClient())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "X9", got[0].Rule)
}

func TestSet_CheckDesignationFlags(t *testing.T) {
	set, err := Compile(File{Rules: []RuleConfig{{
		ID:          "X5",
		Severity:    "critical",
		When:        `has(account.successor_holder) && has(account.successor_holder.is_currently_alive) && !account.successor_holder.is_currently_alive`,
		Issue:       "i",
		Consequence: "c",
		Action:      "a",
	}}})
	require.NoError(t, err)

	c := &client.Client{Accounts: []client.Account{
		{ID: "a", Type: client.AccountTFSA, SuccessorHolder: &client.Designation{IsCurrentlyAlive: client.Bool(false)}},
		{ID: "b", Type: client.AccountTFSA, SuccessorHolder: &client.Designation{}},
		{ID: "c", Type: client.AccountTFSA},
	}}
	got, err := set.Check(c)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].BelongsTo("a"))
}

func TestSet_CheckRuntimeError(t *testing.T) {
	set, err := Compile(File{Rules: []RuleConfig{{
		ID: "X7", Severity: "LOW", When: `account.missing_field == 1`,
		Issue: "i", Consequence: "c", Action: "a",
	}}})
	require.NoError(t, err)

	_, err = set.Check(testClient())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X7")
}

func TestCompile_Invalid(t *testing.T) {
	valid := RuleConfig{ID: "X1", Severity: "HIGH", When: "true", Issue: "i", Consequence: "c", Action: "a"}

	tests := []struct {
		name   string
		modify func(*RuleConfig)
	}{
		{"missing id", func(r *RuleConfig) { r.ID = " " }},
		{"bad severity", func(r *RuleConfig) { r.Severity = "INFO" }},
		{"bad scope", func(r *RuleConfig) { r.Scope = "household" }},
		{"account types on client scope", func(r *RuleConfig) { r.Scope = ScopeClient; r.AccountTypes = []string{"TFSA"} }},
		{"missing texts", func(r *RuleConfig) { r.Action = "" }},
		{"missing expression", func(r *RuleConfig) { r.When = "" }},
		{"syntax error", func(r *RuleConfig) { r.When = "account.balance >" }},
		{"unknown variable", func(r *RuleConfig) { r.When = "household.size > 2" }},
		{"non-boolean expression", func(r *RuleConfig) { r.When = `"yes"` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := valid
			tt.modify(&rc)
			_, err := Compile(File{Name: "broken", Rules: []RuleConfig{rc}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, estate.ErrInvalidConfig), "error %v should match ErrInvalidConfig", err)
		})
	}
}

func TestCompile_DuplicateIDs(t *testing.T) {
	rc := RuleConfig{ID: "X1", Severity: "HIGH", When: "true", Issue: "i", Consequence: "c", Action: "a"}
	_, err := Compile(File{Rules: []RuleConfig{rc, rc}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("rules: [unterminated"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, estate.ErrInvalidConfig))
}

func TestParse_Empty(t *testing.T) {
	set, err := Parse([]byte("name: empty\n"))
	require.NoError(t, err)

	got, err := set.Check(testClient())
	require.NoError(t, err)
	assert.Empty(t, got)
}
